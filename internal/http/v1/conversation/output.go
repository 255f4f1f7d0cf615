package conversation

// StartOutput for POST /conversations (201 Created)
type StartOutput struct {
	Location string `header:"Location" doc:"URL of the conversation"`
	Body     Turn
}

// GetOutput for GET /conversations/{id}
type GetOutput struct {
	Body Conversation
}

// TurnOutput for messages, confirm and reset.
type TurnOutput struct {
	Body Turn
}
