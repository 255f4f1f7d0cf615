package conversation

// StartInput for POST /conversations
type StartInput struct {
	Body struct {
		Language string `json:"language,omitempty" enum:"es,en" doc:"Prompt language, the site default when omitted"`
	}
}

// GetInput for GET /conversations/{id}
type GetInput struct {
	ID string `path:"id" doc:"Conversation identifier"`
}

// MessageInput for POST /conversations/{id}/messages
type MessageInput struct {
	ID   string `path:"id" doc:"Conversation identifier"`
	Body struct {
		Text string `json:"text" required:"true" maxLength:"2000" doc:"What the visitor typed or the option picked" example:"Ana"`
	}
}

// ActionInput for confirm and reset (no body needed)
type ActionInput struct {
	ID string `path:"id" doc:"Conversation identifier"`
}
