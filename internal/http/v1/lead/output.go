package lead

import "github.com/primeweb/site/internal/platform/timeutil"

// Receipt acknowledges a relayed lead.
type Receipt struct {
	SubmissionID string        `json:"submissionId" doc:"Identifier sent to the relay"`
	ReceivedAt   timeutil.Time `json:"receivedAt"`
}

// ReceiptOutput for contact and application submissions (202 Accepted).
type ReceiptOutput struct {
	Body Receipt
}

// ChatReply is the live chat bot answer.
type ChatReply struct {
	Reply     string `json:"reply"     doc:"Canned reply picked by keyword"`
	Delivered bool   `json:"delivered" doc:"Whether the message reached the team"`
}

// LiveChatOutput for POST /live-chat/messages
type LiveChatOutput struct {
	Body ChatReply
}

// QuickMessages seeds the live chat window.
type QuickMessages struct {
	Welcome  string   `json:"welcome"`
	Messages []string `json:"messages"`
}

// QuickMessagesOutput for GET /live-chat/quick-messages
type QuickMessagesOutput struct {
	Body QuickMessages
}
