package conversation

import (
	"github.com/primeweb/site/internal/platform/timeutil"
)

// Reply is one bot message.
type Reply struct {
	Kind    string   `json:"kind"              doc:"prompt, error or link" example:"prompt"`
	Text    string   `json:"text"              doc:"Message text"`
	Options []string `json:"options,omitempty" doc:"Numbered choices offered with the prompt"`
	URL     string   `json:"url,omitempty"     doc:"Link target for link replies"`
}

// Record is the data collected so far.
type Record struct {
	Name        string `json:"name"        example:"Ana"`
	Surname     string `json:"surname"     example:"Ruiz"`
	Email       string `json:"email"       example:"ana@example.com"`
	ProjectType string `json:"projectType" example:"Landing page"`
	Budget      string `json:"budget"      example:"500€ - 1.000€"`
	Description string `json:"description"`
}

// Message is one transcript entry.
type Message struct {
	Role    string        `json:"role"              doc:"bot or user" example:"bot"`
	Kind    string        `json:"kind,omitempty"`
	Text    string        `json:"text"`
	Options []string      `json:"options,omitempty"`
	URL     string        `json:"url,omitempty"`
	At      timeutil.Time `json:"at"`
}

// Conversation is the public view of a wizard conversation.
type Conversation struct {
	ID           string         `json:"id"                     doc:"Conversation identifier"`
	State        string         `json:"state"                  doc:"Wizard state" example:"name"`
	Language     string         `json:"language"               example:"es"`
	Record       Record         `json:"record"`
	SubmissionID string         `json:"submissionId,omitempty" doc:"Relay dedupe id, fixed once the summary is reached"`
	Attempts     int            `json:"attempts"               doc:"Relay attempts so far"`
	LastError    string         `json:"lastError,omitempty"    doc:"Category of the last relay failure" example:"relay_timeout"`
	WhatsAppURL  string         `json:"whatsappUrl,omitempty"  doc:"Hand-off link once finalized"`
	FinalizedAt  *timeutil.Time `json:"finalizedAt,omitempty"`
	Active       bool           `json:"active"`
	CreatedAt    timeutil.Time  `json:"createdAt"`
	UpdatedAt    timeutil.Time  `json:"updatedAt"`
	Transcript   []Message      `json:"transcript,omitempty"   doc:"Message history, only on GET"`
}

// Turn is the result of one interaction.
type Turn struct {
	Conversation Conversation `json:"conversation"`
	Replies      []Reply      `json:"replies"`
	Accepted     bool         `json:"accepted"  doc:"The input moved the wizard forward"`
	Submitted    bool         `json:"submitted" doc:"The lead was relayed during this turn"`
	Reset        bool         `json:"reset"     doc:"The conversation went back to welcome"`
	Retryable    bool         `json:"retryable" doc:"The relay failed; confirm again to retry"`
}
