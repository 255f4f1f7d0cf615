// Package wizard implements the scripted lead conversation: a fixed, linear
// sequence of questions that ends with a relay submission and a WhatsApp
// hand-off.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/primeweb/site/internal/platform/deeplink"
	"github.com/primeweb/site/internal/service/relay"
)

var (
	// ErrNotReady is returned by Confirm before the summary is reached.
	ErrNotReady = errors.New("conversation is not ready to confirm")
	// ErrSubmit wraps relay failures. The conversation stays in summary and can retry.
	ErrSubmit = errors.New("lead submission failed")
)

// Reply kinds.
const (
	ReplyPrompt = "prompt"
	ReplyError  = "error"
	ReplyLink   = "link"
)

// Reply is one bot message.
type Reply struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
	URL     string   `json:"url,omitempty"`
}

// Outcome is what a single input produced.
type Outcome struct {
	Replies   []Reply
	Accepted  bool
	Submitted bool
	Reset     bool
	Retryable bool
}

// Env carries the collaborators used by the terminal action.
type Env struct {
	Relay          relay.Submitter
	WhatsAppNumber string
	Now            func() time.Time
	NewID          func() string
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

// Wizard is the persisted state of one conversation. It has no hidden
// fields, so it round-trips through JSON or a document store unchanged.
type Wizard struct {
	State        State     `json:"state"`
	Record       Record    `json:"record"`
	Language     string    `json:"language"`
	SubmissionID string    `json:"submissionId,omitempty"`
	Attempts     int       `json:"attempts,omitempty"`
	LastError    string    `json:"lastError,omitempty"`
	WhatsAppURL  string    `json:"whatsappUrl,omitempty"`
	FinalizedAt  time.Time `json:"finalizedAt,omitzero"`
}

// New returns a conversation at welcome in the given language.
func New(lang string) *Wizard {
	return &Wizard{State: StateWelcome, Language: SupportedLanguage(lang)}
}

// Prompt returns the bot messages for the current state.
func (w *Wizard) Prompt() []Reply {
	switch w.State {
	case StateWelcome:
		return []Reply{w.prompt("welcome", nil)}
	case StateSummary:
		return []Reply{w.prompt("prompt-summary", w.Record.templateData())}
	case StateFinalized:
		replies := []Reply{w.prompt("finalized", w.Record.templateData())}
		if w.WhatsAppURL != "" {
			replies = append(replies, Reply{Kind: ReplyLink, Text: "WhatsApp", URL: w.WhatsAppURL})
		}
		return replies
	}

	st, ok := steps[w.State]
	if !ok {
		return nil
	}
	r := w.prompt("prompt-"+string(w.State), w.Record.templateData())
	if len(st.options) > 0 {
		r.Text += "\n" + w.optionList(st.options)
		r.Options = append([]string(nil), st.options...)
	}
	return []Reply{r}
}

// Handle applies one user input to the conversation.
func (w *Wizard) Handle(ctx context.Context, env Env, input string) (Outcome, error) {
	switch w.State {
	case StateFinalized:
		return w.Reset(), nil
	case StateWelcome:
		w.State = StateName
		return Outcome{Accepted: true, Replies: w.Prompt()}, nil
	case StateSummary:
		switch summaryChoice(input) {
		case choiceConfirm:
			return w.Confirm(ctx, env)
		case choiceRestart:
			return w.Reset(), nil
		}
		replies := append([]Reply{w.errorReply("error-summary-choice", nil)}, w.Prompt()...)
		return Outcome{Replies: replies}, nil
	}

	st, ok := steps[w.State]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown state %q", w.State)
	}
	value, rej := st.check(input, st.options)
	if rej != nil {
		replies := append([]Reply{w.errorReply(rej.messageID, rej.data)}, w.Prompt()...)
		return Outcome{Replies: replies}, nil
	}

	*st.field(&w.Record) = value
	w.State = w.State.Next()
	if w.State == StateSummary && w.SubmissionID == "" {
		w.SubmissionID = env.newID()
	}
	return Outcome{Accepted: true, Replies: w.Prompt()}, nil
}

// Confirm submits the collected record. On success the conversation is
// finalized with a WhatsApp link; on failure it stays in summary with the
// record untouched. Confirming a finalized conversation does not resubmit.
func (w *Wizard) Confirm(ctx context.Context, env Env) (Outcome, error) {
	if w.State == StateFinalized {
		return Outcome{Replies: w.Prompt()}, nil
	}
	if w.State != StateSummary {
		return Outcome{}, ErrNotReady
	}
	if env.Relay == nil {
		return Outcome{}, errors.New("wizard: no relay configured")
	}
	if w.SubmissionID == "" {
		w.SubmissionID = env.newID()
	}

	w.Attempts++
	err := env.Relay.Submit(ctx, relay.Submission{
		Source:       relay.SourceWizard,
		Fields:       w.Record.Fields(),
		SubmissionID: w.SubmissionID,
		Timestamp:    env.now(),
	})
	if err != nil {
		w.LastError = failureCategory(err)
		replies := append([]Reply{w.errorReply("error-submit", nil)}, w.Prompt()...)
		return Outcome{Replies: replies, Retryable: true}, fmt.Errorf("%w: %w", ErrSubmit, err)
	}

	link, err := deeplink.WhatsApp(env.WhatsAppNumber, w.WhatsAppMessage())
	if err != nil {
		// The lead is already delivered; finalize without the hand-off link.
		link = ""
	}
	w.State = StateFinalized
	w.WhatsAppURL = link
	w.LastError = ""
	w.FinalizedAt = env.now().UTC()
	return Outcome{Accepted: true, Submitted: true, Replies: w.Prompt()}, nil
}

// Reset clears the record and returns to welcome. The language is kept.
func (w *Wizard) Reset() Outcome {
	*w = Wizard{State: StateWelcome, Language: w.Language}
	return Outcome{Reset: true, Replies: w.Prompt()}
}

// WhatsAppMessage is the text pre-filled in the WhatsApp hand-off.
func (w *Wizard) WhatsAppMessage() string {
	return text(w.Language, "whatsapp-message", w.Record.templateData())
}

func (w *Wizard) prompt(id string, data map[string]any) Reply {
	return Reply{Kind: ReplyPrompt, Text: text(w.Language, id, data)}
}

func (w *Wizard) errorReply(id string, data map[string]any) Reply {
	return Reply{Kind: ReplyError, Text: text(w.Language, id, data)}
}

func (w *Wizard) optionList(options []string) string {
	var b strings.Builder
	b.WriteString(text(w.Language, "options-hint", nil))
	for i, o := range options {
		b.WriteString("\n" + strconv.Itoa(i+1) + ". " + o)
	}
	return b.String()
}

type choice int

const (
	choiceNone choice = iota
	choiceConfirm
	choiceRestart
)

func summaryChoice(input string) choice {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "si", "sí", "confirmar", "yes", "confirm":
		return choiceConfirm
	case "2", "reiniciar", "restart":
		return choiceRestart
	}
	return choiceNone
}

// failureCategory keeps relay details out of the persisted conversation.
func failureCategory(err error) string {
	var upErr *relay.UpstreamError
	if errors.As(err, &upErr) && upErr.Status != 0 {
		return "relay_status_" + strconv.Itoa(upErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "relay_timeout"
	}
	return "relay_unreachable"
}
