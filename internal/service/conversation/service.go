// Package conversation persists wizard conversations and serializes the
// inputs applied to each one.
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/primeweb/site/internal/service/wizard"
)

// Service errors
var (
	ErrNotFound      = errors.New("conversation not found")
	ErrAlreadyExists = errors.New("conversation already exists")
)

// Transcript roles.
const (
	RoleBot  = "bot"
	RoleUser = "user"
)

// maxTranscript bounds the stored message history per conversation.
const maxTranscript = 200

// Message is one transcript entry.
type Message struct {
	Role    string    `json:"role"`
	Kind    string    `json:"kind,omitempty"`
	Text    string    `json:"text"`
	Options []string  `json:"options,omitempty"`
	URL     string    `json:"url,omitempty"`
	At      time.Time `json:"at"`
}

// Conversation is a wizard plus its transcript and bookkeeping.
type Conversation struct {
	ID         string        `json:"id"`
	Wizard     wizard.Wizard `json:"wizard"`
	Transcript []Message     `json:"transcript"`
	Active     bool          `json:"active"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (c *Conversation) appendUser(input string, at time.Time) {
	c.append(Message{Role: RoleUser, Text: input, At: at})
}

func (c *Conversation) appendReplies(replies []wizard.Reply, at time.Time) {
	for _, r := range replies {
		c.append(Message{Role: RoleBot, Kind: r.Kind, Text: r.Text, Options: r.Options, URL: r.URL, At: at})
	}
}

func (c *Conversation) append(m Message) {
	c.Transcript = append(c.Transcript, m)
	if n := len(c.Transcript); n > maxTranscript {
		c.Transcript = append([]Message(nil), c.Transcript[n-maxTranscript:]...)
	}
}

// Store persists conversations. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, c *Conversation) error
	Get(ctx context.Context, id string) (*Conversation, error)
	Save(ctx context.Context, c *Conversation) error
	// DeactivateIdle marks active conversations last updated before cutoff
	// as inactive and returns how many changed.
	DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error)
}

// Service is what the HTTP layer needs from the conversation manager.
type Service interface {
	Start(ctx context.Context, lang string) (*Conversation, []wizard.Reply, error)
	Get(ctx context.Context, id string) (*Conversation, error)
	Send(ctx context.Context, id, input string) (*Conversation, wizard.Outcome, error)
	Confirm(ctx context.Context, id string) (*Conversation, wizard.Outcome, error)
	Reset(ctx context.Context, id string) (*Conversation, wizard.Outcome, error)
	Cleanup(ctx context.Context, maxIdle time.Duration) (int, error)
}
