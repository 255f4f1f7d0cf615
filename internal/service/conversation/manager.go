package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/service/notify"
	"github.com/primeweb/site/internal/service/relay"
	"github.com/primeweb/site/internal/service/wizard"
)

// Manager implements Service on top of a Store. Every mutation of one
// conversation runs under that conversation's lock, relay call included, so
// concurrent confirms in this process submit once.
type Manager struct {
	store    Store
	env      wizard.Env
	notifier notify.Notifier
	locks    *keyedMutex
	now      func() time.Time
	newID    func() string
	lang     string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNotifier sends finalized leads to n.
func WithNotifier(n notify.Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
		m.env.Now = now
	}
}

// WithIDs replaces the conversation id generator.
func WithIDs(newID func() string) ManagerOption {
	return func(m *Manager) {
		m.newID = newID
	}
}

// WithDefaultLanguage sets the language used when Start is given none.
func WithDefaultLanguage(lang string) ManagerOption {
	return func(m *Manager) {
		m.lang = wizard.SupportedLanguage(lang)
	}
}

// NewManager builds a Manager that submits through sub and hands off to
// whatsAppNumber.
func NewManager(store Store, sub relay.Submitter, whatsAppNumber string, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		env: wizard.Env{
			Relay:          sub,
			WhatsAppNumber: whatsAppNumber,
		},
		notifier: notify.Nop{},
		locks:    newKeyedMutex(),
		now:      time.Now,
		newID:    uuid.NewString,
		lang:     wizard.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a conversation at welcome and returns its opening prompt.
func (m *Manager) Start(ctx context.Context, lang string) (*Conversation, []wizard.Reply, error) {
	if lang == "" {
		lang = m.lang
	}
	now := m.now().UTC()
	c := &Conversation{
		ID:        m.newID(),
		Wizard:    *wizard.New(lang),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	replies := c.Wizard.Prompt()
	c.appendReplies(replies, now)

	if err := m.store.Create(ctx, c); err != nil {
		return nil, nil, err
	}
	applog.LogInfo(ctx, "conversation started",
		zap.String(applog.FieldConversationID, c.ID),
		zap.String("language", c.Wizard.Language),
	)
	return c, replies, nil
}

// Get returns the stored conversation.
func (m *Manager) Get(ctx context.Context, id string) (*Conversation, error) {
	return m.store.Get(ctx, id)
}

// Send applies one user input.
func (m *Manager) Send(ctx context.Context, id, input string) (*Conversation, wizard.Outcome, error) {
	return m.mutate(ctx, id, func(c *Conversation) (wizard.Outcome, error) {
		c.appendUser(input, m.now().UTC())
		return c.Wizard.Handle(ctx, m.env, input)
	})
}

// Confirm runs the terminal action. On relay failure the conversation is
// still saved, so the attempt count and failure category persist.
func (m *Manager) Confirm(ctx context.Context, id string) (*Conversation, wizard.Outcome, error) {
	return m.mutate(ctx, id, func(c *Conversation) (wizard.Outcome, error) {
		return c.Wizard.Confirm(ctx, m.env)
	})
}

// Reset returns the conversation to welcome.
func (m *Manager) Reset(ctx context.Context, id string) (*Conversation, wizard.Outcome, error) {
	return m.mutate(ctx, id, func(c *Conversation) (wizard.Outcome, error) {
		return c.Wizard.Reset(), nil
	})
}

// Cleanup deactivates conversations idle for longer than maxIdle.
func (m *Manager) Cleanup(ctx context.Context, maxIdle time.Duration) (int, error) {
	if maxIdle <= 0 {
		return 0, errors.New("maxIdle must be positive")
	}
	n, err := m.store.DeactivateIdle(ctx, m.now().UTC().Add(-maxIdle))
	if err != nil {
		return n, err
	}
	applog.LogInfo(ctx, "inactive conversations cleaned up", zap.Int("count", n))
	return n, nil
}

func (m *Manager) mutate(ctx context.Context, id string, apply func(*Conversation) (wizard.Outcome, error)) (*Conversation, wizard.Outcome, error) {
	ctx = applog.WithConversation(ctx, id)
	unlock := m.locks.Lock(id)
	defer unlock()

	c, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, wizard.Outcome{}, err
	}

	out, applyErr := apply(c)
	if applyErr != nil && !errors.Is(applyErr, wizard.ErrSubmit) {
		return c, out, applyErr
	}

	now := m.now().UTC()
	c.appendReplies(out.Replies, now)
	c.Active = true
	c.UpdatedAt = now
	if err := m.store.Save(ctx, c); err != nil {
		return nil, wizard.Outcome{}, err
	}

	m.afterMutation(ctx, c, out, applyErr)
	return c, out, applyErr
}

func (m *Manager) afterMutation(ctx context.Context, c *Conversation, out wizard.Outcome, err error) {
	w := c.Wizard
	switch {
	case out.Submitted:
		applog.LogAuditEvent(ctx, applog.AuditEvent{
			Action:       "submit",
			Actor:        "visitor",
			ResourceType: "conversation",
			ResourceID:   c.ID,
			Result:       applog.AuditSuccess,
			Details:      map[string]any{"attempts": w.Attempts, "submissionId": w.SubmissionID},
		})
		notify.Dispatch(ctx, m.notifier, notify.Event{
			Kind:         notify.KindWizardLead,
			Source:       relay.SourceWizard,
			SubmissionID: w.SubmissionID,
			Fields:       w.Record.Fields(),
			At:           w.FinalizedAt,
		})
	case err != nil:
		applog.LogAuditEvent(ctx, applog.AuditEvent{
			Action:       "submit",
			Actor:        "visitor",
			ResourceType: "conversation",
			ResourceID:   c.ID,
			Result:       applog.AuditFailure,
			Details:      map[string]any{"attempts": w.Attempts, "error": w.LastError},
		})
	}
}

// Compile-time interface check
var _ Service = (*Manager)(nil)
