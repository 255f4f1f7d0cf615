package conversation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/primeweb/site/internal/service/notify"
	"github.com/primeweb/site/internal/service/relay"
	"github.com/primeweb/site/internal/service/wizard"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

var answers = []string{"hola", "Ana", "Ruiz", "ana@x.com", "1", "2", "Necesito una landing para mi negocio"}

func newTestManager(t *testing.T) (*Manager, *relay.MockSubmitter, *recordingNotifier, *fakeClock) {
	t.Helper()
	sub := relay.NewMockSubmitter()
	rec := &recordingNotifier{}
	clock := &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	seq := 0
	m := NewManager(NewMemoryStore(), sub, "34672616466",
		WithNotifier(rec),
		WithClock(clock.Now),
		WithIDs(func() string {
			seq++
			return fmt.Sprintf("conv-%d", seq)
		}),
	)
	return m, sub, rec, clock
}

func toSummary(t *testing.T, m *Manager, id string) {
	t.Helper()
	for _, in := range answers {
		if _, _, err := m.Send(context.Background(), id, in); err != nil {
			t.Fatalf("Send(%q): %v", in, err)
		}
	}
}

func TestStartStoresConversation(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	ctx := context.Background()

	c, replies, err := m.Start(ctx, "es")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.ID != "conv-1" || !c.Active || c.Wizard.State != wizard.StateWelcome {
		t.Fatalf("unexpected conversation %+v", c)
	}
	if len(replies) != 1 || len(c.Transcript) != 1 || c.Transcript[0].Role != RoleBot {
		t.Fatalf("expected the welcome prompt in the transcript, got %+v", c.Transcript)
	}

	got, err := m.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Wizard.State != wizard.StateWelcome {
		t.Fatalf("unexpected stored state %s", got.Wizard.State)
	}
}

func TestUnknownConversation(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	if _, _, err := m.Send(context.Background(), "missing", "hola"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendRecordsTranscript(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")

	c, out, err := m.Send(ctx, c.ID, "hola")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !out.Accepted || c.Wizard.State != wizard.StateName {
		t.Fatalf("expected name state, got %s", c.Wizard.State)
	}
	if len(c.Transcript) != 3 {
		t.Fatalf("expected welcome, input and prompt, got %d entries", len(c.Transcript))
	}
	if c.Transcript[1].Role != RoleUser || c.Transcript[1].Text != "hola" {
		t.Fatalf("unexpected user entry %+v", c.Transcript[1])
	}
}

func TestConfirmSubmitsAndNotifies(t *testing.T) {
	m, sub, rec, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")
	toSummary(t, m, c.ID)

	c, out, err := m.Confirm(ctx, c.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !out.Submitted || c.Wizard.State != wizard.StateFinalized {
		t.Fatalf("expected finalized, got %s", c.Wizard.State)
	}
	if len(sub.Submissions()) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.Submissions()))
	}
	if rec.count() != 1 || rec.events[0].Kind != notify.KindWizardLead {
		t.Fatalf("expected one wizard lead notification, got %+v", rec.events)
	}
	if rec.events[0].Fields["projectType"] != "Landing page" {
		t.Fatalf("unexpected notified fields %+v", rec.events[0].Fields)
	}
}

func TestConfirmFailurePersistsAttempt(t *testing.T) {
	m, sub, rec, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")
	toSummary(t, m, c.ID)

	sub.FailNext(1, http.StatusServiceUnavailable)
	_, out, err := m.Confirm(ctx, c.ID)
	if !errors.Is(err, wizard.ErrSubmit) {
		t.Fatalf("expected ErrSubmit, got %v", err)
	}
	if !out.Retryable {
		t.Fatal("expected retryable outcome")
	}

	stored, err := m.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Wizard.State != wizard.StateSummary || stored.Wizard.Attempts != 1 {
		t.Fatalf("unexpected stored wizard %+v", stored.Wizard)
	}
	if stored.Wizard.LastError != "relay_status_503" {
		t.Fatalf("unexpected failure category %q", stored.Wizard.LastError)
	}
	if rec.count() != 0 {
		t.Fatal("failed submissions must not notify")
	}

	if _, _, err := m.Confirm(ctx, c.ID); err != nil {
		t.Fatalf("retry: %v", err)
	}
	subs := sub.Submissions()
	if len(subs) != 1 || subs[0].SubmissionID != stored.Wizard.SubmissionID {
		t.Fatalf("retry should reuse submission id %q, got %+v", stored.Wizard.SubmissionID, subs)
	}
}

func TestConcurrentConfirmsSubmitOnce(t *testing.T) {
	m, sub, rec, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")
	toSummary(t, m, c.ID)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = m.Confirm(ctx, c.ID)
		}()
	}
	wg.Wait()

	if n := len(sub.Submissions()); n != 1 {
		t.Fatalf("expected a single submission, got %d", n)
	}
	if rec.count() != 1 {
		t.Fatalf("expected a single notification, got %d", rec.count())
	}
	if m.locks.size() != 0 {
		t.Fatalf("locks leaked: %d", m.locks.size())
	}
}

func TestConfirmBeforeSummaryIsNotSaved(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")

	if _, _, err := m.Confirm(ctx, c.ID); !errors.Is(err, wizard.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	stored, _ := m.Get(ctx, c.ID)
	if len(stored.Transcript) != 1 {
		t.Fatalf("rejected confirm must not touch the transcript, got %d entries", len(stored.Transcript))
	}
}

func TestResetClearsRecord(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "en")
	toSummary(t, m, c.ID)

	c, out, err := m.Reset(ctx, c.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !out.Reset || c.Wizard.State != wizard.StateWelcome || !c.Wizard.Record.IsZero() {
		t.Fatalf("unexpected wizard after reset %+v", c.Wizard)
	}
	if c.Wizard.Language != "en" {
		t.Fatalf("reset should keep the language, got %q", c.Wizard.Language)
	}
}

func TestCleanupDeactivatesIdle(t *testing.T) {
	m, _, _, clock := newTestManager(t)
	ctx := context.Background()
	stale, _, _ := m.Start(ctx, "es")
	clock.Advance(6 * 24 * time.Hour)
	fresh, _, _ := m.Start(ctx, "es")
	clock.Advance(2 * 24 * time.Hour)

	n, err := m.Cleanup(ctx, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one deactivated conversation, got %d", n)
	}
	if c, _ := m.Get(ctx, stale.ID); c.Active {
		t.Fatal("stale conversation should be inactive")
	}
	if c, _ := m.Get(ctx, fresh.ID); !c.Active {
		t.Fatal("fresh conversation should stay active")
	}

	if _, err := m.Cleanup(ctx, 0); err == nil {
		t.Fatal("expected error for non-positive maxIdle")
	}
}

func TestInputReactivatesConversation(t *testing.T) {
	m, _, _, clock := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")
	clock.Advance(10 * 24 * time.Hour)
	if _, err := m.Cleanup(ctx, 24*time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	c, _, err := m.Send(ctx, c.ID, "hola")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !c.Active {
		t.Fatal("new input should reactivate the conversation")
	}
}

func TestTranscriptIsBounded(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	ctx := context.Background()
	c, _, _ := m.Start(ctx, "es")
	m.Send(ctx, c.ID, "hola")
	for range maxTranscript {
		if _, _, err := m.Send(ctx, c.ID, "x"); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	stored, _ := m.Get(ctx, c.ID)
	if len(stored.Transcript) != maxTranscript {
		t.Fatalf("expected %d entries, got %d", maxTranscript, len(stored.Transcript))
	}
}

func TestStartUsesDefaultLanguage(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), relay.NewMockSubmitter(), "34672616466", WithDefaultLanguage("en-GB"))

	c, _, err := m.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.Wizard.Language != "en" {
		t.Fatalf("language = %q, want en", c.Wizard.Language)
	}

	c, _, _ = m.Start(ctx, "es")
	if c.Wizard.Language != "es" {
		t.Fatalf("explicit language ignored, got %q", c.Wizard.Language)
	}
}
