// Package notify fans accepted leads out to the agency's own channels.
// Delivery is best-effort: a failed notification never fails the lead.
package notify

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
)

// Event kinds, also used as the SNS feed attribute.
const (
	KindWizardLead  = "wizard_lead"
	KindContact     = "contact"
	KindApplication = "application"
	KindLiveChat    = "live_chat"
)

// Event is a lead that the relay accepted.
type Event struct {
	Kind         string            `json:"kind"`
	Source       string            `json:"source"`
	SubmissionID string            `json:"submissionId,omitempty"`
	Fields       map[string]string `json:"fields"`
	At           time.Time         `json:"at"`
}

// Summary renders the event as short plain text, fields in key order.
func (e Event) Summary() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Nuevo lead (%s)", e.Source)
	for _, k := range keys {
		if v := e.Fields[k]; v != "" {
			fmt.Fprintf(&b, "\n%s: %s", k, v)
		}
	}
	return b.String()
}

// Notifier delivers an Event to one channel.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Multi sends to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

// Dispatch notifies n and logs the failure instead of returning it.
func Dispatch(ctx context.Context, n Notifier, e Event) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, e); err != nil {
		applog.LogWarn(ctx, "lead notification failed",
			zap.String("kind", e.Kind),
			zap.String(applog.FieldSubmissionID, e.SubmissionID),
			zap.Error(err),
		)
	}
}
