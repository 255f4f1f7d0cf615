// Package lead validates and relays the contact form, the careers
// application and live chat messages.
package lead

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/validate"
	"github.com/primeweb/site/internal/service/notify"
	"github.com/primeweb/site/internal/service/relay"
)

// OtherPosition is the free-form choice in the careers form.
const OtherPosition = "Otro"

// Field messages.
const (
	msgName     = "Debe tener mínimo 2 caracteres."
	msgEmail    = "Introduce un email válido."
	msgMessage  = "Debe tener mínimo 10 caracteres."
	msgRequired = "Este campo es obligatorio."
	msgPosition = "Selecciona un puesto de la lista."
)

// Contact is the home page contact form.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Application is the careers form. Field names follow the form on the site.
type Application struct {
	Nombre    string
	Email     string
	Telefono  string
	Portfolio string
	Mensaje   string
	Puesto    string
}

// ChatReply is the live chat answer. Delivered is false when the relay
// failed; the reply is still shown.
type ChatReply struct {
	Reply     string
	Delivered bool
}

// Receipt identifies an accepted submission.
type Receipt struct {
	SubmissionID string
	Source       string
	At           time.Time
}

// Service relays the three lead forms.
type Service struct {
	relay     relay.Submitter
	notifier  notify.Notifier
	positions []string
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier fans accepted leads out to n.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService builds a Service. positions are the open position titles the
// careers form accepts besides OtherPosition.
func NewService(sub relay.Submitter, positions []string, opts ...Option) *Service {
	s := &Service{
		relay:     sub,
		notifier:  notify.Nop{},
		positions: append([]string(nil), positions...),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Positions returns the accepted values for Application.Puesto.
func (s *Service) Positions() []string {
	return append(slices.Clone(s.positions), OtherPosition)
}

// ValidateContact checks c without sending it.
func ValidateContact(c Contact) error {
	var v validate.Errors
	v.Add(validate.MinLen(c.Name, 2), "name", msgName)
	v.Add(validate.Email(c.Email), "email", msgEmail)
	v.Add(validate.MinLen(c.Message, 10), "message", msgMessage)
	return v.Err()
}

// ValidateApplication checks a without sending it.
func (s *Service) ValidateApplication(a Application) error {
	var v validate.Errors
	v.Add(validate.Required(a.Nombre), "nombre", msgRequired)
	v.Add(validate.Email(a.Email), "email", msgEmail)
	v.Add(validate.Required(a.Mensaje), "mensaje", msgRequired)
	puesto := strings.TrimSpace(a.Puesto)
	if puesto == "" {
		v.Add(false, "puesto", msgRequired)
	} else {
		v.Add(slices.Contains(s.Positions(), puesto), "puesto", msgPosition)
	}
	return v.Err()
}

// SubmitContact validates and relays the contact form.
func (s *Service) SubmitContact(ctx context.Context, c Contact) (Receipt, error) {
	if err := ValidateContact(c); err != nil {
		return Receipt{}, err
	}
	return s.submit(ctx, notify.KindContact, relay.SourceContact, map[string]string{
		"name":    strings.TrimSpace(c.Name),
		"email":   strings.TrimSpace(c.Email),
		"phone":   strings.TrimSpace(c.Phone),
		"message": strings.TrimSpace(c.Message),
	})
}

// SubmitApplication validates and relays a careers application.
func (s *Service) SubmitApplication(ctx context.Context, a Application) (Receipt, error) {
	if err := s.ValidateApplication(a); err != nil {
		return Receipt{}, err
	}
	return s.submit(ctx, notify.KindApplication, relay.SourceApplication, map[string]string{
		"nombre":    strings.TrimSpace(a.Nombre),
		"email":     strings.TrimSpace(a.Email),
		"telefono":  strings.TrimSpace(a.Telefono),
		"portfolio": strings.TrimSpace(a.Portfolio),
		"mensaje":   strings.TrimSpace(a.Mensaje),
		"puesto":    strings.TrimSpace(a.Puesto),
	})
}

// LiveChat relays message and returns the keyword reply. A relay failure
// is logged and reported through Delivered, never as an error.
func (s *Service) LiveChat(ctx context.Context, message string) (ChatReply, error) {
	var v validate.Errors
	v.Add(validate.Required(message), "message", msgRequired)
	if err := v.Err(); err != nil {
		return ChatReply{}, err
	}

	reply := ChatReply{Reply: Respond(message), Delivered: true}
	if _, err := s.submit(ctx, notify.KindLiveChat, relay.SourceLiveChat, map[string]string{
		"message": strings.TrimSpace(message),
	}); err != nil {
		reply.Delivered = false
	}
	return reply, nil
}

func (s *Service) submit(ctx context.Context, kind, source string, fields map[string]string) (Receipt, error) {
	rc := Receipt{SubmissionID: s.newID(), Source: source, At: s.now().UTC()}
	err := s.relay.Submit(ctx, relay.Submission{
		Source:       source,
		Fields:       fields,
		SubmissionID: rc.SubmissionID,
		Timestamp:    rc.At,
	})
	if err != nil {
		applog.LogWarn(ctx, "lead relay failed", zap.String("kind", kind), zap.Error(err))
		applog.LogAuditEvent(ctx, applog.AuditEvent{
			Action:       "submit",
			Actor:        "visitor",
			ResourceType: kind,
			ResourceID:   rc.SubmissionID,
			Result:       applog.AuditFailure,
		})
		return Receipt{}, err
	}

	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       "submit",
		Actor:        "visitor",
		ResourceType: kind,
		ResourceID:   rc.SubmissionID,
		Result:       applog.AuditSuccess,
	})
	notify.Dispatch(ctx, s.notifier, notify.Event{
		Kind:         kind,
		Source:       source,
		SubmissionID: rc.SubmissionID,
		Fields:       fields,
		At:           rc.At,
	})
	return rc, nil
}
