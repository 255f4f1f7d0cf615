package relay

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUpstream is wrapped by every failed submission, whatever the cause.
var ErrUpstream = errors.New("relay submission failed")

// Source tags identify which widget produced a submission.
const (
	SourceWizard      = "Asistente de Chat - PRIME WEB"
	SourceContact     = "Formulario de Contacto - PRIME WEB"
	SourceApplication = "Trabaja con Nosotros - PRIME WEB"
	SourceLiveChat    = "Live Chat"
)

// Submission is a flat record relayed to the form endpoint.
type Submission struct {
	Source       string
	Fields       map[string]string
	SubmissionID string
	Timestamp    time.Time
}

// Submitter delivers submissions to the relay endpoint.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// UpstreamError carries the relay response status. Status is 0 when no
// response arrived (timeout, DNS, connection reset).
type UpstreamError struct {
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("relay unreachable: %v", e.cause)
	}
	return fmt.Sprintf("relay rejected submission (status=%d)", e.Status)
}

// Unwrap exposes ErrUpstream and the transport cause to errors.Is.
func (e *UpstreamError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.cause}
}

// DefaultRetryAfter is suggested to clients when the relay gave no hint.
const DefaultRetryAfter = "30"

// RetryAfter returns the relay's Retry-After value for err, or DefaultRetryAfter.
func RetryAfter(err error) string {
	var upErr *UpstreamError
	if errors.As(err, &upErr) && upErr.RetryAfter != "" {
		return upErr.RetryAfter
	}
	return DefaultRetryAfter
}
