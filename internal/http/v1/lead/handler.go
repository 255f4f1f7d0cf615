// Package lead exposes the contact form, careers applications and the
// live chat over HTTP.
package lead

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/respond"
	"github.com/primeweb/site/internal/platform/timeutil"
	"github.com/primeweb/site/internal/platform/validate"
	leadsvc "github.com/primeweb/site/internal/service/lead"
	"github.com/primeweb/site/internal/service/relay"
)

// Service is the subset of the lead service the handlers call.
type Service interface {
	SubmitContact(ctx context.Context, c leadsvc.Contact) (leadsvc.Receipt, error)
	SubmitApplication(ctx context.Context, a leadsvc.Application) (leadsvc.Receipt, error)
	LiveChat(ctx context.Context, message string) (leadsvc.ChatReply, error)
}

// Register registers lead endpoints.
func Register(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-contact",
		Method:        http.MethodPost,
		Path:          "/contact",
		Summary:       "Send the contact form",
		Description:   "Validates and relays the home page contact form.",
		Tags:          []string{"Leads"},
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *ContactInput) (*ReceiptOutput, error) {
		rc, err := svc.SubmitContact(ctx, leadsvc.Contact{
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Phone:   input.Body.Phone,
			Message: input.Body.Message,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReceiptOutput{Body: toHTTPReceipt(rc)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "submit-application",
		Method:        http.MethodPost,
		Path:          "/applications",
		Summary:       "Apply for a position",
		Tags:          []string{"Leads"},
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *ApplicationInput) (*ReceiptOutput, error) {
		rc, err := svc.SubmitApplication(ctx, leadsvc.Application{
			Nombre:    input.Body.Nombre,
			Email:     input.Body.Email,
			Telefono:  input.Body.Telefono,
			Portfolio: input.Body.Portfolio,
			Mensaje:   input.Body.Mensaje,
			Puesto:    input.Body.Puesto,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReceiptOutput{Body: toHTTPReceipt(rc)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "send-live-chat-message",
		Method:      http.MethodPost,
		Path:        "/live-chat/messages",
		Summary:     "Send a live chat message",
		Description: "Relays the message to the team and answers with a keyword-based reply. " +
			"The reply is returned even when the relay fails.",
		Tags: []string{"Leads"},
	}, func(ctx context.Context, input *LiveChatInput) (*LiveChatOutput, error) {
		reply, err := svc.LiveChat(ctx, input.Body.Message)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &LiveChatOutput{Body: ChatReply(reply)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-live-chat-quick-messages",
		Method:      http.MethodGet,
		Path:        "/live-chat/quick-messages",
		Summary:     "Live chat openers",
		Tags:        []string{"Leads"},
	}, func(_ context.Context, _ *QuickMessagesInput) (*QuickMessagesOutput, error) {
		return &QuickMessagesOutput{Body: QuickMessages{
			Welcome:  leadsvc.LiveChatWelcome,
			Messages: leadsvc.QuickMessages(),
		}}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, validate.ErrInvalid):
		return respond.Invalid(err)
	case errors.Is(err, relay.ErrUpstream):
		return respond.BadGateway("message could not be delivered, retry later", relay.RetryAfter(err))
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPReceipt(rc leadsvc.Receipt) Receipt {
	return Receipt{SubmissionID: rc.SubmissionID, ReceivedAt: timeutil.NewTime(rc.At)}
}
