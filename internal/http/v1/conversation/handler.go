// Package conversation exposes the chat wizard over HTTP.
package conversation

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/respond"
	"github.com/primeweb/site/internal/platform/timeutil"
	convsvc "github.com/primeweb/site/internal/service/conversation"
	"github.com/primeweb/site/internal/service/relay"
	"github.com/primeweb/site/internal/service/wizard"
)

// Register registers conversation endpoints.
func Register(api huma.API, svc convsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "start-conversation",
		Method:        http.MethodPost,
		Path:          "/conversations",
		Summary:       "Start a chat wizard conversation",
		Description:   "Creates a conversation at the welcome step and returns the opening prompt.",
		Tags:          []string{"Conversations"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *StartInput) (*StartOutput, error) {
		c, replies, err := svc.Start(ctx, input.Body.Language)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &StartOutput{
			Location: prefix + "/conversations/" + c.ID,
			Body: Turn{
				Conversation: toHTTPConversation(c, false),
				Replies:      toHTTPReplies(replies),
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-conversation",
		Method:      http.MethodGet,
		Path:        "/conversations/{id}",
		Summary:     "Get a conversation",
		Description: "Returns the wizard state, the collected record and the transcript.",
		Tags:        []string{"Conversations"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		c, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &GetOutput{Body: toHTTPConversation(c, true)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "send-conversation-message",
		Method:      http.MethodPost,
		Path:        "/conversations/{id}/messages",
		Summary:     "Send visitor input",
		Description: "Applies one input to the wizard. Rejected input keeps the step and returns an error reply. " +
			"Confirming from the summary by text relays the lead; a relay failure is reported with retryable=true.",
		Tags: []string{"Conversations"},
	}, func(ctx context.Context, input *MessageInput) (*TurnOutput, error) {
		c, out, err := svc.Send(ctx, input.ID, input.Body.Text)
		if err != nil && !errors.Is(err, wizard.ErrSubmit) {
			return nil, mapServiceError(err)
		}
		return &TurnOutput{Body: toHTTPTurn(c, out)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "confirm-conversation",
		Method:      http.MethodPost,
		Path:        "/conversations/{id}/confirm",
		Summary:     "Confirm and submit the lead",
		Description: "Relays the collected record. Retrying after a 502 reuses the same submission id. " +
			"A finalized conversation is returned as is without resubmitting.",
		Tags: []string{"Conversations"},
	}, func(ctx context.Context, input *ActionInput) (*TurnOutput, error) {
		c, out, err := svc.Confirm(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &TurnOutput{Body: toHTTPTurn(c, out)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reset-conversation",
		Method:      http.MethodPost,
		Path:        "/conversations/{id}/reset",
		Summary:     "Reset to welcome",
		Tags:        []string{"Conversations"},
	}, func(ctx context.Context, input *ActionInput) (*TurnOutput, error) {
		c, out, err := svc.Reset(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &TurnOutput{Body: toHTTPTurn(c, out)}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, convsvc.ErrNotFound):
		return huma.Error404NotFound("conversation not found")
	case errors.Is(err, wizard.ErrNotReady):
		return huma.Error409Conflict("conversation has not reached the summary")
	case errors.Is(err, wizard.ErrSubmit):
		return respond.BadGateway("lead could not be delivered, retry later", relay.RetryAfter(err))
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPTurn(c *convsvc.Conversation, out wizard.Outcome) Turn {
	return Turn{
		Conversation: toHTTPConversation(c, false),
		Replies:      toHTTPReplies(out.Replies),
		Accepted:     out.Accepted,
		Submitted:    out.Submitted,
		Reset:        out.Reset,
		Retryable:    out.Retryable,
	}
}

func toHTTPReplies(replies []wizard.Reply) []Reply {
	out := make([]Reply, len(replies))
	for i, r := range replies {
		out[i] = Reply(r)
	}
	return out
}

func toHTTPConversation(c *convsvc.Conversation, withTranscript bool) Conversation {
	w := c.Wizard
	out := Conversation{
		ID:           c.ID,
		State:        string(w.State),
		Language:     w.Language,
		Record:       Record(w.Record),
		SubmissionID: w.SubmissionID,
		Attempts:     w.Attempts,
		LastError:    w.LastError,
		WhatsAppURL:  w.WhatsAppURL,
		FinalizedAt:  timeutil.NewTimePtr(w.FinalizedAt),
		Active:       c.Active,
		CreatedAt:    timeutil.NewTime(c.CreatedAt),
		UpdatedAt:    timeutil.NewTime(c.UpdatedAt),
	}
	if withTranscript {
		out.Transcript = make([]Message, len(c.Transcript))
		for i, m := range c.Transcript {
			out.Transcript[i] = Message{
				Role:    m.Role,
				Kind:    m.Kind,
				Text:    m.Text,
				Options: m.Options,
				URL:     m.URL,
				At:      timeutil.NewTime(m.At),
			}
		}
	}
	return out
}
