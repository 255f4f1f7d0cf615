// Package links builds WhatsApp and Google Calendar deep links.
package links

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/deeplink"
)

const defaultEventTitle = "Llamada con PRIME WEB"

// Config holds the site's contact endpoints.
type Config struct {
	WhatsAppNumber string
	DefaultMessage string
	BookingURL     string
}

// Register registers deep link endpoints.
func Register(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "get-whatsapp-link",
		Method:      http.MethodGet,
		Path:        "/links/whatsapp",
		Summary:     "WhatsApp deep link",
		Description: "Returns a wa.me link to the site number with the message pre-filled.",
		Tags:        []string{"Links"},
	}, func(_ context.Context, input *WhatsAppInput) (*LinkOutput, error) {
		text := input.Text
		if text == "" {
			text = cfg.DefaultMessage
		}
		link, err := deeplink.WhatsApp(cfg.WhatsAppNumber, text)
		if err != nil {
			return nil, mapLinkError(err)
		}
		return &LinkOutput{Body: Link{URL: link}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-calendar-link",
		Method:      http.MethodGet,
		Path:        "/links/calendar",
		Summary:     "Add-to-calendar link",
		Tags:        []string{"Links"},
	}, func(_ context.Context, input *CalendarInput) (*BookingLinkOutput, error) {
		title := input.Title
		if title == "" {
			title = defaultEventTitle
		}
		link, err := deeplink.GoogleCalendar(deeplink.CalendarEvent{
			Title:    title,
			Details:  input.Details,
			Location: input.Location,
			Start:    input.Start,
			End:      input.End,
		})
		if err != nil {
			return nil, mapLinkError(err)
		}
		return &BookingLinkOutput{Body: BookingLink{URL: link, BookingURL: cfg.BookingURL}}, nil
	})
}

func mapLinkError(err error) error {
	switch {
	case errors.Is(err, deeplink.ErrInvalidWindow):
		return huma.Error422UnprocessableEntity("end must be after start")
	default:
		return huma.Error500InternalServerError("link could not be built")
	}
}
