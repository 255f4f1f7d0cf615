// Package deeplink builds URLs that open WhatsApp or Google Calendar with
// content already filled in.
package deeplink

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode"
)

const (
	whatsAppBase = "https://wa.me/"
	calendarBase = "https://calendar.google.com/calendar/render"

	// calendarLayout is the UTC basic format Google Calendar expects in dates=.
	calendarLayout = "20060102T150405Z"
)

var (
	ErrNoNumber      = errors.New("whatsapp number has no digits")
	ErrInvalidWindow = errors.New("calendar event must end after it starts")
)

// WhatsApp returns https://wa.me/<digits>?text=<text>. Everything but digits is
// dropped from number. text is encoded like encodeURIComponent, spaces as %20.
func WhatsApp(number, text string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return "", ErrNoNumber
	}
	link := whatsAppBase + digits
	if text != "" {
		link += "?text=" + encodeComponent(text)
	}
	return link, nil
}

// CalendarEvent is the data carried by an "add to calendar" link.
type CalendarEvent struct {
	Title    string
	Details  string
	Location string
	Start    time.Time
	End      time.Time
}

// GoogleCalendar returns a TEMPLATE link for ev. A zero End means one hour after Start.
func GoogleCalendar(ev CalendarEvent) (string, error) {
	end := ev.End
	if end.IsZero() {
		end = ev.Start.Add(time.Hour)
	}
	if !end.After(ev.Start) {
		return "", ErrInvalidWindow
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Title)
	q.Set("dates", ev.Start.UTC().Format(calendarLayout)+"/"+end.UTC().Format(calendarLayout))
	if ev.Details != "" {
		q.Set("details", ev.Details)
	}
	if ev.Location != "" {
		q.Set("location", ev.Location)
	}
	return calendarBase + "?" + strings.ReplaceAll(q.Encode(), "+", "%20"), nil
}

// encodeComponent escapes s the way JavaScript's encodeURIComponent does.
func encodeComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for enc, raw := range map[string]string{
		"%21": "!", "%27": "'", "%28": "(", "%29": ")", "%2A": "*",
	} {
		escaped = strings.ReplaceAll(escaped, enc, raw)
	}
	return escaped
}
