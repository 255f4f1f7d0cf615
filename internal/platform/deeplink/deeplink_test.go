package deeplink

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestWhatsAppEncodesLikeBrowser(t *testing.T) {
	link, err := WhatsApp("+34 672 616 466", "¡Hola! Me interesa (web) & más")
	if err != nil {
		t.Fatalf("WhatsApp: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/34672616466?text=") {
		t.Fatalf("unexpected link %q", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("spaces must be %%20, got %q", link)
	}
	if !strings.Contains(link, "(web)") || !strings.Contains(link, "%26") {
		t.Fatalf("unexpected escaping %q", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := u.Query().Get("text"); got != "¡Hola! Me interesa (web) & más" {
		t.Fatalf("round trip lost text: %q", got)
	}
}

func TestWhatsAppWithoutText(t *testing.T) {
	link, err := WhatsApp("34672616466", "")
	if err != nil {
		t.Fatalf("WhatsApp: %v", err)
	}
	if link != "https://wa.me/34672616466" {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestWhatsAppRejectsEmptyNumber(t *testing.T) {
	if _, err := WhatsApp("+ -", "hola"); !errors.Is(err, ErrNoNumber) {
		t.Fatalf("expected ErrNoNumber, got %v", err)
	}
}

func TestGoogleCalendar(t *testing.T) {
	start := time.Date(2025, 3, 10, 11, 0, 0, 0, time.FixedZone("CET", 3600))
	link, err := GoogleCalendar(CalendarEvent{
		Title:   "Llamada con PRIME WEB",
		Details: "Asesoría gratuita",
		Start:   start,
	})
	if err != nil {
		t.Fatalf("GoogleCalendar: %v", err)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("action") != "TEMPLATE" {
		t.Errorf("missing action: %q", link)
	}
	if q.Get("dates") != "20250310T100000Z/20250310T110000Z" {
		t.Errorf("unexpected dates %q", q.Get("dates"))
	}
	if q.Get("text") != "Llamada con PRIME WEB" {
		t.Errorf("unexpected title %q", q.Get("text"))
	}
	if _, ok := q["location"]; ok {
		t.Error("empty location should be omitted")
	}
}

func TestGoogleCalendarRejectsBackwardsWindow(t *testing.T) {
	now := time.Now()
	_, err := GoogleCalendar(CalendarEvent{Title: "x", Start: now, End: now.Add(-time.Minute)})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}
