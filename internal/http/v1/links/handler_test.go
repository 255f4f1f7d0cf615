package links

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("LinksTest", "test"))
	Register(api, Config{
		WhatsAppNumber: "+34 672 616 466",
		DefaultMessage: "¡Hola! Me interesa saber más sobre los servicios de PRIME WEB.",
		BookingURL:     "https://calendar.google.com/calendar/appointments/schedules/x",
	})
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	return resp
}

func TestWhatsAppDefaultMessage(t *testing.T) {
	resp := get(newTestRouter(), "/links/whatsapp")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var link Link
	if err := json.Unmarshal(resp.Body.Bytes(), &link); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	want := "https://wa.me/34672616466?text=%C2%A1Hola!%20Me%20interesa"
	if !strings.HasPrefix(link.URL, want) {
		t.Fatalf("expected prefix %q, got %q", want, link.URL)
	}
}

func TestWhatsAppCustomText(t *testing.T) {
	var link Link
	resp := get(newTestRouter(), "/links/whatsapp?text=Quiero%20una%20web")
	if err := json.Unmarshal(resp.Body.Bytes(), &link); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if link.URL != "https://wa.me/34672616466?text=Quiero%20una%20web" {
		t.Fatalf("unexpected link %q", link.URL)
	}
}

func TestCalendarLink(t *testing.T) {
	resp := get(newTestRouter(), "/links/calendar?start=2024-06-03T10:00:00%2B02:00")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var link BookingLink
	if err := json.Unmarshal(resp.Body.Bytes(), &link); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if !strings.Contains(link.URL, "dates=20240603T080000Z%2F20240603T090000Z") {
		t.Fatalf("expected UTC one-hour window, got %q", link.URL)
	}
	if !strings.Contains(link.URL, "text=Llamada%20con%20PRIME%20WEB") {
		t.Fatalf("expected default title, got %q", link.URL)
	}
	if link.BookingURL == "" {
		t.Fatal("expected booking URL")
	}
}

func TestCalendarRejectsBackwardsWindow(t *testing.T) {
	resp := get(newTestRouter(), "/links/calendar?start=2024-06-03T10:00:00Z&end=2024-06-03T09:00:00Z")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestCalendarRequiresStart(t *testing.T) {
	if resp := get(newTestRouter(), "/links/calendar"); resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}
