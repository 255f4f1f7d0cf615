package respond

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/validate"
)

func TestInvalidListsFieldDetails(t *testing.T) {
	var v validate.Errors
	v.Add(false, "email", "Email inválido")
	v.Add(false, "name", "Mínimo 2 caracteres")

	var se *huma.ErrorModel
	if !errors.As(Invalid(v.Err()), &se) {
		t.Fatal("expected *huma.ErrorModel")
	}
	if se.Status != http.StatusUnprocessableEntity || len(se.Errors) != 2 {
		t.Fatalf("unexpected problem: %+v", se)
	}
	if se.Errors[0].Location != "body.email" || se.Errors[0].Message != "Email inválido" {
		t.Fatalf("unexpected first detail: %+v", se.Errors[0])
	}
}

func TestInvalidPlainError(t *testing.T) {
	var se *huma.ErrorModel
	if !errors.As(Invalid(errors.New("bad choice")), &se) || se.Detail != "bad choice" || len(se.Errors) != 0 {
		t.Fatalf("unexpected problem: %+v", se)
	}
}

func TestBadGatewayCarriesRetryAfter(t *testing.T) {
	err := BadGateway("relay down", "45")
	var he huma.HeadersError
	if !errors.As(err, &he) {
		t.Fatal("expected headers on the error")
	}
	if got := he.GetHeaders().Get("Retry-After"); got != "45" {
		t.Fatalf("unexpected Retry-After %q", got)
	}
	var se huma.StatusError
	if !errors.As(err, &se) || se.GetStatus() != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v", err)
	}
}
