package validate

import (
	"errors"
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{"ana@x.com", " ana.ruiz+web@primeweb.es ", "a@b.c"}
	invalid := []string{"", "ana", "ana@x", "@x.com", "ana@.", "ana @x.com", "ana@x .com", "a@@b.c"}
	for _, s := range valid {
		if !Email(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if Email(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestMinLenCountsRunesAfterTrim(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want bool
	}{
		{"A", 2, false},
		{"  A  ", 2, false},
		{"Al", 2, true},
		{"Íñ", 2, true},
		{"Necesito una landing", 10, true},
		{"corto     ", 10, false},
	}
	for _, c := range cases {
		if got := MinLen(c.in, c.n); got != c.want {
			t.Errorf("MinLen(%q, %d) = %v, want %v", c.in, c.n, got, c.want)
		}
	}
}

func TestErrorsCollects(t *testing.T) {
	var errs Errors
	errs.Add(true, "name", "ok")
	if errs.Err() != nil {
		t.Fatal("no issues should mean nil error")
	}
	errs.Add(false, "email", "email inválido")
	err := errs.Err()
	var target *Errors
	if !errors.As(err, &target) || len(target.Issues) != 1 {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestErrorsMatchErrInvalid(t *testing.T) {
	var v Errors
	v.Add(false, "email", "Email no válido.")
	if !errors.Is(v.Err(), ErrInvalid) {
		t.Fatal("expected errors.Is(err, ErrInvalid)")
	}
}
