// Package validate holds the text checks shared by the chat wizard and the lead forms.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailRe is deliberately loose: something@something.something, no whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether the trimmed value looks like local@domain.tld.
func Email(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// MinLen reports whether the trimmed value has at least n characters.
func MinLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// Required reports whether the value has any non-space content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ErrInvalid matches every *Errors through errors.Is.
var ErrInvalid = errors.New("invalid input")

// Issue is one failed check on one field.
type Issue struct {
	Field   string
	Message string
}

// Errors collects issues for a whole form.
type Errors struct {
	Issues []Issue
}

func (e *Errors) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + ": " + is.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalid) hold.
func (e *Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Add records an issue when ok is false.
func (e *Errors) Add(ok bool, field, message string) {
	if !ok {
		e.Issues = append(e.Issues, Issue{Field: field, Message: message})
	}
}

// Err returns e when it holds issues, otherwise nil.
func (e *Errors) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}
