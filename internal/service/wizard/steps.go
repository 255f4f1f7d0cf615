package wizard

import (
	"strconv"
	"strings"

	"github.com/primeweb/site/internal/platform/validate"
)

// Option lists offered at the choice steps. Free text is accepted too.
var (
	ProjectTypes = []string{"Landing page", "Web corporativa", "Tienda online", "Aplicación web", "Otro"}
	Budgets      = []string{"Menos de 500€", "500€ - 1.000€", "1.000€ - 3.000€", "Más de 3.000€"}
)

// Minimum lengths, in characters after trimming.
const (
	minNameLength        = 2
	minDescriptionLength = 10
)

// rejection is a localized corrective message.
type rejection struct {
	messageID string
	data      map[string]any
}

// step binds a state to its field, prompt and check.
type step struct {
	field   func(*Record) *string
	options []string
	check   func(input string, options []string) (string, *rejection)
}

var steps = map[State]step{
	StateName: {
		field: func(r *Record) *string { return &r.Name },
		check: minLength(minNameLength),
	},
	StateSurname: {
		field: func(r *Record) *string { return &r.Surname },
		check: minLength(minNameLength),
	},
	StateEmail: {
		field: func(r *Record) *string { return &r.Email },
		check: checkEmail,
	},
	StateProjectType: {
		field:   func(r *Record) *string { return &r.ProjectType },
		options: ProjectTypes,
		check:   checkChoice,
	},
	StateBudget: {
		field:   func(r *Record) *string { return &r.Budget },
		options: Budgets,
		check:   checkChoice,
	},
	StateDescription: {
		field: func(r *Record) *string { return &r.Description },
		check: minLength(minDescriptionLength),
	},
}

func minLength(n int) func(string, []string) (string, *rejection) {
	return func(input string, _ []string) (string, *rejection) {
		if !validate.MinLen(input, n) {
			return "", &rejection{messageID: "error-min-length", data: map[string]any{"Min": n}}
		}
		return strings.TrimSpace(input), nil
	}
}

func checkEmail(input string, _ []string) (string, *rejection) {
	if !validate.Email(input) {
		return "", &rejection{messageID: "error-email"}
	}
	return strings.TrimSpace(input), nil
}

// checkChoice accepts an option number (1-based) or any non-empty text.
func checkChoice(input string, options []string) (string, *rejection) {
	v := strings.TrimSpace(input)
	if v == "" {
		return "", &rejection{messageID: "error-required"}
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return v, nil
}
