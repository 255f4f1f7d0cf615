// Package whatsapp is an HTTP Cloud Function that turns short links such as
// /presupuesto into a wa.me chat with the matching message already typed.
package whatsapp

import (
	"net/http"
	"net/url"
	"os"
	"strings"
	"unicode"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

const (
	defaultNumber = "34672616466"
	maxTextLength = 500
)

// messages maps short link codes to the text the chat opens with.
var messages = map[string]string{
	"":            "¡Hola! Me interesa saber más sobre los servicios de PRIME WEB.",
	"presupuesto": "¡Hola! Me gustaría pedir un presupuesto para mi proyecto.",
	"web":         "¡Hola! Quiero información sobre diseño y desarrollo web.",
	"seo":         "¡Hola! Me interesa mejorar el posicionamiento de mi web.",
	"marketing":   "¡Hola! Quiero información sobre marketing digital.",
	"empleo":      "¡Hola! Me gustaría saber si tenéis vacantes abiertas.",
}

func init() {
	functions.HTTP("WhatsApp", redirectHandler)
}

func redirectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.ToLower(strings.Trim(r.URL.Path, "/"))
	text, ok := messages[code]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if custom := strings.TrimSpace(r.URL.Query().Get("text")); custom != "" {
		text = custom
	}
	if len([]rune(text)) > maxTextLength {
		text = string([]rune(text)[:maxTextLength])
	}

	target := chatURL(number(), text)
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, target, http.StatusFound)
}

func number() string {
	n := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, os.Getenv("WHATSAPP_NUMBER"))
	if n == "" {
		return defaultNumber
	}
	return n
}

// chatURL encodes spaces as %20; WhatsApp shows a literal + otherwise.
func chatURL(number, text string) string {
	return "https://wa.me/" + number + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
