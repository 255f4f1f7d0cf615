package wizard

import (
	"embed"
	"encoding/json"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when a conversation asks for an unknown language.
const DefaultLanguage = "es"

//go:embed i18n/*.json
var messageFiles embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error

	localizersMu sync.Mutex
	localizers   = map[string]*i18n.Localizer{}
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.Spanish)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		paths, err := fs.Glob(messageFiles, "i18n/*.json")
		if err != nil {
			bundleErr = err
			return
		}
		for _, p := range paths {
			if _, err := b.LoadMessageFileFS(messageFiles, p); err != nil {
				bundleErr = err
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// SupportedLanguage maps any tag to "es" or "en".
func SupportedLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLanguage
	}
	if base, _ := tag.Base(); base.String() == "en" {
		return "en"
	}
	return DefaultLanguage
}

func localizer(lang string) *i18n.Localizer {
	lang = SupportedLanguage(lang)
	localizersMu.Lock()
	defer localizersMu.Unlock()
	if l, ok := localizers[lang]; ok {
		return l
	}
	b, err := loadBundle()
	if err != nil {
		// Embedded files are fixed at build time; a broken bundle is a programming error.
		panic("wizard: loading messages: " + err.Error())
	}
	l := i18n.NewLocalizer(b, lang, DefaultLanguage)
	localizers[lang] = l
	return l
}

// text localizes id. Missing ids fall back to the id itself so a typo
// shows up in the conversation instead of failing the request.
func text(lang, id string, data map[string]any) string {
	s, err := localizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return s
}
