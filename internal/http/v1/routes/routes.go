package routes

import (
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/http/v1/admin"
	"github.com/primeweb/site/internal/http/v1/consent"
	"github.com/primeweb/site/internal/http/v1/content"
	"github.com/primeweb/site/internal/http/v1/conversation"
	"github.com/primeweb/site/internal/http/v1/lead"
	"github.com/primeweb/site/internal/http/v1/links"
	"github.com/primeweb/site/internal/platform/auth"
	consentsvc "github.com/primeweb/site/internal/service/consent"
	convsvc "github.com/primeweb/site/internal/service/conversation"
)

// Deps are the services behind the /v1 API.
type Deps struct {
	// Verifier guards the admin endpoints; they are not registered when nil.
	Verifier      auth.Verifier
	Conversations convsvc.Service
	Leads         lead.Service
	// Positions are the values the application form accepts.
	Positions     []string
	Consent       *consentsvc.Service
	ConsentCookie consent.Options
	Links         links.Config
	MaxIdle       time.Duration
	Now           func() time.Time
}

// Register wires all API routes into api.
func Register(api huma.API, deps Deps) {
	prefix := apiPrefix(api)

	// Operations without Security pass through the auth middleware.
	if deps.Verifier != nil {
		api.UseMiddleware(auth.NewAuthMiddleware(api, deps.Verifier))
	}

	conversation.Register(api, deps.Conversations, prefix)
	lead.Register(api, deps.Leads)
	consent.Register(api, deps.Consent, deps.ConsentCookie)
	links.Register(api, deps.Links)
	content.Register(api, prefix, deps.Positions)

	if deps.Verifier != nil {
		admin.Register(api, deps.Conversations, deps.MaxIdle, deps.Now)
	}
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
