package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/primeweb/site/internal/http/health"
	pages "github.com/primeweb/site/internal/http/site"
	"github.com/primeweb/site/internal/http/v1/consent"
	"github.com/primeweb/site/internal/http/v1/links"
	"github.com/primeweb/site/internal/http/v1/routes"
	"github.com/primeweb/site/internal/platform/auth"
	"github.com/primeweb/site/internal/platform/config"
	"github.com/primeweb/site/internal/platform/database"
	"github.com/primeweb/site/internal/platform/deeplink"
	"github.com/primeweb/site/internal/platform/firebase"
	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/middleware"
	"github.com/primeweb/site/internal/platform/respond"
	consentsvc "github.com/primeweb/site/internal/service/consent"
	convsvc "github.com/primeweb/site/internal/service/conversation"
	leadsvc "github.com/primeweb/site/internal/service/lead"
	"github.com/primeweb/site/internal/service/notify"
	"github.com/primeweb/site/internal/service/relay"
	web "github.com/primeweb/site/internal/site"
)

const (
	apiPrefix   = "/v1"
	docsPath    = "/api-docs"
	maxBodySize = 1 << 20 // 1 MB

	apiTitle       = "PRIME WEB API"
	calendarOrigin = "https://calendar.google.com"
)

// deps is everything the router serves from.
type deps struct {
	api     routes.Deps
	pages   *pages.Handler
	checks  []health.Check
	origins []string
}

// app owns the handler and the clients that must be closed on shutdown.
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// newApp connects every backend cfg selects and builds the router.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}
	fail := func(err error) (*app, error) {
		_ = a.Close()
		return nil, err
	}

	var clients *firebase.Clients
	if cfg.UsesFirebase() {
		c, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:   cfg.Firebase.ProjectID,
			Credentials: cfg.Firebase.Credentials,
			Firestore:   cfg.Chat.Store == config.StoreFirestore || cfg.Consent.Store == config.StoreFirestore,
		})
		if err != nil {
			return fail(err)
		}
		clients = c
		a.closers = append(a.closers, c.Close)
	}

	var checks []health.Check
	var chatStore convsvc.Store
	switch cfg.Chat.Store {
	case config.StoreFirestore:
		chatStore = convsvc.NewFirestoreStore(clients.Firestore)
	case config.StorePostgres:
		db, err := database.Open(cfg.Postgres.DSN)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, db.Close)
		pg := convsvc.NewPostgresStore(db)
		if err := pg.Migrate(); err != nil {
			return fail(fmt.Errorf("migrating conversations: %w", err))
		}
		chatStore = pg
		checks = append(checks, health.Check{Name: "postgres", Probe: database.Probe(db)})
	default:
		chatStore = convsvc.NewMemoryStore()
	}

	var consentStore consentsvc.Store = consentsvc.NewMemoryStore()
	if cfg.Consent.Store == config.StoreFirestore {
		consentStore = consentsvc.NewFirestoreStore(clients.Firestore)
	}

	notifier, err := newNotifier(cfg.Notify)
	if err != nil {
		return fail(err)
	}

	submitter := relay.NewClient(&http.Client{},
		relay.WithEndpoint(cfg.Relay.Endpoint),
		relay.WithTimeout(cfg.Relay.Timeout),
	)

	whatsAppURL, err := deeplink.WhatsApp(cfg.WhatsApp.Number, cfg.WhatsApp.DefaultMessage)
	if err != nil {
		return fail(fmt.Errorf("whatsapp link: %w", err))
	}
	renderer, err := web.NewRenderer(web.Info{
		Name:        cfg.SiteName,
		BaseURL:     cfg.BaseURL,
		WhatsAppURL: whatsAppURL,
		BookingURL:  cfg.Booking.ScheduleURL,
	})
	if err != nil {
		return fail(fmt.Errorf("site templates: %w", err))
	}

	leads := leadsvc.NewService(submitter, web.PositionTitles(), leadsvc.WithNotifier(notifier))
	manager := convsvc.NewManager(chatStore, submitter, cfg.WhatsApp.Number,
		convsvc.WithNotifier(notifier),
		convsvc.WithDefaultLanguage(cfg.Chat.Language),
	)

	var verifier auth.Verifier
	if clients != nil {
		verifier = auth.NewFirebaseVerifier(clients.Auth, cfg.AdminEmails()...)
	}

	a.handler = newRouter(deps{
		api: routes.Deps{
			Verifier:      verifier,
			Conversations: manager,
			Leads:         leads,
			Positions:     web.PositionTitles(),
			Consent:       consentsvc.NewService(consentStore, consentsvc.WithBannerDelay(cfg.Consent.BannerDelay)),
			ConsentCookie: consent.Options{CookieName: cfg.Consent.CookieName, Secure: cfg.SecureCookies()},
			Links: links.Config{
				WhatsAppNumber: cfg.WhatsApp.Number,
				DefaultMessage: cfg.WhatsApp.DefaultMessage,
				BookingURL:     cfg.Booking.ScheduleURL,
			},
			MaxIdle: cfg.Chat.MaxIdle,
			Now:     time.Now,
		},
		pages:   pages.New(renderer, leads),
		checks:  checks,
		origins: cfg.AllowedOrigins(),
	})
	return a, nil
}

// newNotifier combines every configured lead channel.
func newNotifier(cfg config.NotifyConfig) (notify.Notifier, error) {
	var channels notify.Multi
	if cfg.SNSTopicARN != "" {
		n, err := notify.NewSNSNotifier(cfg.AWSRegion, cfg.SNSTopicARN)
		if err != nil {
			return nil, err
		}
		channels = append(channels, n)
	}
	if cfg.TwilioEnabled() {
		channels = append(channels, notify.NewTwilioNotifier(
			cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, cfg.TwilioTo, cfg.TwilioAsChat))
	}
	if len(channels) == 0 {
		return notify.Nop{}, nil
	}
	return channels, nil
}

// newRouter mounts health, the /v1 API and the HTML pages.
func newRouter(d deps) http.Handler {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		middleware.Vary(),
		middleware.CORS(d.origins...),
		middleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only run behind a proxy that sets it.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxBodySize),
		applog.RequestLogger(),
		applog.AccessLogger("/health"),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(d.checks...))

	router.Route(apiPrefix, func(r chi.Router) {
		r.Use(middleware.Security(apiPrefix + docsPath))
		r.NotFound(respond.NotFoundHandler())
		r.MethodNotAllowed(respond.MethodNotAllowedHandler())
		routes.Register(newAPI(r), d.api)
	})

	pageSecurity := middleware.PageSecurity(calendarOrigin)
	router.Group(func(r chi.Router) {
		r.Use(pageSecurity)
		d.pages.Mount(r)
	})
	router.NotFound(pageSecurity(http.HandlerFunc(d.pages.NotFound)).ServeHTTP)

	return router
}

// newAPI builds the huma API on r. Wildcard or unknown Accept values fall
// back to JSON; huma's negotiation only matches exact types.
func newAPI(r chi.Router) huma.API {
	cfg := huma.DefaultConfig(apiTitle, Version)
	cfg.DocsPath = docsPath
	cfg.Servers = []*huma.Server{{URL: apiPrefix}}
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	api := humachi.New(r, cfg)

	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	return api
}

// addCBORContent documents application/cbor wherever JSON is accepted or returned.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
