// Package consent stores the cookie banner choice per visitor.
package consent

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/timeutil"
	consentsvc "github.com/primeweb/site/internal/service/consent"
)

const cookieMaxAge = 365 * 24 * time.Hour

// Options controls the visitor cookie.
type Options struct {
	CookieName string
	Secure     bool
	// NewID mints visitor ids; uuid.NewString when nil.
	NewID func() string
}

type visitorKey struct{}

type visitor struct {
	id    string
	fresh bool
}

// Register registers consent endpoints.
func Register(api huma.API, svc *consentsvc.Service, opts Options) {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	withVisitor := huma.Middlewares{visitorMiddleware(opts)}

	huma.Register(api, huma.Operation{
		OperationID: "get-consent",
		Method:      http.MethodGet,
		Path:        "/consent",
		Summary:     "Cookie banner status",
		Description: "Reports whether the banner should be shown. Issues the visitor cookie when missing.",
		Tags:        []string{"Consent"},
		Middlewares: withVisitor,
	}, func(ctx context.Context, _ *StatusInput) (*StatusOutput, error) {
		v := visitorFrom(ctx)
		id := v.id
		if v.fresh {
			id = ""
		}
		st, err := svc.Status(ctx, id)
		if err != nil {
			return nil, mapServiceError(err)
		}
		out := &StatusOutput{Body: Status{
			ShowBanner:    st.ShowBanner,
			BannerDelayMs: st.BannerDelayMs,
			StorageKey:    consentsvc.StorageKey,
		}}
		if st.Record != nil {
			c := toHTTPConsent(*st.Record)
			out.Body.Consent = &c
		}
		if v.fresh {
			out.SetCookie = visitorCookie(opts, v.id)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-consent",
		Method:      http.MethodPut,
		Path:        "/consent",
		Summary:     "Store the cookie banner choice",
		Tags:        []string{"Consent"},
		Middlewares: withVisitor,
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		v := visitorFrom(ctx)
		r, err := svc.Save(ctx, v.id, input.Body.Choice, input.Body.Analytics, input.Body.Marketing)
		if err != nil {
			return nil, mapServiceError(err)
		}
		out := &SaveOutput{Body: toHTTPConsent(r)}
		if v.fresh {
			out.SetCookie = visitorCookie(opts, v.id)
		}
		return out, nil
	})
}

// visitorMiddleware reads the visitor cookie, minting an id when absent.
func visitorMiddleware(opts Options) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		v := visitor{}
		if c, err := huma.ReadCookie(ctx, opts.CookieName); err == nil && c.Value != "" {
			v.id = c.Value
		} else {
			v = visitor{id: opts.NewID(), fresh: true}
		}
		ctx = huma.WithContext(ctx, applog.WithVisitor(ctx.Context(), v.id))
		next(huma.WithValue(ctx, visitorKey{}, v))
	}
}

func visitorFrom(ctx context.Context) visitor {
	v, _ := ctx.Value(visitorKey{}).(visitor)
	return v
}

func visitorCookie(opts Options, id string) http.Cookie {
	return http.Cookie{
		Name:     opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, consentsvc.ErrInvalidChoice):
		return huma.Error422UnprocessableEntity("unknown consent choice")
	case errors.Is(err, consentsvc.ErrNoVisitor):
		return huma.Error400BadRequest("visitor cookie is required")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPConsent(r consentsvc.Record) Consent {
	return Consent{Analytics: r.Analytics, Marketing: r.Marketing, Date: timeutil.NewTime(r.Date)}
}
