package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
)

type staffContextKey struct{}

// NewAuthMiddleware creates huma middleware that enforces an operation's
// Security requirements. Operations without Security pass through; an
// "admin" scope additionally requires Staff.Admin.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		security := ctx.Operation().Security
		if len(security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			applog.LogWarn(ctx.Context(), "auth failed: missing or invalid header",
				zap.String("reason", "no_token"))
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		staff, err := verifier.Verify(ctx.Context(), token)
		if err == nil && staff == nil {
			err = ErrInvalidToken
		}
		if err != nil {
			applog.LogWarn(ctx.Context(), "auth failed: token verification failed",
				zap.String("reason", categorizeAuthError(err)))
			if errors.Is(err, ErrCertificateFetch) {
				ctx.SetHeader("Retry-After", "30")
				_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable,
					"authentication service temporarily unavailable")
				return
			}
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if requiresAdmin(security) && !staff.Admin {
			applog.LogWarn(ctx.Context(), "auth failed: admin scope required",
				zap.String("uid", staff.UID))
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "admin scope required")
			return
		}

		next(huma.WithValue(ctx, staffContextKey{}, staff))
	}
}

func requiresAdmin(security []map[string][]string) bool {
	for _, req := range security {
		for _, scopes := range req {
			if slices.Contains(scopes, ScopeAdmin) {
				return true
			}
		}
	}
	return false
}

// categorizeAuthError returns a safe category string for logging.
func categorizeAuthError(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	default:
		return "unknown"
	}
}

// StaffFromContext returns the authenticated staff member, or nil.
func StaffFromContext(ctx context.Context) *Staff {
	staff, _ := ctx.Value(staffContextKey{}).(*Staff)
	return staff
}
