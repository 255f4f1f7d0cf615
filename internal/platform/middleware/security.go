package middleware

import (
	"net/http"
	"strings"
)

const permissionsPolicy = "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()"

// Security sets OWASP REST headers on API responses. Paths with a prefix in
// skipPaths are left alone, e.g. the API docs UI.
func Security(skipPaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", "frame-ancestors 'none'")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			setCommon(h)
			next.ServeHTTP(w, r)
		})
	}
}

// PageSecurity sets headers for server-rendered pages. frameSources are the
// origins allowed in frame-src, such as the appointment calendar.
func PageSecurity(frameSources ...string) func(http.Handler) http.Handler {
	frames := "'none'"
	if len(frameSources) > 0 {
		frames = strings.Join(frameSources, " ")
	}
	csp := strings.Join([]string{
		"default-src 'self'",
		"img-src 'self' data: https:",
		"style-src 'self' 'unsafe-inline'",
		"script-src 'self'",
		"connect-src 'self'",
		"frame-src " + frames,
		"frame-ancestors 'none'",
	}, "; ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			setCommon(h)
			next.ServeHTTP(w, r)
		})
	}
}

func setCommon(h http.Header) {
	h.Set("Permissions-Policy", permissionsPolicy)
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
}
