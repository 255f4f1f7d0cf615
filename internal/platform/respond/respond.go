package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/negotiation"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"

	msgNotFound         = "resource not found"
	msgMethodNotAllowed = "method not allowed"
	msgInternal         = "internal server error"
)

var negotiable = []string{
	contentTypeProblemJSON,
	"application/json",
	contentTypeProblemCBOR,
	"application/cbor",
}

var installOnce sync.Once

// Install makes every huma error pass through the request logger, so 4xx
// and 5xx responses produced by operations are logged like the router's own.
func Install() {
	installOnce.Do(func() {
		base := huma.NewErrorWithContext
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			logStatus(ctx, status, msg, errors.Join(errs...))
			return base(hctx, status, msg, errs...)
		}
	})
}

// NotFoundHandler answers unknown API routes with a 404 problem.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler answers with a 405 problem and an Allow header built from chi's routes.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// Recoverer turns panics into 500 problems. http.ErrAbortHandler is re-raised
// and nothing is written when the handler already sent headers.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				applog.LogError(r.Context(), "panic recovered", err, zap.ByteString("stack", debug.Stack()))
				if ww.Status() != 0 {
					return
				}
				WriteProblem(ww, r, http.StatusInternalServerError, msgInternal)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// WriteProblem renders an RFC 9457 problem as JSON, or CBOR when the client prefers it.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string, details ...*huma.ErrorDetail) {
	logStatus(r.Context(), status, detail, nil)
	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Errors: details,
	}

	if prefersCBOR(r.Header.Get("Accept")) {
		body, err := cbor.Marshal(problem)
		if err == nil {
			w.Header().Set("Content-Type", contentTypeProblemCBOR)
			w.WriteHeader(status)
			_, _ = w.Write(body)
			return
		}
		applog.LogError(r.Context(), "cbor encode problem", err)
	}

	w.Header().Set("Content-Type", contentTypeProblemJSON)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(problem); err != nil {
		applog.LogError(r.Context(), "encode problem", err)
	}
}

func prefersCBOR(accept string) bool {
	if accept == "" {
		return false
	}
	return strings.HasSuffix(negotiation.SelectQValueFast(accept, negotiable), "cbor")
}

// allowedMethods probes chi's route tree for every method matching the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	// Routes is the root mux even inside a mounted sub-router, so match
	// against the full path rather than the shifted RoutePath.
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}
	if path == "" {
		path = "/"
	}
	var allowed []string
	for _, m := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

func logStatus(ctx context.Context, status int, msg string, err error) {
	if msg == "" {
		msg = "request failed"
	}
	fields := []zap.Field{zap.Int("status", status)}
	switch {
	case status >= 500:
		applog.LogError(ctx, msg, err, fields...)
	case status >= 400:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		applog.LogWarn(ctx, msg, fields...)
	}
}
