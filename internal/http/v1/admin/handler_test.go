package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/primeweb/site/internal/platform/auth"
)

type fakeCleaner struct {
	got time.Duration
	n   int
	err error
}

func (f *fakeCleaner) Cleanup(_ context.Context, maxIdle time.Duration) (int, error) {
	f.got = maxIdle
	return f.n, f.err
}

var fixedNow = time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestRouter(cleaner Cleaner, staff *auth.Staff) chi.Router {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("AdminTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, &auth.MockVerifier{Staff: staff}))
	Register(api, cleaner, 24*time.Hour, func() time.Time { return fixedNow })
	return router
}

func cleanup(router http.Handler, query string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/conversations/cleanup"+query, nil)
	if authorized {
		req.Header.Set("Authorization", "Bearer token")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCleanupDefaultsMaxIdle(t *testing.T) {
	cleaner := &fakeCleaner{n: 3}
	resp := cleanup(newTestRouter(cleaner, auth.TestAdmin()), "", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if cleaner.got != 24*time.Hour {
		t.Fatalf("expected default maxIdle, got %v", cleaner.got)
	}
	var res CleanupResult
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if res.Deactivated != 3 || !res.Cutoff.Equal(fixedNow.Add(-24*time.Hour)) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCleanupCustomMaxIdle(t *testing.T) {
	cleaner := &fakeCleaner{}
	if resp := cleanup(newTestRouter(cleaner, auth.TestAdmin()), "?maxIdle=90m", true); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if cleaner.got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", cleaner.got)
	}
}

func TestCleanupRejectsBadMaxIdle(t *testing.T) {
	for _, q := range []string{"?maxIdle=soon", "?maxIdle=-1h", "?maxIdle=0s"} {
		if resp := cleanup(newTestRouter(&fakeCleaner{}, auth.TestAdmin()), q, true); resp.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", q, resp.Code)
		}
	}
}

func TestCleanupRequiresAdmin(t *testing.T) {
	if resp := cleanup(newTestRouter(&fakeCleaner{}, auth.TestAdmin()), "", false); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	editor := &auth.Staff{UID: "editor", EmailVerified: true}
	if resp := cleanup(newTestRouter(&fakeCleaner{}, editor), "", true); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestCleanupStoreFailure(t *testing.T) {
	resp := cleanup(newTestRouter(&fakeCleaner{err: errors.New("boom")}, auth.TestAdmin()), "", true)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
