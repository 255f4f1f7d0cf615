package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/primeweb/site/internal/platform/logging"
	appmiddleware "github.com/primeweb/site/internal/platform/middleware"
	"github.com/primeweb/site/internal/platform/pagination"
	"github.com/primeweb/site/internal/platform/respond"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ContentTest", "test"))
	Register(api, "/v1", []string{"Desarrollador Frontend", "Otro"})
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodePosts(t *testing.T, resp *httptest.ResponseRecorder) PostsData {
	t.Helper()
	var data PostsData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return data
}

// nextCursor pulls the cursor out of the rel="next" link.
func nextCursor(t *testing.T, link string) string {
	t.Helper()
	for _, part := range strings.Split(link, ", ") {
		if !strings.HasSuffix(part, `rel="next"`) {
			continue
		}
		raw := part[strings.Index(part, "<")+1 : strings.Index(part, ">")]
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("parse link: %v", err)
		}
		return u.Query().Get("cursor")
	}
	t.Fatalf("no next link in %q", link)
	return ""
}

func TestListPostsFirstPage(t *testing.T) {
	resp := get(t, newTestRouter(), "/blog/posts")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	data := decodePosts(t, resp)
	if data.Total != 6 || len(data.Posts) != 6 {
		t.Fatalf("expected all 6 posts on the default page, got %d/%d", len(data.Posts), data.Total)
	}
	if data.Posts[0].Slug != "tendencias-diseno-web-2024" || data.Posts[0].URL != "/blog/tendencias-diseno-web-2024" {
		t.Fatalf("unexpected first post %+v", data.Posts[0])
	}
	if len(data.Categories) != 3 {
		t.Fatalf("unexpected categories %v", data.Categories)
	}
	link := resp.Header().Get("Link")
	if strings.Contains(link, `rel="next"`) || strings.Contains(link, `rel="prev"`) {
		t.Fatalf("single page must not carry page links, got %q", link)
	}
}

func TestListPostsWalksPages(t *testing.T) {
	router := newTestRouter()
	resp := get(t, router, "/blog/posts?limit=4")
	first := decodePosts(t, resp)
	if len(first.Posts) != 4 {
		t.Fatalf("expected 4 posts, got %d", len(first.Posts))
	}
	link := resp.Header().Get("Link")
	if !strings.Contains(link, "/v1/blog/posts?") || strings.Contains(link, `rel="prev"`) {
		t.Fatalf("unexpected Link %q", link)
	}

	resp = get(t, router, "/blog/posts?limit=4&cursor="+nextCursor(t, link))
	second := decodePosts(t, resp)
	if len(second.Posts) != 2 || second.Posts[0].Slug != "ux-ui-diseno-centrado-usuario" {
		t.Fatalf("unexpected second page %+v", second.Posts)
	}
	if !strings.Contains(resp.Header().Get("Link"), `rel="prev"`) {
		t.Fatal("second page should link back")
	}
}

func TestListPostsFilters(t *testing.T) {
	router := newTestRouter()

	data := decodePosts(t, get(t, router, "/blog/posts?category=SEO"))
	if data.Total != 2 {
		t.Fatalf("expected 2 SEO posts, got %d", data.Total)
	}
	for _, p := range data.Posts {
		if p.Category != "SEO" {
			t.Fatalf("unexpected category %q", p.Category)
		}
	}

	data = decodePosts(t, get(t, router, "/blog/posts?q=redes"))
	if data.Total != 1 || data.Posts[0].Slug != "redes-sociales-empresas-2024" {
		t.Fatalf("unexpected search result %+v", data.Posts)
	}

	resp := get(t, router, "/blog/posts?category=SEO&limit=1")
	if link := resp.Header().Get("Link"); !strings.Contains(link, "category=SEO") {
		t.Fatalf("category must survive in links, got %q", link)
	}
}

func TestListPostsCursorErrors(t *testing.T) {
	router := newTestRouter()
	cases := map[string]string{
		"not-base64!!": "invalid cursor format",
		pagination.Cursor{Kind: "item", After: "x"}.Encode():    "cursor type mismatch",
		pagination.Cursor{Kind: "post", After: "gone"}.Encode(): "cursor references unknown post",
	}
	for cursor, detail := range cases {
		resp := get(t, router, "/blog/posts?cursor="+url.QueryEscape(cursor))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("cursor %q: expected 400, got %d", cursor, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), detail) {
			t.Fatalf("cursor %q: expected %q in %s", cursor, detail, resp.Body.String())
		}
	}
}

func TestListPostsLimitRange(t *testing.T) {
	resp := get(t, newTestRouter(), "/blog/posts?limit=500")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestListPostsCBOR(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/blog/posts?limit=2", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %s", ct)
	}
	var data map[string]any
	if err := cbor.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if posts, ok := data["posts"].([]any); !ok || len(posts) != 2 {
		t.Fatalf("unexpected cbor body %v", data)
	}
}

func TestListPositions(t *testing.T) {
	resp := get(t, newTestRouter(), "/careers/positions")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var data PositionsData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(data.Positions) != 3 || data.Positions[0].ID != "frontend-dev" {
		t.Fatalf("unexpected positions %+v", data.Positions)
	}
	if len(data.Options) != 2 || data.Options[1] != "Otro" {
		t.Fatalf("unexpected options %v", data.Options)
	}
}
