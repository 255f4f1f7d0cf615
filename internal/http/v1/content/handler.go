// Package content serves the blog and careers catalogues.
package content

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/pagination"
	"github.com/primeweb/site/internal/platform/timeutil"
	"github.com/primeweb/site/internal/site"
)

const cursorKind = "post"

// Register wires blog and careers routes. options are the values the
// application form accepts for puesto.
func Register(api huma.API, prefix string, options []string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-blog-posts",
		Method:      http.MethodGet,
		Path:        "/blog/posts",
		Summary:     "List blog posts",
		Description: "Returns blog posts newest first with cursor pagination. Use the cursor from the Link header to navigate.",
		Tags:        []string{"Content"},
	}, func(_ context.Context, input *PostsListInput) (*PostsListOutput, error) {
		query := url.Values{}
		if input.Category != "" {
			query.Set("category", input.Category)
		}
		if input.Query != "" {
			query.Set("q", input.Query)
		}
		window := pagination.Window[site.Post]{
			Kind:  cursorKind,
			Key:   func(p site.Post) string { return p.Slug },
			Path:  prefix + "/blog/posts",
			Query: query,
		}

		page, err := window.Slice(site.SearchPosts(input.Category, input.Query), input.Cursor, input.PageSize())
		if err != nil {
			return nil, mapCursorError(err)
		}

		out := &PostsListOutput{
			Link: page.Link,
			Body: PostsData{
				Posts:      make([]Post, len(page.Items)),
				Total:      page.Total,
				Categories: site.PostCategories(),
			},
		}
		for i, p := range page.Items {
			out.Body.Posts[i] = toHTTPPost(p)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-career-positions",
		Method:      http.MethodGet,
		Path:        "/careers/positions",
		Summary:     "List open positions",
		Tags:        []string{"Content"},
	}, func(_ context.Context, _ *PositionsListInput) (*PositionsListOutput, error) {
		src := site.Positions()
		data := PositionsData{Positions: make([]Position, len(src)), Options: options}
		for i, p := range src {
			data.Positions[i] = Position(p)
		}
		return &PositionsListOutput{Body: data}, nil
	})
}

func mapCursorError(err error) error {
	switch {
	case errors.Is(err, pagination.ErrCursorKind):
		return huma.Error400BadRequest("cursor type mismatch")
	case errors.Is(err, pagination.ErrUnknownCursor):
		return huma.Error400BadRequest("cursor references unknown post")
	default:
		return huma.Error400BadRequest("invalid cursor format")
	}
}

func toHTTPPost(p site.Post) Post {
	return Post{
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		PublishedAt: timeutil.NewTime(p.Published),
		ReadTime:    p.ReadTime,
		URL:         "/blog/" + p.Slug,
	}
}
