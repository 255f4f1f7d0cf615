package content

import "github.com/primeweb/site/internal/platform/pagination"

// PostsListInput defines query parameters for listing blog posts.
type PostsListInput struct {
	pagination.Params
	Category string `query:"category" doc:"Filter by category; Todos matches every post" example:"SEO"`
	Query    string `query:"q"        doc:"Case-insensitive search on title and excerpt"  example:"velocidad" maxLength:"100"`
}

// PositionsListInput for GET /careers/positions (no parameters).
type PositionsListInput struct{}
