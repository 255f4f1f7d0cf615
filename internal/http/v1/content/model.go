package content

import "github.com/primeweb/site/internal/platform/timeutil"

// Post is a blog entry summary.
type Post struct {
	Slug        string        `json:"slug"        doc:"URL slug"              example:"guia-seo-principiantes"`
	Title       string        `json:"title"       doc:"Post title"            example:"Guía Completa de SEO para Principiantes"`
	Excerpt     string        `json:"excerpt"     doc:"Short summary"`
	Category    string        `json:"category"    doc:"Blog category"         example:"SEO"`
	PublishedAt timeutil.Time `json:"publishedAt" doc:"Publication date"`
	ReadTime    string        `json:"readTime"    doc:"Estimated reading time" example:"8 min"`
	URL         string        `json:"url"         doc:"Page path"             example:"/blog/guia-seo-principiantes"`
}

// Position is an open role.
type Position struct {
	ID           string   `json:"id"           doc:"Position identifier" example:"frontend-dev"`
	Title        string   `json:"title"        doc:"Role title"          example:"Desarrollador Frontend"`
	Department   string   `json:"department"   doc:"Team"`
	Type         string   `json:"type"         doc:"Contract type"       example:"Tiempo completo"`
	Location     string   `json:"location"     doc:"Where the role is based"`
	Description  string   `json:"description"  doc:"Role summary"`
	Requirements []string `json:"requirements" doc:"What we look for"`
}
