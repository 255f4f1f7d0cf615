// Package site holds the marketing content, the route table and the
// html/template renderer for the public pages.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	PageHome, PagePricing, PageCareers, PageBlog, PagePost,
	PageLegal, PageService, PageNotFound,
}

// Info is the site-wide data every page receives.
type Info struct {
	Name        string
	BaseURL     string
	WhatsAppURL string
	BookingURL  string
}

// ContactForm is the state of the home contact form across a submission.
type ContactForm struct {
	Values map[string]string
	Errors map[string]string
	Sent   bool
	Failed bool
}

// View is what a page template executes against.
type View struct {
	Site  Info
	Title string
	Path  string
	Year  int
	Body  any
}

// Renderer executes the embedded page templates. It is safe for concurrent use.
type Renderer struct {
	info  Info
	pages map[string]*template.Template
	legal map[string]template.HTML
	posts map[string]template.HTML
	now   func() time.Time
}

// NewRenderer parses every template and converts every markdown document once.
func NewRenderer(info Info) (*Renderer, error) {
	md := newMarkdown()
	legal, err := renderMarkdownDir(md, "content/legal")
	if err != nil {
		return nil, fmt.Errorf("legal pages: %w", err)
	}
	posts, err := renderMarkdownDir(md, "content/blog")
	if err != nil {
		return nil, fmt.Errorf("blog posts: %w", err)
	}

	funcs := template.FuncMap{
		"date": func(t time.Time) string { return formatDate(t) },
		"inc":  func(i int) int { return i + 1 },
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{info: info, pages: pages, legal: legal, posts: posts, now: time.Now}, nil
}

// Render writes page to w. The output is buffered so a template error never
// leaves a half-written page.
func (r *Renderer) Render(w io.Writer, page, title, path string, body any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	err := t.Execute(&buf, View{
		Site:  r.info,
		Title: title,
		Path:  path,
		Year:  r.now().Year(),
		Body:  body,
	})
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// Legal returns a rendered legal document by key.
func (r *Renderer) Legal(key string) (template.HTML, bool) {
	h, ok := r.legal[key]
	return h, ok
}

// PostBody returns a rendered blog post body by slug.
func (r *Renderer) PostBody(slug string) (template.HTML, bool) {
	h, ok := r.posts[slug]
	return h, ok
}

// Info returns the site-wide data.
func (r *Renderer) Info() Info {
	return r.info
}

var months = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// formatDate renders "15 Ene 2024".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}
