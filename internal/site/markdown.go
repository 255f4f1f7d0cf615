package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed content
var contentFS embed.FS

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle("github")),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// renderMarkdownDir converts every .md file under dir, keyed by base name.
// Raw HTML in the sources is escaped.
func renderMarkdownDir(md goldmark.Markdown, dir string) (map[string]template.HTML, error) {
	entries, err := fs.ReadDir(contentFS, dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string]template.HTML, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		src, err := contentFS.ReadFile(path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("converting %s: %w", e.Name(), err)
		}
		out[strings.TrimSuffix(e.Name(), ".md")] = template.HTML(buf.String()) //nolint:gosec // goldmark escapes raw HTML without WithUnsafe
	}
	return out, nil
}
