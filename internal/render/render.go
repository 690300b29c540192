// Package render turns transformed post trees into complete HTML pages.
package render

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"html/template"
	"time"

	"github.com/dgallion1/mdxblog/internal/hast"
	"github.com/dgallion1/mdxblog/internal/parser"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}{{if .SiteTitle}} | {{.SiteTitle}}{{end}}</title>
{{- with .Meta.Description}}
<meta name="description" content="{{.}}">
{{- end}}
</head>
<body>
<article class="post">
<h1>{{.Title}}</h1>
{{- if not .Meta.Date.IsZero}}
<time datetime="{{.Meta.Date.Format "2006-01-02"}}">{{.Meta.Date.Format "January 2, 2006"}}</time>
{{- end}}
{{- with .Meta.Tags}}
<ul class="tags">{{range .}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{.Body}}
</article>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.SiteTitle}}</title>
</head>
<body>
<h1>{{.SiteTitle}}</h1>
<ul class="posts">
{{- range .Entries}}
<li><a href="/blog/{{.Slug}}">{{.Title}}</a>{{if not .Date.IsZero}} <time datetime="{{.Date.Format "2006-01-02"}}">{{.Date.Format "2006-01-02"}}</time>{{end}}
{{- with .Excerpt}}<p>{{.}}</p>{{end}}</li>
{{- end}}
</ul>
</body>
</html>
`

// Page is a rendered document with its validator.
type Page struct {
	HTML []byte
	ETag string
}

// IndexEntry is one post in the listing page.
type IndexEntry struct {
	Slug    string
	Title   string
	Date    time.Time
	Excerpt string
}

// Renderer owns the parsed layouts.
type Renderer struct {
	SiteTitle string
	page      *template.Template
	index     *template.Template
}

func NewRenderer(siteTitle string) *Renderer {
	return &Renderer{
		SiteTitle: siteTitle,
		page:      template.Must(template.New("page").Parse(pageTemplate)),
		index:     template.Must(template.New("index").Parse(indexTemplate)),
	}
}

// Fragment serializes a tree without any layout.
func Fragment(tree *hast.Node) (string, error) {
	return hast.RenderString(tree)
}

// Page renders the full document: the title as h1 followed by the body.
func (r *Renderer) Page(title string, meta parser.FrontMatter, tree *hast.Node) (*Page, error) {
	body, err := Fragment(tree)
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}

	var buf bytes.Buffer
	err = r.page.Execute(&buf, map[string]any{
		"SiteTitle": r.SiteTitle,
		"Title":     title,
		"Meta":      meta,
		"Body":      template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return newPage(buf.Bytes()), nil
}

// Index renders the post listing.
func (r *Renderer) Index(entries []IndexEntry) (*Page, error) {
	var buf bytes.Buffer
	err := r.index.Execute(&buf, map[string]any{
		"SiteTitle": r.SiteTitle,
		"Entries":   entries,
	})
	if err != nil {
		return nil, fmt.Errorf("execute index template: %w", err)
	}
	return newPage(buf.Bytes()), nil
}

func newPage(b []byte) *Page {
	return &Page{HTML: b, ETag: ETag(b)}
}

// ETag returns a strong entity tag for b.
func ETag(b []byte) string {
	return fmt.Sprintf(`"%x"`, sha256.Sum256(b))
}
