package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// MarkdownParser handles Markdown and MDX posts using goldmark. Raw HTML
// and inline components in the source are passed through.
type MarkdownParser struct {
	md goldmark.Markdown
}

func NewMarkdownParser() *MarkdownParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			meta.Meta,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &MarkdownParser{md: md}
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ctx := parser.NewContext()
	var buf bytes.Buffer
	if err := p.md.Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	fm, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	matter, err := FrontMatterFromMap(fm)
	if err != nil {
		return nil, err
	}

	tree, err := hast.ParseFragment(&buf)
	if err != nil {
		return nil, err
	}

	doc := newDocument(filename, tree)
	doc.Meta = matter
	if matter.Title != "" {
		doc.Title = matter.Title
	}
	return doc, nil
}
