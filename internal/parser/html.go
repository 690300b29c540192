package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// HTMLParser handles pre-rendered HTML posts. Only the body is kept.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := hast.NewRoot()
	if body := findElement(doc, "body"); body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if n := hast.FromHTML(c); n != nil {
				tree.Append(n)
			}
		}
	}

	out := newDocument(filename, tree)
	if title := findElement(doc, "title"); title != nil {
		if t := textContent(title); t != "" {
			out.Title = t
			out.Meta.Title = t
		}
	}
	if desc := findMeta(doc, "description"); desc != "" {
		out.Meta.Description = desc
	}
	return out, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findMeta returns the content of <meta name="...">.
func findMeta(n *html.Node, name string) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var key, content string
		for _, a := range n.Attr {
			switch a.Key {
			case "name":
				key = a.Val
			case "content":
				content = a.Val
			}
		}
		if strings.EqualFold(key, name) {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findMeta(c, name); v != "" {
			return v
		}
	}
	return ""
}
