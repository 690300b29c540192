package hast

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML converts an x/net/html node and its subtree. Document nodes
// become roots; doctype and error nodes are dropped (nil).
func FromHTML(n *html.Node) *Node {
	var out *Node
	switch n.Type {
	case html.DocumentNode:
		out = NewRoot()
	case html.ElementNode:
		out = NewElement(n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			out.Props.Set(key, a.Val)
		}
	case html.TextNode:
		return NewText(n.Data)
	case html.CommentNode:
		return NewComment(n.Data)
	default:
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTML(c); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}

// ParseFragment parses an HTML body fragment into a root node.
func ParseFragment(r io.Reader) (*Node, error) {
	nodes, err := html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	root := NewRoot()
	for _, n := range nodes {
		if child := FromHTML(n); child != nil {
			root.Children = append(root.Children, child)
		}
	}
	return root, nil
}

// ToHTML converts n into x/net/html nodes. A root yields its children.
func ToHTML(n *Node) []*html.Node {
	switch n.Type {
	case RootNode:
		var out []*html.Node
		for _, c := range n.Children {
			out = append(out, ToHTML(c)...)
		}
		return out
	case TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Value}}
	case CommentNode:
		return []*html.Node{{Type: html.CommentNode, Data: n.Value}}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Props.Attrs() {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		for _, hc := range ToHTML(c) {
			el.AppendChild(hc)
		}
	}
	return []*html.Node{el}
}

// Render serializes n as HTML.
func Render(w io.Writer, n *Node) error {
	for _, hn := range ToHTML(n) {
		if err := html.Render(w, hn); err != nil {
			return fmt.Errorf("render %s: %w", n.Type, err)
		}
	}
	return nil
}

func RenderString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
