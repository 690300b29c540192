// Package hast models a parsed HTML document as a small closed tree of
// root, element, text and comment nodes.
package hast

import (
	"strings"
)

// NodeType identifies which variant a Node is.
type NodeType int

const (
	RootNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "root"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	}
	return "unknown"
}

// Node is a tree node. Only element nodes use Tag and Props; only text and
// comment nodes use Value. Root and element nodes own their Children.
type Node struct {
	Type     NodeType
	Tag      string
	Props    Properties
	Value    string
	Children []*Node
}

// NewRoot returns a root node holding children.
func NewRoot(children ...*Node) *Node {
	return &Node{Type: RootNode, Children: children}
}

// NewElement returns an element node with the given lowercase tag.
func NewElement(tag string, children ...*Node) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(tag), Children: children}
}

func NewText(value string) *Node {
	return &Node{Type: TextNode, Value: value}
}

func NewComment(value string) *Node {
	return &Node{Type: CommentNode, Value: value}
}

// IsElement reports whether n is an element with one of the given tags.
// With no tags it matches any element.
func (n *Node) IsElement(tags ...string) bool {
	if n == nil || n.Type != ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Tag == t {
			return true
		}
	}
	return false
}

// Set sets an attribute and returns n for chaining.
func (n *Node) Set(key, value string) *Node {
	n.Props.Set(key, value)
	return n
}

// AddClass appends class names and returns n for chaining.
func (n *Node) AddClass(names ...string) *Node {
	n.Props.AddClass(names...)
	return n
}

// Append adds children at the end and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// InsertAt inserts child at index i, clamped to the valid range.
func (n *Node) InsertAt(i int, child *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// ReplaceChild swaps old for repl. It reports false when old is not a
// direct child of n.
func (n *Node) ReplaceChild(old, repl *Node) bool {
	for i, c := range n.Children {
		if c == old {
			n.Children[i] = repl
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Type:  n.Type,
		Tag:   n.Tag,
		Value: n.Value,
		Props: n.Props.Clone(),
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Tag != b.Tag || a.Value != b.Value {
		return false
	}
	if !a.Props.Equal(b.Props) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// TextContent concatenates all descendant text, in document order.
func TextContent(n *Node) string {
	var buf strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Type == TextNode {
			buf.WriteString(n.Value)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return buf.String()
}

// HeadingLevel returns 1-6 for h1-h6 elements and 0 otherwise.
func HeadingLevel(n *Node) int {
	if !n.IsElement() || len(n.Tag) != 2 || n.Tag[0] != 'h' {
		return 0
	}
	if l := int(n.Tag[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}
