package rehype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// Placement says where the table of contents goes.
type Placement string

const (
	PlaceStart             Placement = "start"
	PlaceMarker            Placement = "marker"
	PlaceAfterFirstHeading Placement = "after-first-heading"
)

// ParsePlacement accepts the placement names used in pipeline config.
func ParsePlacement(s string) (Placement, error) {
	switch p := Placement(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PlaceStart, nil
	case PlaceStart, PlaceMarker, PlaceAfterFirstHeading:
		return p, nil
	}
	return "", fmt.Errorf("unknown toc placement %q", s)
}

// TOCStage builds a nested list of links to the document's headings and
// inserts it once.
type TOCStage struct {
	Placement Placement
	// Marker is the comment text replaced by the TOC with PlaceMarker.
	Marker string
	// Title is rendered above the list when non-empty.
	Title    string
	MinDepth int
	MaxDepth int
}

func (*TOCStage) Name() string           { return "toc" }
func (*TOCStage) Requires() []Capability { return []Capability{CapSlugs} }
func (*TOCStage) Provides() []Capability { return []Capability{CapTOC} }

type tocHeading struct {
	level int
	id    string
	text  string
}

// IsTOC matches the generated navigation element.
func IsTOC(n *hast.Node) bool {
	return n.IsElement("nav") && n.Props.HasClass("toc")
}

func (s *TOCStage) Apply(tree *hast.Node) (*hast.Node, error) {
	if hast.Find(tree, IsTOC) != nil {
		return tree, nil
	}
	nav := buildTOC(s.collect(tree), s.Title)
	s.insert(tree, nav)
	return tree, nil
}

func (s *TOCStage) depthRange() (int, int) {
	lo, hi := s.MinDepth, s.MaxDepth
	if lo < 1 {
		lo = 1
	}
	if hi < 1 || hi > 6 {
		hi = 6
	}
	return lo, hi
}

func (s *TOCStage) collect(tree *hast.Node) []tocHeading {
	lo, hi := s.depthRange()
	var out []tocHeading
	hast.Visit(tree, func(n, _ *hast.Node, _ int) hast.Action {
		if IsTOC(n) {
			return hast.SkipChildren
		}
		level := hast.HeadingLevel(n)
		if level == 0 || level < lo || level > hi {
			return hast.Continue
		}
		id := n.Props.Value("id")
		if id == "" {
			return hast.SkipChildren
		}
		out = append(out, tocHeading{
			level: level,
			id:    id,
			text:  strings.TrimSpace(hast.TextContent(n)),
		})
		return hast.SkipChildren
	})
	return out
}

type tocFrame struct {
	level int
	list  *hast.Node
	last  *hast.Node
}

func newTOCList(depth int) *hast.Node {
	return hast.NewElement("ol").AddClass("toc-level", "toc-level-"+strconv.Itoa(depth))
}

// buildTOC nests a list one level deeper whenever the heading level rises
// and closes nested lists when it falls back.
func buildTOC(headings []tocHeading, title string) *hast.Node {
	nav := hast.NewElement("nav").AddClass("toc")
	if title != "" {
		nav.Append(hast.NewElement("p", hast.NewText(title)).AddClass("toc-title"))
	}
	top := newTOCList(1)
	nav.Append(top)
	if len(headings) == 0 {
		return nav
	}

	stack := []*tocFrame{{level: headings[0].level, list: top}}
	for _, h := range headings {
		for len(stack) > 1 && h.level < stack[len(stack)-1].level {
			stack = stack[:len(stack)-1]
		}
		cur := stack[len(stack)-1]
		if h.level > cur.level && cur.last != nil {
			sub := lastChildList(cur.last)
			if sub == nil {
				sub = newTOCList(len(stack) + 1)
				cur.last.Append(sub)
			}
			cur = &tocFrame{level: h.level, list: sub}
			stack = append(stack, cur)
		}
		cur.last = tocItem(h)
		cur.list.Append(cur.last)
	}
	return nav
}

func lastChildList(item *hast.Node) *hast.Node {
	if n := len(item.Children); n > 0 && item.Children[n-1].IsElement("ol") {
		return item.Children[n-1]
	}
	return nil
}

func tocItem(h tocHeading) *hast.Node {
	hn := "h" + strconv.Itoa(h.level)
	link := hast.NewElement("a", hast.NewText(h.text)).
		AddClass("toc-link", "toc-link-"+hn).
		Set("href", "#"+h.id)
	return hast.NewElement("li", link).AddClass("toc-item", "toc-item-"+hn)
}

func (s *TOCStage) insert(tree *hast.Node, nav *hast.Node) {
	switch s.Placement {
	case PlaceMarker:
		if s.replaceMarker(tree, nav) {
			return
		}
	case PlaceAfterFirstHeading:
		var parent *hast.Node
		idx := -1
		hast.VisitElements(tree, func(n *hast.Node) bool { return n.IsElement("h1") },
			func(_, p *hast.Node, i int) hast.Action {
				parent, idx = p, i
				return hast.Stop
			})
		if parent != nil {
			parent.InsertAt(idx+1, nav)
			return
		}
	}
	tree.InsertAt(0, nav)
}

func (s *TOCStage) replaceMarker(tree *hast.Node, nav *hast.Node) bool {
	marker := s.Marker
	if marker == "" {
		marker = "toc"
	}
	var parent, target *hast.Node
	hast.Visit(tree, func(n, p *hast.Node, _ int) hast.Action {
		if p == nil {
			return hast.Continue
		}
		switch {
		case n.Type == hast.CommentNode && strings.TrimSpace(n.Value) == marker,
			n.IsElement("p") && strings.TrimSpace(hast.TextContent(n)) == "["+marker+"]":
			parent, target = p, n
			return hast.Stop
		}
		return hast.Continue
	})
	if target == nil {
		return false
	}
	return parent.ReplaceChild(target, nav)
}
