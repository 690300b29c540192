package rehype

import (
	"sort"
	"strings"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// ComponentsStage applies per-tag inline styles, standing in for the
// custom heading and link components the blog layout uses.
type ComponentsStage struct {
	// Styles maps a tag name to the style attribute it receives.
	Styles map[string]string
}

func (*ComponentsStage) Name() string           { return "components" }
func (*ComponentsStage) Requires() []Capability { return nil }
func (*ComponentsStage) Provides() []Capability { return []Capability{CapComponents} }

func (s *ComponentsStage) Apply(tree *hast.Node) (*hast.Node, error) {
	if len(s.Styles) == 0 {
		return tree, nil
	}
	tags := make([]string, 0, len(s.Styles))
	for tag := range s.Styles {
		tags = append(tags, strings.ToLower(tag))
	}
	sort.Strings(tags)
	hast.VisitElements(tree, func(n *hast.Node) bool { return n.IsElement(tags...) },
		func(n, _ *hast.Node, _ int) hast.Action {
			n.Set("style", s.style(n.Tag))
			return hast.Continue
		})
	return tree, nil
}

func (s *ComponentsStage) style(tag string) string {
	for k, v := range s.Styles {
		if strings.EqualFold(k, tag) {
			return v
		}
	}
	return ""
}
