package rehype

import "github.com/dgallion1/mdxblog/internal/hast"

// AutolinkStage wraps the content of every slugged heading in a link to
// the heading itself. Running it twice nests a second link.
type AutolinkStage struct {
	// Class is set on the generated link when non-empty.
	Class string
}

func (*AutolinkStage) Name() string           { return "autolink-headings" }
func (*AutolinkStage) Requires() []Capability { return []Capability{CapSlugs} }
func (*AutolinkStage) Provides() []Capability { return []Capability{CapAnchors} }

func (s *AutolinkStage) Apply(tree *hast.Node) (*hast.Node, error) {
	for _, h := range hast.FindAll(tree, hast.IsHeading) {
		id := h.Props.Value("id")
		if id == "" {
			continue
		}
		link := hast.NewElement("a", h.Children...).Set("href", "#"+id)
		if s.Class != "" {
			link.AddClass(s.Class)
		}
		h.Children = []*hast.Node{link}
	}
	return tree, nil
}
