package rehype

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// Slugger hands out unique slugs for one document.
type Slugger struct {
	prefix string
	seen   map[string]bool
}

// NewSlugger returns a Slugger whose slugs all start with prefix.
func NewSlugger(prefix string) *Slugger {
	return &Slugger{prefix: prefix, seen: make(map[string]bool)}
}

// Reserve marks id as taken without modifying it.
func (s *Slugger) Reserve(id string) {
	s.seen[id] = true
}

// Slug returns the prefixed Slugify(text), suffixed with -1, -2, ... until unused.
// An empty base is always suffixed.
func (s *Slugger) Slug(text string) string {
	base := s.prefix + Slugify(text)
	candidate := base
	for n := 1; candidate == s.prefix || s.seen[candidate]; n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	s.seen[candidate] = true
	return candidate
}

// Slugify lowercases text and collapses every run of whitespace and
// punctuation into a single hyphen. Letters, digits, marks and underscores
// are kept.
func Slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// SlugStage assigns an id to every heading.
type SlugStage struct {
	// Prefix is prepended to generated ids.
	Prefix string
}

func (*SlugStage) Name() string           { return "slug" }
func (*SlugStage) Requires() []Capability { return nil }
func (*SlugStage) Provides() []Capability { return []Capability{CapSlugs} }

func (s *SlugStage) Apply(tree *hast.Node) (*hast.Node, error) {
	headings := hast.FindAll(tree, hast.IsHeading)
	slugger := NewSlugger(s.Prefix)
	// The first heading to carry an id keeps it; later repeats are
	// renamed below.
	keep := make(map[*hast.Node]bool)
	for _, h := range headings {
		if id, ok := h.Props.Get("id"); ok && id != "" && !slugger.seen[id] {
			slugger.Reserve(id)
			keep[h] = true
		}
	}
	for _, h := range headings {
		if keep[h] {
			continue
		}
		h.Set("id", slugger.Slug(hast.TextContent(h)))
	}
	return tree, nil
}
