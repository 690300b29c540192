package pipeline

import (
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/mdxblog/internal/excerpt"
	"github.com/dgallion1/mdxblog/internal/parser"
	"github.com/dgallion1/mdxblog/internal/render"
)

// Built is a published post.
type Built struct {
	Slug    string
	Title   string
	Meta    parser.FrontMatter
	Summary excerpt.Summary
	Page    *render.Page
	BuiltAt time.Time
}

// Site is the in-memory set of built pages served over HTTP.
type Site struct {
	mu    sync.RWMutex
	pages map[string]*Built
}

func NewSite() *Site {
	return &Site{pages: make(map[string]*Built)}
}

// Put publishes b and reports whether the rendered output differs from
// the previously published version.
func (s *Site) Put(b *Built) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.pages[b.Slug]
	s.pages[b.Slug] = b
	return !ok || prev.Page.ETag != b.Page.ETag
}

func (s *Site) Get(slug string) (*Built, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.pages[slug]
	return b, ok
}

func (s *Site) Remove(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, slug)
}

// Retain drops every page whose slug is not in keep.
func (s *Site) Retain(keep []string) int {
	set := make(map[string]bool, len(keep))
	for _, k := range keep {
		set[k] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for slug := range s.pages {
		if !set[slug] {
			delete(s.pages, slug)
			removed++
		}
	}
	return removed
}

func (s *Site) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// List returns published posts, newest first, ties broken by slug. Drafts
// are left out unless includeDrafts is set.
func (s *Site) List(includeDrafts bool) []*Built {
	s.mu.RLock()
	out := make([]*Built, 0, len(s.pages))
	for _, b := range s.pages {
		if b.Meta.Draft && !includeDrafts {
			continue
		}
		out = append(out, b)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Meta.Date.Equal(out[j].Meta.Date) {
			return out[i].Meta.Date.After(out[j].Meta.Date)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
