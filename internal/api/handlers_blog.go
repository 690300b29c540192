package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/mdxblog/internal/content"
	"github.com/dgallion1/mdxblog/internal/render"
	"github.com/go-chi/chi/v5"
)

type postSummary struct {
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Date           *time.Time `json:"date,omitempty"`
	Tags           []string   `json:"tags"`
	Description    string     `json:"description,omitempty"`
	Excerpt        string     `json:"excerpt"`
	Words          int        `json:"words"`
	ReadingMinutes int        `json:"reading_minutes"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts := s.orchestrator.Site().List(false)
	entries := make([]render.IndexEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, render.IndexEntry{
			Slug:    p.Slug,
			Title:   p.Title,
			Date:    p.Meta.Date,
			Excerpt: p.Summary.Excerpt,
		})
	}

	page, err := s.renderer.Index(entries)
	if err != nil {
		s.log.Error("render index failed", "error", err)
		jsonError(w, "failed to render index", http.StatusInternalServerError)
		return
	}
	writePage(w, r, page)
}

// handlePost serves a built page, building it on a cache miss.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	site := s.orchestrator.Site()

	b, ok := site.Get(slug)
	if !ok {
		var err error
		b, err = s.orchestrator.BuildNow(r.Context(), slug)
		switch {
		case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrInvalidSlug):
			jsonError(w, "post not found", http.StatusNotFound)
			return
		case err != nil:
			s.log.Error("on-demand build failed", "slug", slug, "error", err)
			jsonError(w, "failed to build post", http.StatusInternalServerError)
			return
		}
	}
	if b.Meta.Draft {
		jsonError(w, "post not found", http.StatusNotFound)
		return
	}
	writePage(w, r, b.Page)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts := s.orchestrator.Site().List(false)
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		sum := postSummary{
			Slug:           p.Slug,
			Title:          p.Title,
			Tags:           p.Meta.Tags,
			Description:    p.Meta.Description,
			Excerpt:        p.Summary.Excerpt,
			Words:          p.Summary.Words,
			ReadingMinutes: p.Summary.ReadingMinutes,
		}
		if sum.Tags == nil {
			sum.Tags = []string{}
		}
		if !p.Meta.Date.IsZero() {
			d := p.Meta.Date
			sum.Date = &d
		}
		out = append(out, sum)
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": out})
}

func writePage(w http.ResponseWriter, r *http.Request, page *render.Page) {
	w.Header().Set("ETag", page.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == page.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page.HTML)
}
