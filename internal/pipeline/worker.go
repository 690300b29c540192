package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/mdxblog/internal/content"
	"github.com/dgallion1/mdxblog/internal/excerpt"
	"github.com/dgallion1/mdxblog/internal/hast"
	"github.com/dgallion1/mdxblog/internal/parser"
	"github.com/dgallion1/mdxblog/internal/rehype"
	"github.com/dgallion1/mdxblog/internal/render"
	"github.com/dgallion1/mdxblog/internal/stats"
)

// Worker builds posts: parse, transform, render, publish.
type Worker struct {
	store    *content.Store
	pipe     *rehype.Pipeline
	renderer *render.Renderer
	site     *Site
	stats    *stats.Recorder
	log      *slog.Logger
}

func NewWorker(store *content.Store, pipe *rehype.Pipeline, renderer *render.Renderer, site *Site, rec *stats.Recorder, log *slog.Logger) *Worker {
	return &Worker{
		store:    store,
		pipe:     pipe,
		renderer: renderer,
		site:     site,
		stats:    rec,
		log:      log,
	}
}

// Process runs a queued job to completion.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "slug", job.Slug)

	b, err := w.build(ctx, job.Slug, job.SetStatus)
	if err != nil {
		log.Error("build failed", "error", err)
		job.Fail(err)
		return
	}
	changed := w.site.Put(b)
	job.Complete(b.Page.ETag, changed)
	log.Info("build complete", "etag", b.Page.ETag, "changed", changed)
}

// Build synchronously builds and publishes slug. A post whose source has
// gone away is unpublished.
func (w *Worker) Build(ctx context.Context, slug string) (*Built, error) {
	b, err := w.build(ctx, slug, func(JobStatus) {})
	if errors.Is(err, content.ErrNotFound) {
		w.site.Remove(slug)
	}
	if err != nil {
		return nil, err
	}
	w.site.Put(b)
	return b, nil
}

func (w *Worker) build(ctx context.Context, slug string, phase func(JobStatus)) (*Built, error) {
	start := time.Now()

	phase(StatusParsing)
	t := time.Now()
	post, err := w.store.Load(slug)
	if err != nil {
		return nil, err
	}
	w.stats.Record(stats.PhaseParse, time.Since(t))

	phase(StatusTransforming)
	t = time.Now()
	tree, err := w.pipe.Run(ctx, post.Tree)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", slug, err)
	}
	w.stats.Record(stats.PhaseTransform, time.Since(t))

	phase(StatusRendering)
	t = time.Now()
	page, err := w.renderer.Page(post.Title, post.Meta, tree)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", slug, err)
	}
	w.stats.Record(stats.PhaseRender, time.Since(t))
	w.stats.Record(stats.PhaseTotal, time.Since(start))

	return &Built{
		Slug:    slug,
		Title:   post.Title,
		Meta:    post.Meta,
		Summary: excerpt.Summarize(tree, excerpt.DefaultConfig()),
		Page:    page,
		BuiltAt: time.Now(),
	}, nil
}

// Preview transforms a Markdown body without publishing it and returns the
// HTML fragment.
func (w *Worker) Preview(ctx context.Context, r io.Reader) (string, error) {
	doc, err := parser.NewMarkdownParser().Parse(r, "preview.mdx")
	if err != nil {
		return "", fmt.Errorf("parse preview: %w", err)
	}
	tree, err := w.pipe.Run(ctx, doc.Tree)
	if err != nil {
		return "", fmt.Errorf("transform preview: %w", err)
	}
	return render.Fragment(prependTitle(doc, tree))
}

// prependTitle adds the front matter title as h1 when one was given, the
// same heading the page layout renders.
func prependTitle(doc *parser.Document, tree *hast.Node) *hast.Node {
	if doc.Meta.Title == "" {
		return tree
	}
	tree.InsertAt(0, hast.NewElement("h1", hast.NewText(doc.Meta.Title)))
	return tree
}
