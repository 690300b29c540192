package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdxblog/internal/content"
	"github.com/dgallion1/mdxblog/internal/pipeline"
	"github.com/dgallion1/mdxblog/internal/render"
	"github.com/dgallion1/mdxblog/internal/stats"
)

var buildOut string
var buildDrafts bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export every post as static HTML",
	Long:  `Build every post and write it to OUT/blog/<slug>/index.html, plus OUT/index.html.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger(cmd)
		pipe, err := loadPipeline()
		if err != nil {
			return err
		}

		store := content.NewStore(postsDir)
		slugs, err := store.Slugs()
		if err != nil {
			return err
		}

		renderer := render.NewRenderer(siteTitle)
		site := pipeline.NewSite()
		worker := pipeline.NewWorker(store, pipe, renderer, site, stats.NewRecorder(time.Hour), log)

		written := 0
		for _, slug := range slugs {
			b, err := worker.Build(cmd.Context(), slug)
			if err != nil {
				return fmt.Errorf("build %s: %w", slug, err)
			}
			if b.Meta.Draft && !buildDrafts {
				log.Debug("skipping draft", "slug", slug)
				continue
			}
			path := filepath.Join(buildOut, "blog", slug, "index.html")
			if err := writeFile(path, b.Page.HTML); err != nil {
				return err
			}
			log.Debug("wrote post", "slug", slug, "path", path)
			written++
		}

		var entries []render.IndexEntry
		for _, b := range site.List(buildDrafts) {
			entries = append(entries, render.IndexEntry{
				Slug:    b.Slug,
				Title:   b.Title,
				Date:    b.Meta.Date,
				Excerpt: b.Summary.Excerpt,
			})
		}
		index, err := renderer.Index(entries)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(buildOut, "index.html"), index.HTML); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d posts to %s (%s)\n", written, buildOut, pipe)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "public", "Output directory")
	buildCmd.Flags().BoolVar(&buildDrafts, "drafts", false, "Include draft posts")
	rootCmd.AddCommand(buildCmd)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
