package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdxblog/internal/rehype"
)

var (
	postsDir      string
	pipelineFile  string
	siteTitle     string
	deterministic bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Build and inspect mdxblog posts",
	Long: `blogctl runs the same parse, transform and render pipeline as the server,
without the HTTP layer. Use it to export a static copy of the blog or to check
how a single file renders.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&postsDir, "posts", envOr("POSTS_DIR", "posts"), "Directory of post sources")
	rootCmd.PersistentFlags().StringVar(&pipelineFile, "pipeline", os.Getenv("PIPELINE_CONFIG"), "YAML stage list (default pipeline when empty)")
	rootCmd.PersistentFlags().StringVar(&siteTitle, "site-title", envOr("SITE_TITLE", "Blog"), "Site title used in page layouts")
	rootCmd.PersistentFlags().BoolVar(&deterministic, "deterministic", false, "Use sequential element ids so output is reproducible")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each step")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadPipeline builds the configured stage list.
func loadPipeline() (*rehype.Pipeline, error) {
	stages := rehype.DefaultStages()
	if pipelineFile != "" {
		data, err := os.ReadFile(pipelineFile)
		if err != nil {
			return nil, err
		}
		if stages, err = rehype.ParseStages(data); err != nil {
			return nil, fmt.Errorf("%s: %w", pipelineFile, err)
		}
	}

	var ids rehype.IDGenerator = rehype.UUIDGenerator{}
	if deterministic {
		ids = &rehype.SequenceGenerator{Prefix: "mdx"}
	}
	return rehype.Build(stages, ids)
}
