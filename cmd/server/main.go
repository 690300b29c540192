package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/mdxblog/internal/api"
	"github.com/dgallion1/mdxblog/internal/config"
	"github.com/dgallion1/mdxblog/internal/content"
	"github.com/dgallion1/mdxblog/internal/pipeline"
	"github.com/dgallion1/mdxblog/internal/rehype"
	"github.com/dgallion1/mdxblog/internal/render"
	"github.com/dgallion1/mdxblog/internal/stats"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	stages := rehype.DefaultStages()
	if cfg.PipelineConfig != "" {
		data, err := os.ReadFile(cfg.PipelineConfig)
		if err != nil {
			log.Error("read pipeline config", "error", err)
			os.Exit(1)
		}
		if stages, err = rehype.ParseStages(data); err != nil {
			log.Error("invalid pipeline config", "path", cfg.PipelineConfig, "error", err)
			os.Exit(1)
		}
	}
	pipe, err := rehype.Build(stages, rehype.UUIDGenerator{})
	if err != nil {
		log.Error("invalid pipeline", "error", err)
		os.Exit(1)
	}
	log.Info("pipeline configured", "stages", pipe.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	renderer := render.NewRenderer(cfg.SiteTitle)
	worker := pipeline.NewWorker(
		content.NewStore(cfg.PostsDir),
		pipe,
		renderer,
		pipeline.NewSite(),
		stats.NewRecorder(cfg.StatsWindow),
		log,
	)
	orch := pipeline.NewOrchestrator(cfg, worker, log)
	orch.Start(ctx)

	if cfg.BuildOnStart {
		jobs, err := orch.SubmitAll()
		if err != nil {
			log.Warn("initial build incomplete", "error", err)
		}
		log.Info("queued initial build", "posts", len(jobs))
	}

	// Initialize HTTP server.
	srv := api.NewServer(orch, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting mdxblog", "port", cfg.Port, "posts_dir", cfg.PostsDir, "admin", cfg.AdminAPIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
