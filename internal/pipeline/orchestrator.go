package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/mdxblog/internal/config"
	"github.com/dgallion1/mdxblog/internal/content"
	"github.com/dgallion1/mdxblog/internal/stats"
)

var (
	ErrQueueFull = errors.New("build queue is full")
	ErrStopped   = errors.New("orchestrator stopped")
)

// Orchestrator manages the post build queue and worker pool.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	ids    *ULIDSource
	worker *Worker
	store  *content.Store
	site   *Site
	stats  *stats.Recorder
	log    *slog.Logger
	cfg    config.Config

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator wires the pool. Call Start before submitting jobs.
func NewOrchestrator(cfg config.Config, worker *Worker, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		ids:    NewULIDSource(),
		worker: worker,
		store:  worker.store,
		site:   worker.site,
		stats:  worker.stats,
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i, n := 0, max(o.cfg.WorkerCount, 1); i < n; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case now := <-ticker.C:
				o.jobs.Cleanup(now)
			}
		}
	}()
}

// Stop cancels in-flight builds and waits for the workers to exit.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()

	// Jobs the workers never picked up.
	for job := range o.queue {
		job.Fail(ErrStopped)
	}
}

// Submit queues a build of slug.
func (o *Orchestrator) Submit(slug string) (*Job, error) {
	if !content.ValidSlug(slug) {
		return nil, fmt.Errorf("%w: %q", content.ErrInvalidSlug, slug)
	}
	job := NewJob(o.ids.New(), slug)
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.Fail(ErrStopped)
		return job, ErrStopped
	}
	select {
	case o.queue <- job:
		return job, nil
	default:
		err := fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
		job.Fail(err)
		return job, err
	}
}

// SubmitAll queues a build of every post in the store and unpublishes
// pages whose source has been removed. Jobs that could not be queued are
// returned failed alongside the first error.
func (o *Orchestrator) SubmitAll() ([]*Job, error) {
	slugs, err := o.store.Slugs()
	if err != nil {
		return nil, err
	}
	if n := o.site.Retain(slugs); n > 0 {
		o.log.Info("unpublished removed posts", "count", n)
	}

	var firstErr error
	jobs := make([]*Job, 0, len(slugs))
	for _, slug := range slugs {
		job, err := o.Submit(slug)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		jobs = append(jobs, job)
	}
	return jobs, firstErr
}

// BuildNow builds slug on the calling goroutine, bypassing the queue.
func (o *Orchestrator) BuildNow(ctx context.Context, slug string) (*Built, error) {
	return o.worker.Build(ctx, slug)
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

func (o *Orchestrator) Site() *Site {
	return o.site
}

func (o *Orchestrator) Stats() *stats.Recorder {
	return o.stats
}

// Preview transforms an unpublished Markdown body.
func (o *Orchestrator) Preview(ctx context.Context, body []byte) (string, error) {
	return o.worker.Preview(ctx, bytes.NewReader(body))
}
