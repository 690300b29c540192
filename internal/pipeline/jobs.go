package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a build job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusParsing      JobStatus = "parsing"
	StatusTransforming JobStatus = "transforming"
	StatusRendering    JobStatus = "rendering"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks the build of a single post.
type Job struct {
	mu sync.Mutex

	ID   string
	Slug string

	Status    JobStatus
	Error     string
	ETag      string
	Changed   bool
	CreatedAt time.Time
	UpdatedAt time.Time

	done chan struct{}
}

// NewJob returns a queued job for slug.
func NewJob(id, slug string) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		Slug:      slug,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
		done:      make(chan struct{}),
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes finished jobs not updated within the TTL. Jobs still in
// flight are kept.
func (s *JobStore) Cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		snap := job.Snapshot()
		if snap.Status.Done() && now.Sub(snap.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed with err and releases waiters.
func (j *Job) Fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Error = err.Error()
	j.UpdatedAt = time.Now()
	j.closeDone()
}

// Complete marks the job completed and releases waiters.
func (j *Job) Complete(etag string, changed bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusCompleted
	j.ETag = etag
	j.Changed = changed
	j.UpdatedAt = time.Now()
	j.closeDone()
}

func (j *Job) closeDone() {
	if j.done == nil {
		return
	}
	select {
	case <-j.done:
	default:
		close(j.done)
	}
}

// Done is closed once the job reaches a terminal status. It is nil for
// jobs not built with NewJob.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Slug      string    `json:"slug"`
	Status    JobStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	ETag      string    `json:"etag,omitempty"`
	Changed   bool      `json:"changed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:        j.ID,
		Slug:      j.Slug,
		Status:    j.Status,
		Error:     j.Error,
		ETag:      j.ETag,
		Changed:   j.Changed,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
