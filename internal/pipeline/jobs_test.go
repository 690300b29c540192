package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("test-1", "hello")
	if job.Status != StatusQueued {
		t.Fatalf("expected queued, got %q", job.Status)
	}

	for _, status := range []JobStatus{StatusParsing, StatusTransforming, StatusRendering} {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(status)

		if job.Status != status {
			t.Errorf("expected status %q, got %q", status, job.Status)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", status)
		}
		if status.Done() {
			t.Errorf("%q should not be terminal", status)
		}
	}

	job.Complete(`"abc"`, true)
	snap := job.Snapshot()
	if snap.Status != StatusCompleted || snap.ETag != `"abc"` || !snap.Changed {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	select {
	case <-job.Done():
	default:
		t.Error("expected Done to be closed after Complete")
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("test-fail", "broken")
	job.SetStatus(StatusTransforming)
	job.Fail(errors.New("stage code: unknown language"))
	// A second terminal transition must not panic on the closed channel.
	job.Fail(errors.New("again"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Error != "again" {
		t.Errorf("expected last error recorded, got %q", snap.Error)
	}
	if !snap.Status.Done() {
		t.Error("expected failed to be terminal")
	}
}

func TestJob_ZeroValueComplete(t *testing.T) {
	job := &Job{ID: "bare"}
	job.Complete("", false)
	if job.Done() != nil {
		t.Error("expected nil Done channel for zero-value job")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Put(NewJob("store-1", "a"))

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.Slug != "a" {
		t.Errorf("expected slug %q, got %q", "a", got.Slug)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(time.Minute)

	old := NewJob("old", "a")
	old.Complete("", false)
	running := NewJob("running", "b")
	running.SetStatus(StatusRendering)
	fresh := NewJob("new", "c")
	fresh.Complete("", false)

	store.Put(old)
	store.Put(running)
	// Only old and running are past the TTL from the cleanup's point of view.
	store.Cleanup(time.Now().Add(2 * time.Minute))
	store.Put(fresh)

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("running") == nil {
		t.Error("expected in-flight job to survive cleanup")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup(time.Now())
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}
