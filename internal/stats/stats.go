// Package stats keeps rolling-window latency samples for build phases.
package stats

import (
	"slices"
	"sync"
	"time"
)

// Build phases recorded by the pipeline workers.
const (
	PhaseParse     = "parse"
	PhaseTransform = "transform"
	PhaseRender    = "render"
	PhaseTotal     = "total"
)

type sample struct {
	at time.Time
	d  time.Duration
}

// Snapshot is a point-in-time aggregate of one phase's samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Window tracks latencies within a rolling time window.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (w *Window) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	w.samples = append(w.samples, sample{at: now, d: d})
}

func (w *Window) Snapshot() Snapshot {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	if len(w.samples) == 0 {
		return Snapshot{}
	}

	values := make([]float64, 0, len(w.samples))
	var sum float64
	for _, s := range w.samples {
		ms := float64(s.d) / float64(time.Millisecond)
		values = append(values, ms)
		sum += ms
	}
	slices.Sort(values)

	return Snapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: sum / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	keep := w.samples[:0]
	for _, s := range w.samples {
		if !s.at.Before(cutoff) {
			keep = append(keep, s)
		}
	}
	w.samples = keep
}

// Recorder holds one Window per phase name.
type Recorder struct {
	mu     sync.Mutex
	maxAge time.Duration
	phases map[string]*Window
}

func NewRecorder(maxAge time.Duration) *Recorder {
	return &Recorder{maxAge: maxAge, phases: make(map[string]*Window)}
}

// Record adds a sample for phase, creating its window on first use.
func (r *Recorder) Record(phase string, d time.Duration) {
	r.mu.Lock()
	w, ok := r.phases[phase]
	if !ok {
		w = NewWindow(r.maxAge)
		r.phases[phase] = w
	}
	r.mu.Unlock()
	w.Record(d)
}

// Snapshot returns every phase seen so far, including phases whose samples
// have all expired.
func (r *Recorder) Snapshot() map[string]Snapshot {
	r.mu.Lock()
	windows := make(map[string]*Window, len(r.phases))
	for k, w := range r.phases {
		windows[k] = w
	}
	r.mu.Unlock()

	out := make(map[string]Snapshot, len(windows))
	for k, w := range windows {
		out[k] = w.Snapshot()
	}
	return out
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}
