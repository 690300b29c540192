package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/mdxblog/internal/content"
	"github.com/dgallion1/mdxblog/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleRebuildAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.orchestrator.SubmitAll()
	if err != nil && len(jobs) == 0 {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err != nil {
		s.log.Warn("some rebuilds were not queued", "error", err)
	}

	results := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, jobResponse(job.Snapshot()))
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	job, err := s.orchestrator.Submit(chi.URLParam(r, "slug"))
	switch {
	case errors.Is(err, content.ErrInvalidSlug):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, jobResponse(job.Snapshot()))
}

func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handlePreview transforms a Markdown body and returns the HTML fragment
// without publishing it.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxPreviewBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxPreviewBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	out, err := s.orchestrator.Preview(r.Context(), body)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

func jobResponse(snap pipeline.JobSnapshot) map[string]any {
	resp := map[string]any{
		"job_id":   snap.ID,
		"slug":     snap.Slug,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/builds/%s/status", snap.ID),
	}
	if snap.Error != "" {
		resp["error"] = snap.Error
	}
	return resp
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
