package api

import "net/http"

func (s *Server) handleRenderStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"pages":       s.orchestrator.Site().Len(),
		"phases":      s.orchestrator.Stats().Snapshot(),
	})
}
