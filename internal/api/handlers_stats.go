package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	eng := s.orchestrator.Engine()
	if eng == nil || eng.Stats == nil {
		jsonError(w, "parse stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       eng.Stats.Snapshot(),
	})
}
