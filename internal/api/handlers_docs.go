package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleSaveDocument persists an edited document: the structured field
// data plus the full styled-run delta from the editor.
func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EditedData   json.RawMessage `json:"edited_data"`
		DeltaContent json.RawMessage `json:"quill_content_delta"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 10<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.EditedData) == 0 {
		req.EditedData = json.RawMessage(`{}`)
	}
	if len(req.DeltaContent) == 0 {
		req.DeltaContent = json.RawMessage(`[]`)
	}

	structured, deltaFile, err := s.store.SaveDocument(req.EditedData, req.DeltaContent)
	if err != nil {
		jsonError(w, "failed to save document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message":         fmt.Sprintf("Document saved successfully. Saved as %s and %s", structured, deltaFile),
		"structured_file": structured,
		"delta_file":      deltaFile,
		"download_urls": []string{
			"/api/documents/" + structured,
			"/api/documents/" + deltaFile,
		},
	})
}

// handleDownload serves a previously saved file.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	f, err := s.store.Open(filename)
	if err != nil {
		jsonError(w, "file not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	if strings.HasSuffix(filename, ".json") {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	io.Copy(w, f)
}
