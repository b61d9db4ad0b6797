package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nvarma/resumind/internal/aiextract"
	"github.com/nvarma/resumind/internal/document"
	"github.com/nvarma/resumind/internal/parser"
	"github.com/nvarma/resumind/internal/pipeline"
)

// handleParse decodes one uploaded document, runs field extraction and
// returns the parsed fields with their order, the raw text, and the
// styled content runs.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to decode document: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.orchestrator.Engine().Extract(doc.Text)
	if err != nil {
		jsonError(w, "extraction failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	runs := doc.Runs
	if runs == nil {
		runs = []document.StyledRun{}
	}
	response := map[string]any{
		"filename":          filename,
		"parsed_data":       res.Fields(),
		"parsed_data_order": res.Order(),
		"raw_text_content":  doc.Text,
		"content":           runs,
	}

	if r.FormValue("ai") == "true" {
		aiRes, err := s.extractAI(r, doc.Text)
		if err != nil {
			s.log.Warn("ai extraction failed", "filename", filename, "error", err)
			response["ai_error"] = err.Error()
		} else {
			response["ai_parsed_data"] = aiRes.Fields()
			response["ai_parsed_data_order"] = aiRes.Order()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// extractAI runs the model synchronously with retry on rate limits.
func (s *Server) extractAI(r *http.Request, rawText string) (*document.Result, error) {
	gemini := s.orchestrator.GeminiClient()
	if gemini == nil || !gemini.Configured() {
		return nil, fmt.Errorf("ai extraction not configured (set GEMINI_API_KEY)")
	}

	var fields []aiextract.Field
	var lastErr error
	for attempt := range pipeline.MaxRetries {
		fields, lastErr = gemini.ExtractFields(r.Context(), rawText)
		if lastErr == nil || !pipeline.IsRetryable(lastErr) {
			break
		}
		select {
		case <-time.After(pipeline.Backoff(attempt)):
		case <-r.Context().Done():
			return nil, r.Context().Err()
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return aiextract.FieldsToResult(fields), nil
}

// handleBatchParse queues a batch of documents for the parse-and-annotate
// pipeline and returns a poll URL.
func (s *Server) handleBatchParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	projectType := r.FormValue("project_type")
	if projectType == "" {
		projectType = "resume"
	}
	if !s.orchestrator.LabelStudioClient().Configured() {
		jsonError(w, "Label Studio is not configured (set LABEL_STUDIO_API_KEY)", http.StatusServiceUnavailable)
		return
	}

	var docs []pipeline.BatchDocument
	var rejected []map[string]string
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			rejected = append(rejected, map[string]string{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			rejected = append(rejected, map[string]string{"filename": filename, "error": "failed to open file"})
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			rejected = append(rejected, map[string]string{"filename": filename, "error": "file too large or read error"})
			continue
		}
		docs = append(docs, pipeline.BatchDocument{Filename: filename, Data: data})
	}

	if len(docs) == 0 {
		jsonError(w, "no usable files in batch", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(projectType, docs, r.FormValue("ai") == "true")
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"accepted": len(docs),
		"rejected": rejected,
		"poll_url": fmt.Sprintf("/api/parse/batch/%s/status", job.ID),
	})
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
