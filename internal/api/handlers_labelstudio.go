package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/nvarma/resumind/internal/document"
	"github.com/nvarma/resumind/internal/labelstudio"
)

var labelStudioSetupHelp = []string{
	"1. Start Label Studio: label-studio start",
	"2. Go to " + "http://localhost:8080",
	"3. Create an account and get your API key",
	"4. Set environment variable: LABEL_STUDIO_API_KEY=your_key",
}

// handleLabelStudioExport creates an annotation project from parsed
// data and imports one task per field.
func (s *Server) handleLabelStudioExport(w http.ResponseWriter, r *http.Request) {
	ls := s.orchestrator.LabelStudioClient()
	if !ls.Configured() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": "Label Studio integration not available",
			"setup": labelStudioSetupHelp,
		})
		return
	}

	var req struct {
		ProjectType     string         `json:"project_type"`
		ProjectName     string         `json:"project_name"`
		ParsedData      map[string]any `json:"parsed_data"`
		ParsedDataOrder []string       `json:"parsed_data_order"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 10<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.ParsedData) == 0 {
		jsonError(w, "parsed_data is required", http.StatusBadRequest)
		return
	}
	if req.ProjectType == "" {
		req.ProjectType = "resume"
	}
	if req.ProjectName == "" {
		req.ProjectName = "Resume Data Annotation"
	}

	res := resultFromRequest(req.ParsedData, req.ParsedDataOrder)

	cfg, err := labelstudio.ConfigForProjectType(req.ProjectType, res.Order())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	projectID, err := ls.CreateProject(r.Context(), req.ProjectName, cfg)
	if err != nil {
		jsonError(w, "failed to create project: "+err.Error(), http.StatusBadGateway)
		return
	}

	tasks := labelstudio.TasksFromResult(res, time.Now())
	count, err := ls.ImportTasks(r.Context(), projectID, tasks)
	if err != nil {
		jsonError(w, "failed to import tasks: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"project_id":       projectID,
		"project_name":     req.ProjectName,
		"tasks_created":    count,
		"label_studio_url": ls.ProjectURL(projectID),
	})
}

// resultFromRequest rebuilds a result from the wire form. When an order
// list is supplied it drives the key order; keys missing from it are
// appended afterwards.
func resultFromRequest(data map[string]any, order []string) *document.Result {
	res := document.NewResult()
	setOne := func(key string) {
		v, ok := data[key]
		if !ok || res.Has(key) {
			return
		}
		switch val := v.(type) {
		case string:
			res.Set(key, val)
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				if sv, ok := item.(string); ok {
					items = append(items, sv)
				}
			}
			res.SetList(key, items)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return
			}
			res.Set(key, string(b))
		}
	}
	for _, key := range order {
		setOne(key)
	}
	for key := range data {
		setOne(key)
	}
	return res
}

// handleLabelStudioImport pulls annotations from a project, builds the
// insights report and saves it to the downloads directory.
func (s *Server) handleLabelStudioImport(w http.ResponseWriter, r *http.Request) {
	ls := s.orchestrator.LabelStudioClient()
	if !ls.Configured() {
		jsonError(w, "Label Studio integration not available", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		ProjectID int `json:"project_id"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProjectID == 0 {
		jsonError(w, "project_id is required", http.StatusBadRequest)
		return
	}

	title := ""
	if projects, err := ls.Projects(r.Context()); err == nil {
		for _, p := range projects {
			if p.ID == req.ProjectID {
				title = p.Title
				break
			}
		}
	}

	tasks, err := ls.Tasks(r.Context(), req.ProjectID)
	if err != nil {
		jsonError(w, "failed to fetch tasks: "+err.Error(), http.StatusBadGateway)
		return
	}

	report := labelstudio.BuildInsights(req.ProjectID, title, tasks)

	insightsFile, err := s.store.SaveInsights(report)
	if err != nil {
		s.log.Warn("failed to save insights report", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"report":        report,
		"insights_file": insightsFile,
	})
}

// handleLabelStudioProjects lists projects on the annotation server.
func (s *Server) handleLabelStudioProjects(w http.ResponseWriter, r *http.Request) {
	ls := s.orchestrator.LabelStudioClient()
	if !ls.Configured() {
		jsonError(w, "Label Studio integration not available", http.StatusServiceUnavailable)
		return
	}

	projects, err := ls.Projects(r.Context())
	if err != nil {
		jsonError(w, "failed to list projects: "+err.Error(), http.StatusBadGateway)
		return
	}
	if projects == nil {
		projects = []labelstudio.Project{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"projects": projects})
}

// handleLabelStudioStatus reports whether the annotation server is
// reachable and configured.
func (s *Server) handleLabelStudioStatus(w http.ResponseWriter, r *http.Request) {
	ls := s.orchestrator.LabelStudioClient()
	w.Header().Set("Content-Type", "application/json")

	if !ls.Configured() {
		json.NewEncoder(w).Encode(map[string]any{
			"available": false,
			"url":       ls.BaseURL(),
			"setup":     labelStudioSetupHelp,
		})
		return
	}

	projects, err := ls.Projects(r.Context())
	if err != nil {
		json.NewEncoder(w).Encode(map[string]any{
			"available": false,
			"url":       ls.BaseURL(),
			"error":     err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"available":     true,
		"url":           ls.BaseURL(),
		"project_count": len(projects),
	})
}
