package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvarma/resumind/internal/aiextract"
	"github.com/nvarma/resumind/internal/document"
	"github.com/nvarma/resumind/internal/engine"
	"github.com/nvarma/resumind/internal/labelstudio"
	"github.com/nvarma/resumind/internal/parser"
)

// Worker processes a single batch job: decode every document, run the
// extraction engine (and optionally AI extraction), then create one
// annotation project per document and import its tasks.
type Worker struct {
	engine *engine.Engine
	ls     *labelstudio.Client
	gemini *aiextract.GeminiClient
	log    *slog.Logger

	maxConcurrentAI int
}

func NewWorker(eng *engine.Engine, ls *labelstudio.Client, gemini *aiextract.GeminiClient, log *slog.Logger, maxConcurrentAI int) *Worker {
	return &Worker{
		engine:          eng,
		ls:              ls,
		gemini:          gemini,
		log:             log,
		maxConcurrentAI: maxConcurrentAI,
	}
}

// Process runs the full batch pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "project_type", job.ProjectType)
	docs := job.Documents()
	if len(docs) == 0 {
		job.AddError("no documents in batch")
		job.SetStatus(StatusFailed, "decoding")
		return
	}

	// Phase 1: Decode and extract each document.
	job.SetStatus(StatusDecoding, "decoding")
	type docResult struct {
		filename string
		result   *document.Result
		err      error
		idx      int
	}
	results := make(chan docResult, len(docs))
	sem := make(chan struct{}, w.maxConcurrentAI)

	job.SetStatus(StatusExtracting, "extracting")
	for i, doc := range docs {
		sem <- struct{}{}
		go func(i int, doc BatchDocument) {
			defer func() { <-sem }()
			res, err := w.processDocument(ctx, doc, job.AIEnabled(), log)
			results <- docResult{filename: doc.Filename, result: res, err: err, idx: i}
		}(i, doc)
	}

	// Collect in index order so project numbering follows upload order.
	collected := make([]docResult, len(docs))
	for range docs {
		r := <-results
		collected[r.idx] = r
	}

	// Phase 2: Create annotation projects and import tasks.
	job.SetStatus(StatusAnnotating, "annotating")
	hadErrors := false
	succeeded := 0
	for i, r := range collected {
		job.IncrDocumentsProcessed()
		if r.err != nil {
			log.Error("document processing failed", "filename", r.filename, "error", r.err)
			job.AddError(fmt.Sprintf("%s: %s", r.filename, r.err))
			hadErrors = true
			continue
		}

		ref, err := w.annotate(ctx, job.ProjectType, i+1, r.result)
		if err != nil {
			log.Error("annotation export failed", "filename", r.filename, "error", err)
			job.AddError(fmt.Sprintf("%s: annotate: %s", r.filename, err))
			hadErrors = true
			continue
		}
		job.AddProject(ref)
		succeeded++
		log.Info("document annotated", "filename", r.filename, "project_id", ref.ProjectID, "tasks", ref.TaskCount)
	}

	switch {
	case hadErrors && succeeded > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "annotating")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("batch complete", "succeeded", succeeded, "total", len(docs))
}

// processDocument decodes one file and extracts its fields. When AI
// extraction is enabled, AI fields replace the engine result; the
// engine result stands on AI failure.
func (w *Worker) processDocument(ctx context.Context, doc BatchDocument, aiEnabled bool, log *slog.Logger) (*document.Result, error) {
	log.Debug("decoding document", "filename", doc.Filename, "sha256", ContentHashHex(doc.Data), "bytes", len(doc.Data))
	p, err := parser.ForFile(doc.Filename)
	if err != nil {
		return nil, err
	}
	parsed, err := p.Parse(bytes.NewReader(doc.Data), doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	res, err := w.engine.Extract(parsed.Text)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	if aiEnabled && w.gemini != nil && w.gemini.Configured() {
		aiRes, err := w.extractAI(ctx, parsed.Text, log.With("filename", doc.Filename))
		if err != nil {
			log.Warn("ai extraction failed, keeping engine result", "filename", doc.Filename, "error", err)
		} else if aiRes.Len() > 0 {
			res = aiRes
		}
	}
	return res, nil
}

// extractAI calls the model with retry on transient failures.
func (w *Worker) extractAI(ctx context.Context, rawText string, log *slog.Logger) (*document.Result, error) {
	var fields []aiextract.Field
	var lastErr error
	for attempt := range MaxRetries {
		fields, lastErr = w.gemini.ExtractFields(ctx, rawText)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable ai extraction error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return aiextract.FieldsToResult(fields), nil
}

// annotate creates one project for a parsed document and imports its
// field tasks.
func (w *Worker) annotate(ctx context.Context, projectType string, seq int, res *document.Result) (ProjectRef, error) {
	cfg, err := labelstudio.ConfigForProjectType(projectType, res.Order())
	if err != nil {
		return ProjectRef{}, err
	}

	name := fmt.Sprintf("%s Annotation - Resume %d", titleCase(projectType), seq)
	projectID, err := w.ls.CreateProject(ctx, name, cfg)
	if err != nil {
		return ProjectRef{}, fmt.Errorf("create project: %w", err)
	}

	tasks := labelstudio.TasksFromResult(res, time.Now())
	count, err := w.ls.ImportTasks(ctx, projectID, tasks)
	if err != nil {
		return ProjectRef{}, fmt.Errorf("import tasks: %w", err)
	}

	return ProjectRef{
		ProjectID:   projectID,
		ProjectName: name,
		TaskCount:   count,
		URL:         w.ls.ProjectURL(projectID),
	}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
