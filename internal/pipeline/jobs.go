package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a batch parse job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusDecoding   JobStatus = "decoding"
	StatusExtracting JobStatus = "extracting"
	StatusAnnotating JobStatus = "annotating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// BatchDocument is one uploaded file within a batch job.
type BatchDocument struct {
	Filename string
	Data     []byte
}

// ProjectRef records an annotation project created for one document.
type ProjectRef struct {
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
	TaskCount   int    `json:"task_count"`
	URL         string `json:"url"`
}

// Job tracks the state of one batch of documents moving through the
// decode, extract, annotate phases.
type Job struct {
	mu sync.Mutex

	ID          string    `json:"job_id"`
	ProjectType string    `json:"project_type"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	documents []BatchDocument
	projects  []ProjectRef
	aiEnabled bool
	errors    []string
}

// Progress tracks batch processing progress.
type Progress struct {
	TotalDocuments     int      `json:"total_documents"`
	DocumentsProcessed int      `json:"documents_processed"`
	TasksCreated       int      `json:"tasks_created"`
	Errors             []string `json:"errors"`
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// NewJob creates a queued job for a batch of documents.
func NewJob(projectType string, docs []BatchDocument, aiEnabled bool) *Job {
	now := time.Now()
	return &Job{
		ID:          generateULID(),
		ProjectType: projectType,
		Status:      StatusQueued,
		Phase:       "queued",
		Progress:    Progress{TotalDocuments: len(docs)},
		CreatedAt:   now,
		UpdatedAt:   now,
		documents:   docs,
		aiEnabled:   aiEnabled,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrDocumentsProcessed atomically increments the processed counter.
func (j *Job) IncrDocumentsProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsProcessed++
	j.UpdatedAt = time.Now()
}

// AddProject records a created annotation project and its tasks.
func (j *Job) AddProject(ref ProjectRef) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.projects = append(j.projects, ref)
	j.Progress.TasksCreated += ref.TaskCount
	j.UpdatedAt = time.Now()
}

// Documents returns the batch contents.
func (j *Job) Documents() []BatchDocument {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.documents
}

// AIEnabled reports whether AI extraction was requested for the batch.
func (j *Job) AIEnabled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.aiEnabled
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string       `json:"job_id"`
	ProjectType string       `json:"project_type"`
	Status      JobStatus    `json:"status"`
	Phase       string       `json:"phase"`
	Progress    Progress     `json:"progress"`
	Projects    []ProjectRef `json:"projects"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	projects := j.projects
	if projects == nil {
		projects = []ProjectRef{}
	}
	return JobSnapshot{
		ID:          j.ID,
		ProjectType: j.ProjectType,
		Status:      j.Status,
		Phase:       j.Phase,
		Projects:    projects,
		CreatedAt:   j.CreatedAt,
		Progress: Progress{
			TotalDocuments:     j.Progress.TotalDocuments,
			DocumentsProcessed: j.Progress.DocumentsProcessed,
			TasksCreated:       j.Progress.TasksCreated,
			Errors:             errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns a hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
