package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestNewJob(t *testing.T) {
	docs := []BatchDocument{
		{Filename: "a.txt", Data: []byte("x")},
		{Filename: "b.txt", Data: []byte("y")},
	}
	job := NewJob("resume", docs, true)

	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %s/%s", job.Status, job.Phase)
	}
	if job.Progress.TotalDocuments != 2 {
		t.Errorf("expected 2 total documents, got %d", job.Progress.TotalDocuments)
	}
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID job id, got %q", job.ID)
	}
	if !job.AIEnabled() {
		t.Error("expected ai enabled")
	}
	if len(job.Documents()) != 2 {
		t.Errorf("expected batch contents preserved, got %d", len(job.Documents()))
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("resume", []BatchDocument{{Filename: "a.txt"}}, false)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusDecoding, "decoding"},
		{StatusExtracting, "extracting"},
		{StatusAnnotating, "annotating"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("resume", nil, false)
	job.AddError("a.pdf: parse failed")
	job.AddError("b.pdf: annotate failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "a.pdf: parse failed" {
		t.Errorf("expected first error %q, got %q", "a.pdf: parse failed", snap.Progress.Errors[0])
	}
}

func TestJob_IncrDocumentsProcessed(t *testing.T) {
	job := NewJob("resume", nil, false)
	job.IncrDocumentsProcessed()
	job.IncrDocumentsProcessed()
	job.IncrDocumentsProcessed()

	snap := job.Snapshot()
	if snap.Progress.DocumentsProcessed != 3 {
		t.Errorf("expected 3 documents processed, got %d", snap.Progress.DocumentsProcessed)
	}
}

func TestJob_AddProject(t *testing.T) {
	job := NewJob("skills", nil, false)
	job.AddProject(ProjectRef{ProjectID: 1, ProjectName: "Skills Annotation - Resume 1", TaskCount: 4})
	job.AddProject(ProjectRef{ProjectID: 2, ProjectName: "Skills Annotation - Resume 2", TaskCount: 3})

	snap := job.Snapshot()
	if len(snap.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(snap.Projects))
	}
	if snap.Progress.TasksCreated != 7 {
		t.Errorf("expected 7 tasks created, got %d", snap.Progress.TasksCreated)
	}
}

func TestJob_SnapshotNotNil(t *testing.T) {
	// Snapshot should always return non-nil error and project slices.
	job := NewJob("resume", nil, false)
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if snap.Projects == nil {
		t.Error("expected non-nil projects slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("resume", nil, false)
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != job.ID {
		t.Errorf("expected ID %q, got %q", job.ID, got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("resume", nil, false)
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := NewJob("resume", nil, false)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestGenerateULID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ulid, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate ulid: %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateULID_SortsByTime(t *testing.T) {
	a := generateULID()
	time.Sleep(2 * time.Millisecond)
	b := generateULID()
	if !(a < b) {
		t.Errorf("expected lexicographic ordering by creation time: %q then %q", a, b)
	}
}
