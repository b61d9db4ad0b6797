package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_SaveDocument(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited := map[string]any{"name": "JANE DOE"}
	delta := []map[string]string{{"insert": "JANE DOE\n"}}

	structured, deltaFile, err := s.SaveDocument(edited, delta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(structured, "saved_document_structured_") || !strings.HasSuffix(structured, ".json") {
		t.Errorf("unexpected structured filename: %q", structured)
	}
	if !strings.HasPrefix(deltaFile, "saved_document_quill_delta_") {
		t.Errorf("unexpected delta filename: %q", deltaFile)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), structured))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("saved file is not valid json: %v", err)
	}
	if got["name"] != "JANE DOE" {
		t.Errorf("unexpected saved content: %v", got)
	}
}

func TestStore_SaveInsights(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, err := s.SaveInsights(map[string]int{"total_tasks": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(name, "annotation_insights_") {
		t.Errorf("unexpected insights filename: %q", name)
	}
}

func TestStore_Open(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	structured, _, err := s.SaveDocument(map[string]string{"k": "v"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := s.Open(structured)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if !strings.Contains(string(data), `"k": "v"`) {
		t.Errorf("unexpected file content: %s", data)
	}
}

func TestStore_OpenStripsTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "downloads"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A secret outside the downloads dir must not be reachable.
	secret := filepath.Join(dir, "secret.json")
	if err := os.WriteFile(secret, []byte("top secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Open("../secret.json"); err == nil {
		t.Error("expected traversal to fail")
	}
	if _, err := s.Open("missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")
	if _, err := New(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected directory created: %v", err)
	}
}
