package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists edited documents and insight reports to a downloads
// directory for later retrieval.
type Store struct {
	dir string
}

// New creates the downloads directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the downloads directory path.
func (s *Store) Dir() string {
	return s.dir
}

// SaveDocument writes one edited document as two timestamped JSON
// files: the structured field data and the styled-run delta. Both
// filenames are returned.
func (s *Store) SaveDocument(editedData any, delta any) (structured string, deltaFile string, err error) {
	timestamp := time.Now().Format("20060102_150405")

	structured = fmt.Sprintf("saved_document_structured_%s.json", timestamp)
	if err := s.writeJSON(structured, editedData); err != nil {
		return "", "", err
	}

	deltaFile = fmt.Sprintf("saved_document_quill_delta_%s.json", timestamp)
	if err := s.writeJSON(deltaFile, delta); err != nil {
		return "", "", err
	}
	return structured, deltaFile, nil
}

// SaveInsights writes an annotation insights report and returns its
// filename.
func (s *Store) SaveInsights(report any) (string, error) {
	filename := fmt.Sprintf("annotation_insights_%s.json", time.Now().Format("20060102_150405"))
	if err := s.writeJSON(filename, report); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *Store) writeJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// Open returns a reader for a previously saved file. The filename is
// reduced to its base name so callers cannot traverse out of the
// downloads directory.
func (s *Store) Open(filename string) (*os.File, error) {
	safe := filepath.Base(filename)
	if safe == "." || safe == string(filepath.Separator) || strings.HasPrefix(safe, "..") {
		return nil, fmt.Errorf("invalid filename: %s", filename)
	}
	f, err := os.Open(filepath.Join(s.dir, safe))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", safe, err)
	}
	return f, nil
}
