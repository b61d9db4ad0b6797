package parser

import (
	"strings"
	"testing"
)

func TestTextParser_PreservesLines(t *testing.T) {
	input := "JOHN SMITH\njohn@example.com\n\nOBJECTIVE\nBuild things."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != input {
		t.Errorf("expected text to pass through verbatim, got %q", doc.Text)
	}
	if doc.Title != "resume" {
		t.Errorf("expected title %q, got %q", "resume", doc.Title)
	}
	if doc.Filename != "resume.txt" {
		t.Errorf("expected filename %q, got %q", "resume.txt", doc.Filename)
	}
	if len(doc.Runs) != 1 || doc.Runs[0].Text != input {
		t.Errorf("expected a single plain run with the full text, got %+v", doc.Runs)
	}
}

func TestTextParser_NormalizesCRLF(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("line one\r\nline two\r\n"), "dos.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc.Text, "\r") {
		t.Errorf("expected CRLF normalisation, got %q", doc.Text)
	}
	if doc.Text != "line one\nline two\n" {
		t.Errorf("unexpected text: %q", doc.Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
	if len(doc.Runs) != 0 {
		t.Errorf("expected no runs for empty input, got %d", len(doc.Runs))
	}
}
