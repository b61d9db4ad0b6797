package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsOnOwnLines(t *testing.T) {
	input := `# JANE DOE

jane@example.com

## EDUCATION

BSc Computer Science

## SKILLS

Go, Python, SQL
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "resume.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(doc.Text, "\n")
	wantLines := []string{
		"JANE DOE",
		"jane@example.com",
		"EDUCATION",
		"BSc Computer Science",
		"SKILLS",
		"Go, Python, SQL",
	}
	if len(lines) != len(wantLines) {
		t.Fatalf("expected %d lines, got %d: %q", len(wantLines), len(lines), doc.Text)
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestMarkdownParser_HeadingRunsAreBold(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("# SKILLS\n\nGo\n"), "s.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var boldTexts []string
	for _, run := range doc.Runs {
		if run.Attributes != nil && run.Attributes.Bold {
			boldTexts = append(boldTexts, run.Text)
		}
	}
	if len(boldTexts) != 1 || boldTexts[0] != "SKILLS" {
		t.Errorf("expected exactly the heading to be bold, got %v", boldTexts)
	}
}

func TestMarkdownParser_CodeBlockLinesPreserved(t *testing.T) {
	input := "# PROJECTS\n\n```\nproject-alpha\nproject-beta\n```\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "p.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "project-alpha\nproject-beta") {
		t.Errorf("expected code block lines to stay separate lines, got %q", doc.Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
