package parser

import (
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
		wantErr  bool
	}{
		{"resume.txt", "*parser.TextParser", false},
		{"resume.md", "*parser.MarkdownParser", false},
		{"resume.markdown", "*parser.MarkdownParser", false},
		{"resume.html", "*parser.HTMLParser", false},
		{"resume.HTM", "*parser.HTMLParser", false},
		{"resume.pdf", "*parser.PDFParser", false},
		{"resume.docx", "*parser.DOCXParser", false},
		{"resume.exe", "", true},
		{"resume", "", true},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForFile(%q): expected error, got %T", tt.filename, p)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tt.filename, err)
			continue
		}
		got := typeName(p)
		if got != tt.wantType {
			t.Errorf("ForFile(%q): expected %s, got %s", tt.filename, tt.wantType, got)
		}
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("cv.docx") {
		t.Error("expected .docx to be supported")
	}
	if !IsSupportedExtension("CV.PDF") {
		t.Error("expected extension check to be case-insensitive")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip to be unsupported")
	}
}
