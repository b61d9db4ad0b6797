package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/nvarma/resumind/internal/document"
)

// PDFParser handles PDF files. It extracts text row by row so that the
// visual line structure survives, and falls back to pdftotext when the
// Go library cannot read the file.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "resumind-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, runs, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
		runs = nil
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := &document.Document{
		Title:    titleFromFilename(filename),
		Filename: filename,
		Text:     text,
		Runs:     runs,
	}
	if doc.Runs == nil && text != "" {
		doc.Runs = []document.StyledRun{{Text: text}}
	}
	return doc, nil
}

func extractPDFText(path string) (string, []document.StyledRun, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	var buf strings.Builder
	var runs []document.StyledRun
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for j, word := range row.Content {
				text := word.S
				if j > 0 && needsSpace(row.Content[j-1].S, text) {
					text = " " + text
				}
				buf.WriteString(text)
				runs = appendRun(runs, text, runAttrs(word.Font, word.FontSize))
			}
			buf.WriteString("\n")
			runs = appendRun(runs, "\n", nil)
		}
	}
	return buf.String(), runs, nil
}

// needsSpace decides whether two adjacent PDF text fragments on the same
// row should be glued with a space. Fragments that already carry their
// own spacing are left alone.
func needsSpace(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	return !strings.HasSuffix(prev, " ") && !strings.HasPrefix(next, " ")
}

func runAttrs(font string, size float64) *document.RunAttributes {
	if font == "" && size == 0 {
		return nil
	}
	return &document.RunAttributes{Font: font, Size: size}
}

// appendRun merges consecutive runs with identical attributes to keep
// the delta compact.
func appendRun(runs []document.StyledRun, text string, attrs *document.RunAttributes) []document.StyledRun {
	if text == "" {
		return runs
	}
	if n := len(runs); n > 0 && sameAttrs(runs[n-1].Attributes, attrs) {
		runs[n-1].Text += text
		return runs
	}
	return append(runs, document.StyledRun{Text: text, Attributes: attrs})
}

func sameAttrs(a, b *document.RunAttributes) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
