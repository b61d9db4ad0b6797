package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/nvarma/resumind/internal/document"
)

// TextParser handles plain-text files. Lines pass through verbatim apart
// from CRLF normalisation.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	doc := &document.Document{
		Title:    titleFromFilename(filename),
		Filename: filename,
		Text:     text,
	}
	if text != "" {
		doc.Runs = []document.StyledRun{{Text: text}}
	}
	return doc, nil
}
