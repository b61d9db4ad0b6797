package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/nvarma/resumind/internal/document"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// their own lines with a bold run; other blocks contribute their lines
// in source order.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var lines []string
	var runs []document.StyledRun

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title == "" {
				continue
			}
			lines = append(lines, title)
			runs = append(runs, document.StyledRun{Text: title, Attributes: &document.RunAttributes{Bold: true}})
			runs = appendRun(runs, "\n", nil)

		default:
			t := extractText(n, src)
			if t == "" {
				continue
			}
			for _, line := range strings.Split(t, "\n") {
				lines = append(lines, line)
				runs = appendRun(runs, line+"\n", nil)
			}
		}
	}

	doc := &document.Document{
		Title:    titleFromFilename(filename),
		Filename: filename,
		Text:     strings.Join(lines, "\n"),
		Runs:     runs,
	}
	return doc, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	if buf.Len() == 0 {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			} else {
				buf.WriteString(extractText(c, src))
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
