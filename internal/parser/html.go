package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/nvarma/resumind/internal/document"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Headings and block elements each become
// one line of the flat text; heading lines additionally get a bold run so
// the styled view mirrors the source.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &document.Document{
		Title:    titleFromFilename(filename),
		Filename: filename,
	}
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	var lines []string
	var runs []document.StyledRun

	addLine := func(text string, bold bool) {
		if text == "" {
			return
		}
		lines = append(lines, text)
		if bold {
			runs = append(runs, document.StyledRun{Text: text, Attributes: &document.RunAttributes{Bold: true}})
		} else {
			runs = appendRun(runs, text, nil)
		}
		runs = appendRun(runs, "\n", nil)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if isHeadingTag(n.Data) {
				addLine(textContent(n), true)
				return // Heading text already extracted, don't recurse.
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				addLine(textContent(n), false)
				return
			case "br":
				addLine("", false)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := findBody(root)
	if body != nil {
		walk(body)
	} else {
		walk(root)
	}

	doc.Text = strings.Join(lines, "\n")
	doc.Runs = runs
	return doc, nil
}

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
