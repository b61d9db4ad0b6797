package engine

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nvarma/resumind/internal/catalogue"
	"github.com/nvarma/resumind/internal/document"
)

// ErrInvalidText is returned when the caller violates the input contract.
// Anything else degrades to a smaller (possibly empty) result instead of
// failing.
var ErrInvalidText = errors.New("text is not valid UTF-8")

// Pseudo-sections handled by the singleton patterns. They are skipped during
// section iteration, but their header variants still participate in span
// termination.
var singletonSections = map[string]bool{
	catalogue.FieldName:        true,
	catalogue.SectionContact:   true,
	catalogue.FieldPhone:       true,
	catalogue.FieldEmail:       true,
	catalogue.FieldDateOfBirth: true,
}

// Engine recovers a document's logical structure from flat text: singleton
// fields by pattern matching, section spans by header-line detection, and
// list-like content by delimiter splitting. It holds no per-call state; one
// Engine is safe to share across concurrent Extract calls.
type Engine struct {
	cat catalogue.Catalogue

	// Stats, when set, records Extract latencies. Observational only.
	Stats *Stats
}

// New returns an engine over the given catalogue. The catalogue's declared
// section order is load-bearing: it decides which section claims a line that
// matches variants of more than one section.
func New(cat catalogue.Catalogue) *Engine {
	return &Engine{cat: cat}
}

// Extract parses flat document text into an ordered field mapping. It is a
// pure function of its input: same text, same catalogue, same result.
func (e *Engine) Extract(text string) (*document.Result, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	start := time.Now()
	res := e.extract(text)
	if e.Stats != nil {
		e.Stats.Record(time.Since(start).Milliseconds())
	}
	return res, nil
}

func (e *Engine) extract(text string) *document.Result {
	res := document.NewResult()
	text = strings.TrimSpace(text)

	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}

	extractSingletons(text, res)

	// Sections are written in boundary order so the result's key order
	// mirrors the document's top-to-bottom section order.
	for _, b := range e.locateBoundaries(lines) {
		sec := b.section
		start := b.line
		end := e.resolveSpanEnd(lines, start, sec.ID)
		content := strings.TrimSpace(strings.Join(lines[start+1:end], "\n"))
		if content == "" {
			// Header directly followed by another header: the section is
			// absent, not present-with-empty-value.
			continue
		}
		if sec.List {
			if items := SplitList(content); len(items) > 0 {
				res.SetList(sec.ID, items)
			}
		} else {
			res.Set(sec.ID, content)
		}
	}

	// Few recovered fields means the document doesn't follow recognizable
	// header conventions; fall back to positional guesses.
	if res.Len() <= 3 {
		fallbackPositional(lines, res)
	}

	return res
}

// extractSingletons pulls out name, phone, email, date of birth, and address,
// each independently, each first-match-wins.
func extractSingletons(text string, res *document.Result) {
	if m := catalogue.NamePattern.FindStringSubmatch(text); m != nil {
		res.Set(catalogue.FieldName, strings.TrimSpace(m[1]))
	}
	for _, p := range catalogue.PhonePatterns {
		if m := p.FindString(text); m != "" {
			res.Set(catalogue.FieldPhone, m)
			break
		}
	}
	if m := catalogue.EmailPattern.FindString(text); m != "" {
		res.Set(catalogue.FieldEmail, m)
	}
	for _, p := range catalogue.DOBPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			res.Set(catalogue.FieldDateOfBirth, m[1])
			break
		}
	}
	if m := catalogue.AddressPattern.FindString(text); m != "" {
		res.Set(catalogue.FieldAddress, strings.TrimSpace(m))
	}
}

// boundary marks the first header line claimed by a section.
type boundary struct {
	section catalogue.Section
	line    int
}

// locateBoundaries finds, per section, the line index of its first header
// occurrence, returned in line order. A line is claimed by at most one
// section: when variants of two sections both match, the section iterated
// first in catalogue order wins. A section's later occurrences never
// overwrite its first. Singleton pseudo-sections are excluded here.
func (e *Engine) locateBoundaries(lines []string) []boundary {
	var found []boundary
	claimed := make(map[string]bool)
	for i, line := range lines {
		upper := strings.ToUpper(strings.TrimSpace(line))
		for _, sec := range e.cat.Sections {
			if singletonSections[sec.ID] || claimed[sec.ID] {
				continue
			}
			if containsVariant(upper, sec.Variants) {
				found = append(found, boundary{section: sec, line: i})
				claimed[sec.ID] = true
				break
			}
		}
	}
	return found
}

// resolveSpanEnd scans forward from the section's header line for the first
// line matching any other section's header variants, and returns its index as
// the exclusive span end (or the line count if none follows). Unlike boundary
// location this consults every catalogue section, including the singleton
// pseudo-sections and sections that never got a boundary of their own, so a
// section that was never located can still terminate a preceding span.
func (e *Engine) resolveSpanEnd(lines []string, start int, sectionID string) int {
	for i := start + 1; i < len(lines); i++ {
		upper := strings.ToUpper(strings.TrimSpace(lines[i]))
		for _, other := range e.cat.Sections {
			if other.ID == sectionID {
				continue
			}
			if containsVariant(upper, other.Variants) {
				return i
			}
		}
	}
	return len(lines)
}

// SplitList splits a list-like section body on commas, semicolons, bullet
// characters, and newlines, trimming items and dropping empty ones. Order and
// duplicates are preserved.
func SplitList(content string) []string {
	parts := catalogue.ListDelimiters.Split(content, -1)
	var items []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// fallbackPositional fills name, address, and contact from the first three
// lines. Low-confidence best effort: it never overwrites an existing key and
// recovers no section content.
func fallbackPositional(lines []string, res *document.Result) {
	if len(lines) > 0 && !res.Has(catalogue.FieldName) {
		res.Set(catalogue.FieldName, strings.TrimSpace(lines[0]))
	}
	if len(lines) > 1 && !res.Has(catalogue.FieldAddress) {
		res.Set(catalogue.FieldAddress, strings.TrimSpace(lines[1]))
	}
	if len(lines) > 2 && !res.Has(catalogue.SectionContact) {
		res.Set(catalogue.SectionContact, strings.TrimSpace(lines[2]))
	}
}

func containsVariant(upperLine string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(upperLine, v) {
			return true
		}
	}
	return false
}
