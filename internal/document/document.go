package document

// Document is the decoded form of an uploaded file: the flattened text the
// extraction engine consumes, plus the styled runs the editor view consumes.
type Document struct {
	Title    string      // Document title (from metadata or filename)
	Filename string      // Sanitized source filename
	Text     string      // Flat text, line breaks preserved from the source layout
	Runs     []StyledRun // Best-effort styled spans in source order
}

// StyledRun is one contiguous span of text with its source styling.
// The JSON shape matches the delta format the editor frontend expects.
type StyledRun struct {
	Text       string         `json:"insert"`
	Attributes *RunAttributes `json:"attributes,omitempty"`
}

// RunAttributes carries the styling a decoder could recover for a run.
type RunAttributes struct {
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size,omitempty"`
}
