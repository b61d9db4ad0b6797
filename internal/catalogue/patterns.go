package catalogue

import "regexp"

// Singleton field patterns. These run against the whole text, not per line
// (except the name pattern, which is anchored to line starts), and are
// independent of section structure.
var (
	// NamePattern matches a line-start run of upper-case words.
	NamePattern = regexp.MustCompile(`(?m)^([A-Z][A-Z\s]+)$`)

	// PhonePatterns are tried in priority order; the first to match anywhere
	// in the text wins.
	PhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+91[-\s]?\d{10}`),                          // Indian mobile
		regexp.MustCompile(`\+1[-\s]?\(?\d{3}\)?[-\s]?\d{3}[-\s]?\d{4}`), // US
		regexp.MustCompile(`\d{10}`),                                    // bare 10-digit run
	}

	EmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// DOBPatterns: the labeled form is tried first; the bare date fallback is
	// knowingly ambiguous (any date-shaped token, including employment or
	// graduation dates, can match when no label is present).
	DOBPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:DOB|Date of Birth|Birth Date)[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	}

	AddressPattern = regexp.MustCompile(`(?i)\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Lane|Ln|Drive|Dr|Boulevard|Blvd)[,\s]+[A-Za-z\s]+(?:City|Town|Village)[,\s]+[A-Za-z\s]+`)

	// ListDelimiters splits list-like section bodies: commas, semicolons,
	// bullet characters, and newlines all separate items.
	ListDelimiters = regexp.MustCompile(`[,;•\n]+`)
)
