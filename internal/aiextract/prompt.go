package aiextract

import "strings"

const ExtractionPrompt = `Given the following document text, extract key information and present it as a JSON object.
Identify common document fields such as:
- Name (for resumes/personal documents)
- Contact Information (email, phone, address, links)
- Dates (e.g., Date of Birth, employment dates, project dates, expiry dates)
- Headings/Sections (e.g., Education, Experience, Skills, Objective, Product Name, Ingredients, Instructions, Description, Price, SKU, Manufacturer, etc.)
- Key data points relevant to the document type (e.g., for a product label: net weight, nutrition facts, barcode; for a resume: degree, university, job title, company, skills listed).
- If a section contains a list (e.g., skills, ingredients), represent it as a JSON array of strings.
- If a section contains structured items (e.g., multiple experiences, each with job title, company, dates), represent it as a JSON array of objects.
- For general text sections, provide the full text.

Be as comprehensive as possible in identifying relevant fields.
Do NOT include any introductory or concluding remarks, only the JSON object.`

// BuildPrompt wraps the raw document text in the extraction prompt.
func BuildPrompt(rawText string) string {
	var sb strings.Builder
	sb.WriteString(ExtractionPrompt)
	sb.WriteString("\n\nDocument Text:\n---\n")
	sb.WriteString(rawText)
	sb.WriteString("\n---\n")
	return sb.String()
}
