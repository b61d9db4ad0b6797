package labelstudio

import (
	"strings"
	"time"

	"github.com/nvarma/resumind/internal/document"
)

// TasksFromResult turns an extraction result into one annotation task
// per populated field, in the result's key order. Every task carries a
// flat preview of the whole parse for reviewer context.
func TasksFromResult(res *document.Result, now time.Time) []TaskData {
	preview := make(map[string]string, res.Len())
	for key, field := range res.Fields() {
		preview[key] = fieldText(field)
	}
	timestamp := now.Format(time.RFC3339)

	var tasks []TaskData
	for _, key := range res.Order() {
		field, ok := res.Get(key)
		if !ok {
			continue
		}
		text := fieldText(field)
		if text == "" {
			continue
		}
		tasks = append(tasks, TaskData{
			ResumeText:      text,
			SectionName:     key,
			OriginalParsing: preview,
			Timestamp:       timestamp,
		})
	}
	return tasks
}

func fieldText(f document.Field) string {
	if f.IsList {
		return strings.Join(f.Items, ", ")
	}
	return f.Value
}
