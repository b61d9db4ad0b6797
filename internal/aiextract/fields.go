package aiextract

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nvarma/resumind/internal/document"
)

// Field is one extracted key-value pair from the model.
type Field struct {
	FieldName  string `json:"field_name"`
	FieldValue any    `json:"field_value"`
	Type       string `json:"type"`
	Confidence string `json:"confidence,omitempty"`
}

// fieldArraySchema validates the model output before we trust it. The
// constrained decoding schema sent with the request is advisory only;
// the model can still return malformed items.
var fieldArraySchema = jsonschema.MustCompileString("fields.json", `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["field_name", "field_value", "type"],
    "properties": {
      "field_name": {"type": "string", "minLength": 1},
      "field_value": {},
      "type": {"enum": ["personal", "contact", "section", "product_info", "date", "list", "structured_list", "other"]},
      "confidence": {"type": "string"}
    }
  }
}`)

// ParseFields decodes and validates a model response body.
func ParseFields(data []byte) ([]Field, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse fields json: %w (raw: %s)", err, truncate(string(data), 200))
	}
	if err := fieldArraySchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate fields: %w", err)
	}

	var fields []Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

// FieldsToResult folds extracted fields into a result, preserving the
// model's field order. String values pass through; string arrays become
// list fields; anything structured is rendered as indented JSON so the
// value stays readable in clients that expect text.
func FieldsToResult(fields []Field) *document.Result {
	res := document.NewResult()
	for _, f := range fields {
		if f.FieldName == "" {
			continue
		}
		switch v := f.FieldValue.(type) {
		case string:
			res.Set(f.FieldName, v)
		case []any:
			if items, ok := stringItems(v); ok {
				res.SetList(f.FieldName, items)
			} else {
				res.Set(f.FieldName, indentJSON(v))
			}
		default:
			res.Set(f.FieldName, indentJSON(v))
		}
	}
	return res
}

func stringItems(v []any) ([]string, bool) {
	items := make([]string, 0, len(v))
	for _, item := range v {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		items = append(items, s)
	}
	return items, true
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
