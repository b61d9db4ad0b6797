package document

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResult_OrderRecordsFirstWriteOnly(t *testing.T) {
	r := NewResult()
	r.Set("name", "JOHN SMITH")
	r.SetList("skills", []string{"Go"})
	r.Set("name", "JANE DOE") // overwrite must not re-record the key

	want := []string{"name", "skills"}
	if got := r.Order(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
	if f, _ := r.Get("name"); f.Value != "JANE DOE" {
		t.Errorf("expected overwritten value, got %q", f.Value)
	}
}

func TestResult_MarshalJSONEnvelope(t *testing.T) {
	r := NewResult()
	r.Set("name", "JOHN SMITH")
	r.SetList("skills", []string{"Go", "Rust"})

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		ParsedData map[string]json.RawMessage `json:"parsed_data"`
		Order      []string                   `json:"parsed_data_order"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !reflect.DeepEqual(decoded.Order, []string{"name", "skills"}) {
		t.Errorf("unexpected order: %v", decoded.Order)
	}
	if string(decoded.ParsedData["name"]) != `"JOHN SMITH"` {
		t.Errorf("scalar field must marshal as a string, got %s", decoded.ParsedData["name"])
	}
	if string(decoded.ParsedData["skills"]) != `["Go","Rust"]` {
		t.Errorf("list field must marshal as an array, got %s", decoded.ParsedData["skills"])
	}
}

func TestResult_EmptyMarshal(t *testing.T) {
	data, err := json.Marshal(NewResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"parsed_data":{},"parsed_data_order":[]}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestField_MarshalNilListAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(Field{IsList: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}
