package aiextract

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStripCodeBlock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n[1,2]\n```", "[1,2]"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"[1,2]", "[1,2]"},
		{"  [1,2]  ", "[1,2]"},
	}
	for _, tt := range tests {
		if got := stripCodeBlock(tt.in); got != tt.want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiClient_ExtractFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected json response mime type, got %q", req.GenerationConfig.ResponseMimeType)
		}
		if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, "Document Text:") {
			t.Error("expected prompt with document text delimiter")
		}

		fieldsJSON := `[{"field_name":"Name","field_value":"JANE DOE","type":"personal","confidence":"High"}]`
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": fieldsJSON}}}},
			},
		})
	}))
	defer srv.Close()

	c := NewGeminiClient("test-key", "test-model")
	c.baseURL = srv.URL

	fields, err := c.ExtractFields(context.Background(), "JANE DOE\njane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 1 || fields[0].FieldName != "Name" {
		t.Errorf("unexpected fields: %+v", fields)
	}
}

func TestGeminiClient_RateLimitIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient("k", "m")
	c.baseURL = srv.URL

	_, err := c.ExtractFields(context.Background(), "text")
	var retryable *RetryableError
	if !errors.As(err, &retryable) {
		t.Fatalf("expected RetryableError, got %v", err)
	}
	if retryable.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected status: %d", retryable.StatusCode)
	}
}

func TestGeminiClient_BadRequestIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":400,"message":"bad schema"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewGeminiClient("k", "m")
	c.baseURL = srv.URL

	_, err := c.ExtractFields(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		t.Error("400 should not be retryable")
	}
}
