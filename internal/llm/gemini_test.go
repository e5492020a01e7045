package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(adviceTestSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("len(Properties) = %d, want 4", len(s.Properties))
	}
	if got := s.Properties["feedback"].Type; got != genai.TypeString {
		t.Errorf("feedback type = %s, want STRING", got)
	}
	if got := s.Properties["missing_points"]; got.Type != genai.TypeArray || got.Items == nil || got.Items.Type != genai.TypeString {
		t.Errorf("missing_points = %+v, want ARRAY of STRING", got)
	}
	if got := s.Properties["level"].Enum; len(got) != 2 {
		t.Errorf("level enum = %v, want 2 values", got)
	}
	if len(s.Required) != 2 {
		t.Errorf("Required = %v, want 2 fields", s.Required)
	}
}

func TestGeminiSchema_DecodedJSON(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "object",
		"required": []any{"a"},
		"properties": map[string]any{
			"a": map[string]any{"type": "integer"},
			"b": map[string]any{"type": "mystery"},
		},
	})

	if len(s.Required) != 1 || s.Required[0] != "a" {
		t.Errorf("Required = %v, want [a]", s.Required)
	}
	if s.Properties["a"].Type != genai.TypeInteger {
		t.Errorf("a type = %s, want INTEGER", s.Properties["a"].Type)
	}
	if s.Properties["b"].Type != genai.TypeString {
		t.Errorf("unknown type = %s, want STRING fallback", s.Properties["b"].Type)
	}
}
