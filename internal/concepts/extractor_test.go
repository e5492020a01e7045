package concepts

import (
	"slices"
	"strings"
	"testing"
)

const sample = `
Active Recall es una técnica de estudio que consiste en recuperar información
de la memoria activamente, en lugar de simplemente releer material de estudio.

La validación semántica permite comparar respuestas del estudiante con el
material original usando embeddings, sin requerir coincidencia exacta de palabras.
`

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(DefaultConfig())
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	return e
}

func TestExtract_Sample(t *testing.T) {
	got := newTestExtractor(t).Extract(sample)

	for _, want := range []string{"active recall", "memoria", "estudio", "técnica", "la validación semántica"} {
		if !slices.Contains(got, want) {
			t.Errorf("Extract(sample) = %q, missing %q", got, want)
		}
	}
	if slices.Contains(got, "formación") {
		t.Errorf("Extract(sample) = %q, matched \"formación\" inside \"información\"", got)
	}
	if got[0] != "active recall" {
		t.Errorf("first concept = %q, want vocabulary order to put \"active recall\" first", got[0])
	}
}

func TestExtract_Bounds(t *testing.T) {
	inputs := []string{
		"x",
		"sin vocabulario ni mayúsculas en absoluto",
		"Kubernetes orquesta contenedores. Docker empaqueta aplicaciones. Linux ejecuta todo.",
		sample,
		strings.Repeat("aprendizaje estudio memoria comprensión conocimiento técnica método estrategia educación enseñanza ", 3),
	}
	e := newTestExtractor(t)

	for _, in := range inputs {
		got := e.Extract(in)
		if len(got) < 3 || len(got) > 8 {
			t.Errorf("Extract(%q) returned %d concepts: %q", in, len(got), got)
		}
	}
}

func TestExtract_CapitalizedFallback(t *testing.T) {
	got := newTestExtractor(t).Extract("Kubernetes orquesta contenedores. Docker empaqueta. Linux corre. Kubernetes escala.")

	want := []string{"kubernetes", "docker", "linux"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_PadsWithFallback(t *testing.T) {
	got := newTestExtractor(t).Extract("nada relevante aquí")

	want := []string{"aprendizaje", "conocimiento", "comprensión"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_PaddingSkipsDuplicates(t *testing.T) {
	got := newTestExtractor(t).Extract("hablamos del conocimiento")

	want := []string{"conocimiento", "aprendizaje", "comprensión"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_CapsCandidates(t *testing.T) {
	text := "aprendizaje estudio memoria comprensión conocimiento técnica método estrategia educación enseñanza didáctica"
	got := newTestExtractor(t).Extract(text)

	if len(got) != 8 {
		t.Fatalf("len = %d, want 8: %q", len(got), got)
	}
	if got[0] != "aprendizaje" {
		t.Errorf("got[0] = %q, want aprendizaje", got[0])
	}
}

func TestExtract_Patterns(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Hoy veremos el concepto de carga cognitiva en clase.", "carga cognitiva en clase"},
		{"Spaced repetition is a method for long retention.", "spaced repetition"},
		{"Chunking enables faster reading.", "chunking"},
		{"El mapa mental es una técnica visual.", "el mapa mental"},
	}
	e := newTestExtractor(t)

	for _, tc := range tests {
		got := e.Extract(tc.text)
		if !slices.Contains(got, tc.want) {
			t.Errorf("Extract(%q) = %q, missing %q", tc.text, got, tc.want)
		}
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	got := newTestExtractor(t).Extract("MEMORIA memoria Memoria y Active Recall es una técnica")

	seen := map[string]bool{}
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate concept %q in %q", c, got)
		}
		seen[c] = true
		if c != strings.ToLower(c) {
			t.Errorf("concept %q not lower-cased", c)
		}
	}
}

func TestNewExtractor_BadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns = []string{"sin grupo"}
	if _, err := NewExtractor(cfg); err == nil {
		t.Error("expected error for pattern without capture group")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"candidates above cap", func(c *Config) { c.MaxCandidates = MaxConcepts + 1 }},
		{"candidates below floor", func(c *Config) { c.MaxCandidates = c.MinConcepts - 1 }},
		{"zero floor", func(c *Config) { c.MinConcepts = 0 }},
		{"padded above cap", func(c *Config) { c.MaxPadded = MaxConcepts + 1 }},
		{"padded below floor", func(c *Config) { c.MaxPadded = 1 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		text, phrase string
		want         bool
	}{
		{"la memoria activa", "memoria", true},
		{"memoria", "memoria", true},
		{"información", "formación", false},
		{"información y formación", "formación", true},
		{"active recall.", "active recall", true},
	}
	for _, tc := range tests {
		if got := containsPhrase(tc.text, tc.phrase); got != tc.want {
			t.Errorf("containsPhrase(%q, %q) = %v, want %v", tc.text, tc.phrase, got, tc.want)
		}
	}
}
