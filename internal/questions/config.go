package questions

import "fmt"

// Config controls question synthesis.
type Config struct {
	// MaxQuestions caps the number of questions; one per leading concept.
	MaxQuestions int

	// Templates are prompt formats with a single %s slot for the
	// title-cased concept.
	Templates []string

	// ProceduralKeywords mark a concept as intermediate difficulty.
	ProceduralKeywords []string

	// SnippetRunes is the context snippet length before the ellipsis.
	SnippetRunes int

	// MinMinutes and MaxMinutes bound EstimatedMinutes.
	MinMinutes int
	MaxMinutes int
}

// DefaultTemplates are open-ended explain, compare and why prompts. None
// can be answered yes or no.
var DefaultTemplates = []string{
	"¿Qué significa el concepto de '%s' y cómo se aplica?",
	"Explica con tus propias palabras qué implica '%s'",
	"¿Cuáles son las características principales de '%s'?",
	"¿Cómo se relaciona '%s' con otros conceptos similares?",
	"Describe un ejemplo práctico donde uses '%s'",
	"¿Por qué es importante entender '%s' en este contexto?",
	"¿Cuáles serían las consecuencias de no aplicar '%s'?",
	"Compara '%s' con conceptos relacionados",
	"¿En qué situaciones sería más efectivo '%s'?",
	"Analiza los beneficios y limitaciones de '%s'",
}

// DefaultProceduralKeywords are the procedural markers, in Spanish and
// English.
var DefaultProceduralKeywords = []string{
	"técnica", "método", "proceso",
	"technique", "method", "process",
}

// DefaultConfig returns the standard synthesis settings.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:       5,
		Templates:          append([]string(nil), DefaultTemplates...),
		ProceduralKeywords: append([]string(nil), DefaultProceduralKeywords...),
		SnippetRunes:       150,
		MinMinutes:         3,
		MaxMinutes:         8,
	}
}

// Validate rejects settings Synthesize cannot honour.
func (c Config) Validate() error {
	if c.MaxQuestions < 0 {
		return fmt.Errorf("questions.maxquestions must not be negative, got %d", c.MaxQuestions)
	}
	if len(c.Templates) == 0 {
		return fmt.Errorf("questions.templates must not be empty")
	}
	if c.MinMinutes < 0 || c.MaxMinutes < c.MinMinutes {
		return fmt.Errorf("questions minutes range [%d, %d] is invalid", c.MinMinutes, c.MaxMinutes)
	}
	return nil
}
