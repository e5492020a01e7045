package concepts

import "fmt"

// Config holds the fixed vocabulary, phrase patterns and fallback
// concepts used by the Extractor.
type Config struct {
	// Vocabulary is scanned first, in order, by case-insensitive substring.
	Vocabulary []string

	// Patterns are RE2 expressions with exactly one capture group for the
	// concept phrase. They are compiled case-insensitively.
	Patterns []string

	// Fallback concepts pad the list when extraction finds too few.
	Fallback []string

	// MaxCandidates caps vocabulary and pattern matches together.
	MaxCandidates int

	// MinConcepts is the floor reached by padding with Fallback.
	MinConcepts int

	// MaxPadded caps the list when padding was needed.
	MaxPadded int

	// MaxGeneral caps capitalized-word concepts in the last-resort scan.
	MaxGeneral int

	// MinGeneralRunes is the shortest capitalized word the last-resort
	// scan accepts.
	MinGeneralRunes int

	// MinPhraseRunes and MaxPhraseRunes bound a captured pattern phrase.
	MinPhraseRunes int
	MaxPhraseRunes int
}

// MaxConcepts is the largest concept list Extract may return.
const MaxConcepts = 8

// DefaultVocabulary is the study-technique vocabulary.
var DefaultVocabulary = []string{
	"active recall", "repetición espaciada", "metacognición",
	"memoria a largo plazo", "retrieval practice", "testing effect",
	"elaborative interrogation", "self-explanation", "interleaving",
	"feedback", "spaced practice", "desirable difficulties",
	"aprendizaje", "estudio", "memoria", "comprensión", "conocimiento",
	"técnica", "método", "estrategia", "educación", "enseñanza",
	"didáctica", "pedagogía", "formación", "capacitación",
}

// DefaultPatterns bind the phrase in "the concept of X", "the technique X",
// "X is a method" and "X enables" shapes, in Spanish and English. Phrases
// start and end on word boundaries and stay within one line.
var DefaultPatterns = []string{
	`el concepto de (\pL[\pL ]{2,24})(?:[^\pL]|$)`,
	`la técnica de (\pL[\pL ]{2,24})(?:[^\pL]|$)`,
	`el método (\pL[\pL ]{2,24})(?:[^\pL]|$)`,
	`la estrategia (\pL[\pL ]{2,24})(?:[^\pL]|$)`,
	`el proceso de (\pL[\pL ]{2,24})(?:[^\pL]|$)`,
	`(?:^|[^\pL])(\pL[\pL ]{2,24}) es una técnica`,
	`(?:^|[^\pL])(\pL[\pL ]{2,24}) es un método`,
	`(?:^|[^\pL])(\pL[\pL ]{2,24}) permite`,
	`the concept of (\pL[\pL -]{2,24})(?:[^\pL]|$)`,
	`the technique of (\pL[\pL -]{2,24})(?:[^\pL]|$)`,
	`(?:^|[^\pL])(\pL[\pL -]{2,24}) is an? (?:method|technique)`,
	`(?:^|[^\pL])(\pL[\pL -]{2,24}) (?:enables|permits)`,
}

// DefaultFallback pads short concept lists.
var DefaultFallback = []string{"aprendizaje", "conocimiento", "comprensión"}

// DefaultConfig returns the standard extractor configuration.
func DefaultConfig() Config {
	return Config{
		Vocabulary:      append([]string(nil), DefaultVocabulary...),
		Patterns:        append([]string(nil), DefaultPatterns...),
		Fallback:        append([]string(nil), DefaultFallback...),
		MaxCandidates:   MaxConcepts,
		MinConcepts:     3,
		MaxPadded:       5,
		MaxGeneral:      5,
		MinGeneralRunes: 5,
		MinPhraseRunes:  3,
		MaxPhraseRunes:  25,
	}
}

// Validate checks that the caps keep Extract within
// [MinConcepts, MaxConcepts].
func (c Config) Validate() error {
	if c.MinConcepts < 1 {
		return fmt.Errorf("concepts.minconcepts must be at least 1, got %d", c.MinConcepts)
	}
	if c.MaxCandidates < c.MinConcepts || c.MaxCandidates > MaxConcepts {
		return fmt.Errorf("concepts.maxcandidates must be within [%d, %d], got %d",
			c.MinConcepts, MaxConcepts, c.MaxCandidates)
	}
	if c.MaxPadded < c.MinConcepts || c.MaxPadded > MaxConcepts {
		return fmt.Errorf("concepts.maxpadded must be within [%d, %d], got %d",
			c.MinConcepts, MaxConcepts, c.MaxPadded)
	}
	return nil
}
