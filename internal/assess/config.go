package assess

// Config holds the lexical heuristics used to score answers.
type Config struct {
	// Placeholder is the pre-filled answer hint. Submitting it unedited
	// counts as an empty answer.
	Placeholder string

	// ReasoningMarkers are causal or explanatory words that signal the
	// learner explained rather than listed.
	ReasoningMarkers []string

	// MinWords is the word count for sufficient_length.
	MinWords int

	// Points awarded per flag.
	ConceptPoints   int
	ReasoningPoints int
	LengthPoints    int
}

// DefaultPlaceholder is shown in the empty answer box.
const DefaultPlaceholder = "Ejemplo: El concepto significa... porque permite... y se aplica cuando..."

// DefaultReasoningMarkers covers Spanish and English explanatory words.
var DefaultReasoningMarkers = []string{
	"porque", "debido", "permite", "significa", "implica", "consiste", "ejemplo", "aplicar",
	"because", "implies", "enables", "means", "consists", "example", "apply",
}

// DefaultConfig returns the standard scoring rules: 40 points for naming
// the concept, 30 for reasoning, 30 for at least ten words.
func DefaultConfig() Config {
	return Config{
		Placeholder:      DefaultPlaceholder,
		ReasoningMarkers: append([]string(nil), DefaultReasoningMarkers...),
		MinWords:         10,
		ConceptPoints:    40,
		ReasoningPoints:  30,
		LengthPoints:     30,
	}
}
