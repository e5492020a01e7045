package questions

// Difficulty is a coarse tier derived from the concept phrase.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Question is a comprehension prompt anchored to one source chunk.
// Questions are read-only after synthesis.
type Question struct {
	// ID is "q_01", "q_02", ... in synthesis order.
	ID string `json:"id"`

	// Concept is the normalized concept the question targets.
	Concept string `json:"concept"`

	// Prompt is the open-ended question shown to the learner.
	Prompt string `json:"prompt"`

	Difficulty Difficulty `json:"difficulty"`

	// SourceChunkID references the chunk the question is anchored to.
	// Empty only when no chunks were supplied.
	SourceChunkID string `json:"source_chunk_id"`

	// ContextSnippet is the start of the source chunk, ellipsis-suffixed
	// when cut.
	ContextSnippet string `json:"context_snippet"`

	// EstimatedMinutes is a rough time budget for answering.
	EstimatedMinutes int `json:"estimated_minutes"`
}
