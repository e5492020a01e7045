package segment

import "fmt"

// Kind records how a chunk was produced from its source section.
type Kind string

const (
	// KindWhole means the section fit within MaxChars and became one chunk.
	KindWhole Kind = "whole"

	// KindSplit means the section was packed sentence by sentence into
	// several chunks.
	KindSplit Kind = "split"
)

// Chunk is a bounded span of source text. Chunks are immutable once
// produced and are ordered by their position in the document.
type Chunk struct {
	// ID is a zero-padded ordinal, e.g. "chunk_007". It counts across the
	// whole document and ignores section boundaries.
	ID string `json:"id"`

	// Content is the chunk text with whitespace normalized.
	Content string `json:"content"`

	// Length is the character (rune) count of Content.
	Length int `json:"length"`

	// WordCount is the number of whitespace-separated words in Content.
	WordCount int `json:"word_count"`

	Kind Kind `json:"kind"`
}

// ChunkID formats the ordinal n (starting at 1) as a chunk identifier.
func ChunkID(n int) string {
	return fmt.Sprintf("chunk_%03d", n)
}
