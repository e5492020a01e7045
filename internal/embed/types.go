package embed

import (
	"context"

	"github.com/abhisek/recallkit/internal/segment"
)

// Encoder maps chunks to unit-length vectors. Implementations are
// interchangeable: callers never branch on which strategy is active.
type Encoder interface {
	// Encode returns one EmbeddedChunk per input chunk, in input order.
	// The whole batch succeeds or fails together.
	Encode(ctx context.Context, chunks []segment.Chunk) ([]EmbeddedChunk, error)

	// ModelID names the model behind the vectors, e.g. "all-MiniLM-L6-v2".
	ModelID() string
}

// Backend produces raw vectors for a batch of texts. Backends are not
// required to normalize; the ModelEncoder does that.
type Backend interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	ModelID() string
}

// EmbeddedChunk is a Chunk with its vector attached.
type EmbeddedChunk struct {
	segment.Chunk

	// Vector has unit L2 norm.
	Vector []float64 `json:"vector"`

	// Norm is the L2 norm of Vector after normalization, 1.0 within
	// floating point tolerance.
	Norm float64 `json:"norm"`

	// Model is the ModelID that produced Vector. Vectors from different
	// models are not comparable.
	Model string `json:"-"`
}

// Dimension returns the vector size of the first chunk, or 0 when empty.
func Dimension(chunks []EmbeddedChunk) int {
	if len(chunks) == 0 {
		return 0
	}
	return len(chunks[0].Vector)
}
