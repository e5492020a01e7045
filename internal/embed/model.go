package embed

import (
	"context"

	"github.com/abhisek/recallkit/internal/segment"
)

// ModelEncoder is the model-backed Encoder. It sends every chunk text to
// its Backend in one batch and re-normalizes the returned vectors, since
// not every backend guarantees unit length.
type ModelEncoder struct {
	backend Backend
}

// NewModelEncoder wraps a Backend as an Encoder.
func NewModelEncoder(b Backend) *ModelEncoder {
	return &ModelEncoder{backend: b}
}

func (m *ModelEncoder) Encode(ctx context.Context, chunks []segment.Chunk) ([]EmbeddedChunk, error) {
	if len(chunks) == 0 {
		return []EmbeddedChunk{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := m.backend.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, &ErrBatchMismatch{Want: len(chunks), Got: len(vectors)}
	}

	model := m.backend.ModelID()
	out := make([]EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		v := vectors[i]
		out[i] = EmbeddedChunk{Chunk: c, Vector: v, Norm: Normalize(v), Model: model}
	}
	return out, nil
}

func (m *ModelEncoder) ModelID() string {
	return m.backend.ModelID()
}

// Close releases the backend if it holds native resources.
func (m *ModelEncoder) Close() error {
	if c, ok := m.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
