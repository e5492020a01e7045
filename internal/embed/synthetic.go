package embed

import (
	"context"
	"math/rand/v2"

	"github.com/abhisek/recallkit/internal/segment"
)

// SyntheticModelID is reported by the synthetic encoder.
const SyntheticModelID = "mock"

// SyntheticConfig configures the synthetic encoder.
type SyntheticConfig struct {
	Seed      uint64
	Dimension int
}

// Synthetic produces seeded pseudo-random unit vectors. It carries no
// semantic signal and exists so the rest of the pipeline runs without a
// model. The same chunk count always yields the same vectors.
type Synthetic struct {
	cfg SyntheticConfig
}

// NewSynthetic creates a synthetic encoder. Zero values fall back to
// seed 42 and dimension 384.
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = 384
	}
	return &Synthetic{cfg: cfg}
}

func (s *Synthetic) Encode(_ context.Context, chunks []segment.Chunk) ([]EmbeddedChunk, error) {
	rng := rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed))

	out := make([]EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		v := make([]float64, s.cfg.Dimension)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		out[i] = EmbeddedChunk{Chunk: c, Vector: v, Norm: Normalize(v), Model: SyntheticModelID}
	}
	return out, nil
}

func (s *Synthetic) ModelID() string {
	return SyntheticModelID
}

// Dimension returns the configured vector size.
func (s *Synthetic) Dimension() int {
	return s.cfg.Dimension
}
