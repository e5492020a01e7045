package correspond

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/segment"
	"github.com/abhisek/recallkit/internal/similarity"
)

// Scorer rates how well one question's concept is grounded in the source
// material, on a 0 to 100 scale.
type Scorer interface {
	Score(ctx context.Context, q questions.Question, chunks []embed.EmbeddedChunk) (float64, error)
	Name() string
}

// LengthScorer is the reference heuristic: ten points per character of the
// concept phrase, clamped to [40, 70]. It measures phrase specificity, not
// semantic grounding.
type LengthScorer struct{}

func (LengthScorer) Score(_ context.Context, q questions.Question, _ []embed.EmbeddedChunk) (float64, error) {
	return clampScore(float64(utf8.RuneCountInString(q.Concept))*10, 40, 70), nil
}

func (LengthScorer) Name() string { return "length" }

// ErrSyntheticConcept is returned when the concept was encoded by the
// synthetic encoder, whose vectors carry no meaning.
var ErrSyntheticConcept = errors.New("concept encoded by the synthetic encoder")

// ErrModelMismatch is returned when the concept and the chunks were
// encoded by different models.
type ErrModelMismatch struct {
	Concept, Chunks string
}

func (e *ErrModelMismatch) Error() string {
	return fmt.Sprintf("concept encoded by %q but chunks by %q", e.Concept, e.Chunks)
}

// EmbeddingScorer encodes the concept and compares it with the question's
// source chunk vector. When the source chunk is absent it uses the best
// matching chunk. Cosine maps linearly to [0, 100], negatives to 0.
type EmbeddingScorer struct {
	Encoder embed.Encoder
}

func (s EmbeddingScorer) Score(ctx context.Context, q questions.Question, chunks []embed.EmbeddedChunk) (float64, error) {
	encoded, err := s.Encoder.Encode(ctx, []segment.Chunk{{ID: q.ID, Content: q.Concept}})
	if err != nil {
		return 0, fmt.Errorf("encode concept %q: %w", q.Concept, err)
	}
	if len(encoded) != 1 {
		return 0, fmt.Errorf("encode concept %q: got %d vectors", q.Concept, len(encoded))
	}
	if encoded[0].Model == embed.SyntheticModelID {
		return 0, ErrSyntheticConcept
	}
	v := encoded[0].Vector

	best := math.Inf(-1)
	for _, c := range chunks {
		if c.Model != encoded[0].Model {
			return 0, &ErrModelMismatch{Concept: encoded[0].Model, Chunks: c.Model}
		}
		cos := similarity.Cosine(v, c.Vector)
		if c.ID == q.SourceChunkID {
			best = cos
			break
		}
		best = math.Max(best, cos)
	}
	if math.IsInf(best, -1) {
		return 0, nil
	}
	return clampScore(best*100, 0, 100), nil
}

func (s EmbeddingScorer) Name() string { return "embedding" }

func clampScore(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
