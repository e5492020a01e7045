package correspond

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/questions"
)

// Strategy names accepted by NewScorer.
const (
	StrategyLength    = "length"
	StrategyEmbedding = "embedding"
)

// Config controls the validator.
type Config struct {
	// Strategy selects the scorer: "length" or "embedding".
	Strategy string

	// MaxItems is how many leading questions are scored.
	MaxItems int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{Strategy: StrategyLength, MaxItems: 3}
}

// NewScorer builds the scorer named by strategy. The embedding scorer
// needs the active encoder and degrades to LengthScorer when that encoder
// is synthetic.
func NewScorer(strategy string, enc embed.Encoder, logger *zap.Logger) (Scorer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strategy {
	case "", StrategyLength:
		return LengthScorer{}, nil
	case StrategyEmbedding:
		if enc == nil {
			return nil, fmt.Errorf("embedding correspondence requires an encoder")
		}
		if enc.ModelID() == embed.SyntheticModelID {
			logger.Warn("embedding correspondence needs a real model, using length scorer",
				zap.String("encoder", enc.ModelID()))
			return LengthScorer{}, nil
		}
		return EmbeddingScorer{Encoder: enc}, nil
	default:
		return nil, fmt.Errorf("unknown correspondence strategy: %q", strategy)
	}
}

// Validator produces a CorrespondenceReport for a pipeline run.
type Validator struct {
	scorer Scorer
	cfg    Config
	logger *zap.Logger
}

// NewValidator creates a Validator.
func NewValidator(scorer Scorer, cfg Config, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	return &Validator{scorer: scorer, cfg: cfg, logger: logger}
}

// Validate scores up to MaxItems questions. Empty chunks, concepts or
// questions yield the neutral report. A scorer failure on one item scores
// that item neutrally instead of failing the run.
func (v *Validator) Validate(ctx context.Context, chunks []embed.EmbeddedChunk, concepts []string, qs []questions.Question) Report {
	if len(chunks) == 0 || len(concepts) == 0 || len(qs) == 0 {
		return Neutral(v.scorer.Name())
	}

	n := min(v.cfg.MaxItems, len(qs))
	report := Report{Items: make([]Item, 0, n), Strategy: v.scorer.Name()}

	var total float64
	for _, q := range qs[:n] {
		score, err := v.scorer.Score(ctx, q, chunks)
		if err != nil {
			v.logger.Warn("correspondence scoring failed, using neutral score",
				zap.String("question", q.ID),
				zap.String("scorer", v.scorer.Name()),
				zap.Error(err))
			score = NeutralScore
		}

		item := Item{QuestionID: q.ID, Concept: q.Concept, Score: score, Tier: Classify(score)}
		switch item.Tier {
		case TierValid:
			report.Valid++
		case TierPartial:
			report.Partial++
		default:
			report.Weak++
		}
		report.Items = append(report.Items, item)
		total += score
	}

	report.OverallScore = total / float64(n)
	return report
}
