package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/concepts"
	"github.com/abhisek/recallkit/internal/correspond"
	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/metrics"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/segment"
	"github.com/abhisek/recallkit/internal/similarity"
)

// Config bundles the per-stage configuration.
type Config struct {
	Segment    segment.Config
	Concepts   concepts.Config
	Questions  questions.Config
	Correspond correspond.Config

	// TopK is the number of similarity pairs kept.
	TopK int

	// Seed fixes the question synthesizer's random source. Zero derives
	// the seed from the document text.
	Seed uint64
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Segment:    segment.DefaultConfig(),
		Concepts:   concepts.DefaultConfig(),
		Questions:  questions.DefaultConfig(),
		Correspond: correspond.DefaultConfig(),
		TopK:       similarity.DefaultK,
	}
}

// Result is the immutable output of one run.
type Result struct {
	RunID     string
	Source    string
	StartedAt time.Time
	Duration  time.Duration

	ModelID   string
	Dimension int
	Seed      uint64

	Chunks         []segment.Chunk
	Embedded       []embed.EmbeddedChunk
	Concepts       []string
	Questions      []questions.Question
	Pairs          []similarity.Pair
	Correspondence correspond.Report
}

// Pipeline runs segmentation, embedding, ranking, concept and question
// synthesis, and correspondence validation. Runs share no mutable state.
type Pipeline struct {
	cfg       Config
	encoder   embed.Encoder
	extractor *concepts.Extractor
	validator *correspond.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// New wires a pipeline around enc. m may be nil.
func New(cfg Config, enc embed.Encoder, m *metrics.Metrics, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if enc == nil {
		return nil, fmt.Errorf("pipeline requires an encoder")
	}

	extractor, err := concepts.NewExtractor(cfg.Concepts)
	if err != nil {
		return nil, err
	}

	scorer, err := correspond.NewScorer(cfg.Correspond.Strategy, enc, logger)
	if err != nil {
		return nil, err
	}

	if fe, ok := enc.(*embed.FallbackEncoder); ok && m != nil {
		fe.OnFallback = m.CountFallback
	}

	return &Pipeline{
		cfg:       cfg,
		encoder:   enc,
		extractor: extractor,
		validator: correspond.NewValidator(scorer, cfg.Correspond, logger),
		metrics:   m,
		logger:    logger,
	}, nil
}

// Encoder returns the encoder the pipeline was built with.
func (p *Pipeline) Encoder() embed.Encoder {
	return p.encoder
}

// Run processes text. Degenerate input (no chunks, no concepts) produces
// empty or neutral results rather than an error; only encoder failures
// and cancellation abort the run.
func (p *Pipeline) Run(ctx context.Context, source, text string) (res *Result, err error) {
	start := time.Now()
	defer func() { p.metrics.CountRun(err) }()

	res = &Result{
		RunID:     uuid.New().String(),
		Source:    source,
		StartedAt: start,
		Seed:      p.cfg.Seed,
	}
	if res.Seed == 0 {
		res.Seed = questions.SeedFor(text)
	}

	log := p.logger.With(zap.String("run_id", res.RunID), zap.String("source", source))

	stageStart := time.Now()
	res.Chunks = segment.Segment(text, p.cfg.Segment)
	p.metrics.ObserveStage(metrics.StageSegment, stageStart)
	for _, c := range res.Chunks {
		p.metrics.CountChunk(string(c.Kind))
	}
	log.Debug("segmented", zap.Int("chunks", len(res.Chunks)))

	stageStart = time.Now()
	res.Embedded, err = p.encoder.Encode(ctx, res.Chunks)
	p.metrics.ObserveStage(metrics.StageEncode, stageStart)
	if err != nil {
		return nil, fmt.Errorf("encode chunks: %w", err)
	}
	res.ModelID = p.encoder.ModelID()
	res.Dimension = embed.Dimension(res.Embedded)

	stageStart = time.Now()
	res.Pairs = similarity.RankTopK(res.Embedded, p.cfg.TopK)
	p.metrics.ObserveStage(metrics.StageRank, stageStart)

	stageStart = time.Now()
	res.Concepts = p.extractor.Extract(text)
	p.metrics.ObserveStage(metrics.StageConcepts, stageStart)
	log.Debug("concepts extracted", zap.Strings("concepts", res.Concepts))

	stageStart = time.Now()
	synth := questions.NewSynthesizer(p.cfg.Questions, questions.NewRand(res.Seed))
	res.Questions = synth.Synthesize(res.Concepts, res.Chunks)
	p.metrics.ObserveStage(metrics.StageQuestions, stageStart)

	stageStart = time.Now()
	res.Correspondence = p.validator.Validate(ctx, res.Embedded, res.Concepts, res.Questions)
	p.metrics.ObserveStage(metrics.StageCorrespond, stageStart)

	res.Duration = time.Since(start)
	log.Info("pipeline finished",
		zap.Int("chunks", len(res.Chunks)),
		zap.Int("concepts", len(res.Concepts)),
		zap.Int("questions", len(res.Questions)),
		zap.String("model", res.ModelID),
		zap.Duration("duration", res.Duration))

	return res, nil
}
