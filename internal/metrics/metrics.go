package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage labels for StageDuration.
const (
	StageSegment    = "segment"
	StageEncode     = "encode"
	StageRank       = "rank"
	StageConcepts   = "concepts"
	StageQuestions  = "questions"
	StageCorrespond = "correspond"
)

// Metrics holds the pipeline collectors on a private registry. Nothing is
// served over HTTP; WriteTextfile dumps the registry for a node exporter
// textfile collector.
type Metrics struct {
	Registry *prometheus.Registry

	StageDuration    *prometheus.HistogramVec
	ChunksTotal      *prometheus.CounterVec
	EncoderFallbacks prometheus.Counter
	AnswerScore      prometheus.Histogram
	RunsTotal        *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recallkit_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"stage"},
		),

		ChunksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recallkit_chunks_total",
				Help: "Chunks produced by the segmenter",
			},
			[]string{"kind"},
		),

		EncoderFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "recallkit_encoder_fallbacks_total",
				Help: "Batches re-encoded by the synthetic encoder after a model failure",
			},
		),

		AnswerScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recallkit_answer_score",
				Help:    "Heuristic answer scores",
				Buckets: []float64{0, 30, 40, 60, 70, 80, 100},
			},
		),

		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recallkit_runs_total",
				Help: "Pipeline runs by outcome",
			},
			[]string{"status"},
		),
	}

	m.Registry.MustRegister(m.StageDuration, m.ChunksTotal, m.EncoderFallbacks, m.AnswerScore, m.RunsTotal)
	return m
}

// ObserveStage records the time elapsed since start for stage. It is meant
// for defer: defer m.ObserveStage(metrics.StageEncode, time.Now()).
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// CountChunk increments the chunk counter for kind.
func (m *Metrics) CountChunk(kind string) {
	if m == nil {
		return
	}
	m.ChunksTotal.WithLabelValues(kind).Inc()
}

// CountFallback increments the encoder fallback counter.
func (m *Metrics) CountFallback(error) {
	if m == nil {
		return
	}
	m.EncoderFallbacks.Inc()
}

// ObserveScore records one answer score.
func (m *Metrics) ObserveScore(score int) {
	if m == nil {
		return
	}
	m.AnswerScore.Observe(float64(score))
}

// CountRun records a finished pipeline run.
func (m *Metrics) CountRun(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.RunsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes the registry in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
