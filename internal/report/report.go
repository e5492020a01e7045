package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/abhisek/recallkit/internal/correspond"
	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/pipeline"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/similarity"
)

// Metadata describes the run that produced a report.
type Metadata struct {
	RunID                     string    `json:"run_id"`
	Timestamp                 time.Time `json:"timestamp"`
	Source                    string    `json:"source"`
	ModelName                 string    `json:"model_name"`
	ChunkCount                int       `json:"chunk_count"`
	ConceptCount              int       `json:"concept_count"`
	QuestionCount             int       `json:"question_count"`
	EmbeddingDimension        int       `json:"embedding_dimension"`
	ProcessingDurationSeconds float64   `json:"processing_duration_seconds"`
}

// Statistics are aggregates derived from the run.
type Statistics struct {
	MeanChunkLength float64 `json:"mean_chunk_length"`

	// ChunkKinds and DifficultyTiers list the distinct values, sorted.
	ChunkKinds      []string `json:"chunk_kinds"`
	DifficultyTiers []string `json:"difficulty_tiers"`

	MaxSimilarity float64 `json:"max_similarity"`
}

// Report is the persisted output of one pipeline run.
type Report struct {
	Metadata          Metadata              `json:"metadata"`
	Concepts          []string              `json:"concepts"`
	Questions         []questions.Question  `json:"questions"`
	Correspondence    correspond.Report     `json:"correspondence_report"`
	Chunks            []embed.EmbeddedChunk `json:"chunks"`
	SimilarityPairs   []similarity.Pair     `json:"similarity_pairs"`
	SummaryStatistics Statistics            `json:"summary_statistics"`
}

// Build assembles a report from a pipeline result.
func Build(res *pipeline.Result, now time.Time) *Report {
	r := &Report{
		Metadata: Metadata{
			RunID:                     res.RunID,
			Timestamp:                 now.UTC(),
			Source:                    res.Source,
			ModelName:                 res.ModelID,
			ChunkCount:                len(res.Chunks),
			ConceptCount:              len(res.Concepts),
			QuestionCount:             len(res.Questions),
			EmbeddingDimension:        res.Dimension,
			ProcessingDurationSeconds: res.Duration.Seconds(),
		},
		Concepts:        nonNil(res.Concepts),
		Questions:       nonNil(res.Questions),
		Correspondence:  res.Correspondence,
		Chunks:          nonNil(res.Embedded),
		SimilarityPairs: nonNil(res.Pairs),
	}
	r.Correspondence.Items = nonNil(r.Correspondence.Items)
	r.SummaryStatistics = statistics(r)
	return r
}

func statistics(r *Report) Statistics {
	st := Statistics{
		ChunkKinds:      []string{},
		DifficultyTiers: []string{},
	}

	kinds := make(map[string]bool)
	var total int
	for _, c := range r.Chunks {
		total += c.Length
		kinds[string(c.Kind)] = true
	}
	if len(r.Chunks) > 0 {
		st.MeanChunkLength = float64(total) / float64(len(r.Chunks))
	}
	st.ChunkKinds = sortedKeys(kinds)

	tiers := make(map[string]bool)
	for _, q := range r.Questions {
		tiers[string(q.Difficulty)] = true
	}
	st.DifficultyTiers = sortedKeys(tiers)

	// Pairs are sorted by descending score.
	if len(r.SimilarityPairs) > 0 {
		st.MaxSimilarity = r.SimilarityPairs[0].Score
	}
	return st
}

// Question returns the question with id.
func (r *Report) Question(id string) (questions.Question, bool) {
	for _, q := range r.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return questions.Question{}, false
}

// Save writes the report as indented JSON, creating parent directories.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads and validates a report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	if err := Verify(data); err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
