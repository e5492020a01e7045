package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/extract"
	"github.com/abhisek/recallkit/internal/pipeline"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/segment"
	"github.com/abhisek/recallkit/internal/similarity"
)

func sampleResult(t *testing.T) *pipeline.Result {
	t.Helper()
	p, err := pipeline.New(pipeline.DefaultConfig(), embed.NewSynthetic(embed.SyntheticConfig{}), nil, nil)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), "sample", extract.SampleText)
	require.NoError(t, err)
	return res
}

func TestBuild_Metadata(t *testing.T) {
	res := sampleResult(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r := Build(res, now)

	assert.Equal(t, res.RunID, r.Metadata.RunID)
	assert.Equal(t, now, r.Metadata.Timestamp)
	assert.Equal(t, "sample", r.Metadata.Source)
	assert.Equal(t, embed.SyntheticModelID, r.Metadata.ModelName)
	assert.Equal(t, len(res.Chunks), r.Metadata.ChunkCount)
	assert.Equal(t, len(res.Concepts), r.Metadata.ConceptCount)
	assert.Equal(t, len(res.Questions), r.Metadata.QuestionCount)
	assert.Equal(t, 384, r.Metadata.EmbeddingDimension)
	assert.GreaterOrEqual(t, r.Metadata.ProcessingDurationSeconds, 0.0)
}

func TestBuild_Statistics(t *testing.T) {
	res := &pipeline.Result{
		RunID: "run-1",
		Embedded: []embed.EmbeddedChunk{
			{Chunk: segment.Chunk{ID: "chunk_001", Content: "a", Length: 10, Kind: segment.KindSplit}},
			{Chunk: segment.Chunk{ID: "chunk_002", Content: "b", Length: 20, Kind: segment.KindWhole}},
			{Chunk: segment.Chunk{ID: "chunk_003", Content: "c", Length: 30, Kind: segment.KindSplit}},
		},
		Questions: []questions.Question{
			{ID: "q_01", Difficulty: questions.DifficultyIntermediate},
			{ID: "q_02", Difficulty: questions.DifficultyBasic},
			{ID: "q_03", Difficulty: questions.DifficultyBasic},
		},
		Pairs: []similarity.Pair{
			{ChunkA: "chunk_001", ChunkB: "chunk_002", Score: 0.8},
			{ChunkA: "chunk_001", ChunkB: "chunk_003", Score: 0.2},
		},
	}

	st := Build(res, time.Now()).SummaryStatistics

	assert.InDelta(t, 20.0, st.MeanChunkLength, 1e-9)
	assert.Equal(t, []string{"split", "whole"}, st.ChunkKinds)
	assert.Equal(t, []string{"basic", "intermediate"}, st.DifficultyTiers)
	assert.InDelta(t, 0.8, st.MaxSimilarity, 1e-9)
}

func TestBuild_EmptyResultHasArrays(t *testing.T) {
	r := Build(&pipeline.Result{RunID: "run-empty"}, time.Now())

	assert.NotNil(t, r.Concepts)
	assert.NotNil(t, r.Questions)
	assert.NotNil(t, r.Chunks)
	assert.NotNil(t, r.SimilarityPairs)
	assert.NotNil(t, r.Correspondence.Items)
	assert.Empty(t, r.SummaryStatistics.ChunkKinds)
	assert.Zero(t, r.SummaryStatistics.MeanChunkLength)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	r := Build(sampleResult(t), time.Now())
	path := filepath.Join(t.TempDir(), "out", "report.json")

	require.NoError(t, r.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, r.Metadata.RunID, loaded.Metadata.RunID)
	assert.Equal(t, r.Concepts, loaded.Concepts)
	assert.Equal(t, r.Questions, loaded.Questions)
	require.Len(t, loaded.Chunks, len(r.Chunks))
	assert.Len(t, loaded.Chunks[0].Vector, 384)

	q, ok := loaded.Question("q_01")
	require.True(t, ok)
	assert.Equal(t, r.Questions[0].Prompt, q.Prompt)

	_, ok = loaded.Question("q_99")
	assert.False(t, ok)
}

func TestSaveLoad_MoreThanDefaultQuestions(t *testing.T) {
	r := Build(sampleResult(t), time.Now())
	for i := len(r.Questions); i < 8; i++ {
		q := r.Questions[0]
		q.ID = fmt.Sprintf("q_%02d", i+1)
		r.Questions = append(r.Questions, q)
	}
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, r.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Questions, 8)
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"concepts": []}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var invalid *ErrInvalidReport
	assert.True(t, errors.As(err, &invalid))
}

func TestVerify(t *testing.T) {
	good, err := os.ReadFile(saveSample(t))
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid report", string(good), false},
		{"not json", "{not json", true},
		{"wrong type", `{"metadata": 1}`, true},
		{"empty object", `{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func saveSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, Build(sampleResult(t), time.Now()).Save(path))
	return path
}
