package similarity

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/segment"
)

func ec(id string, v ...float64) embed.EmbeddedChunk {
	embed.Normalize(v)
	return embed.EmbeddedChunk{
		Chunk:  segment.Chunk{ID: id, Content: "contenido " + id},
		Vector: v,
		Norm:   1,
	}
}

func TestRankTopK_OrdersByScore(t *testing.T) {
	chunks := []embed.EmbeddedChunk{
		ec("chunk_001", 1, 0),
		ec("chunk_002", 1, 0.1),
		ec("chunk_003", 0, 1),
		ec("chunk_004", -1, 0),
	}

	pairs := RankTopK(chunks, 3)
	if len(pairs) != 3 {
		t.Fatalf("len(pairs) = %d, want 3", len(pairs))
	}
	if pairs[0].ChunkA != "chunk_001" || pairs[0].ChunkB != "chunk_002" {
		t.Errorf("best pair = (%s, %s), want (chunk_001, chunk_002)", pairs[0].ChunkA, pairs[0].ChunkB)
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i].Score > pairs[i-1].Score {
			t.Errorf("pairs not descending at %d: %v > %v", i, pairs[i].Score, pairs[i-1].Score)
		}
	}
}

func TestRankTopK_TieBreakPastThreeDigits(t *testing.T) {
	chunks := []embed.EmbeddedChunk{
		ec(segment.ChunkID(998), 1, 0),
		ec(segment.ChunkID(999), 1, 0),
		ec(segment.ChunkID(1000), 1, 0),
	}

	pairs := RankTopK(chunks, 3)
	want := [][2]string{
		{"chunk_998", "chunk_999"},
		{"chunk_998", "chunk_1000"},
		{"chunk_999", "chunk_1000"},
	}
	for i, w := range want {
		if pairs[i].ChunkA != w[0] || pairs[i].ChunkB != w[1] {
			t.Errorf("pairs[%d] = (%s, %s), want (%s, %s)", i, pairs[i].ChunkA, pairs[i].ChunkB, w[0], w[1])
		}
	}
}

func TestRankTopK_TieBreak(t *testing.T) {
	chunks := []embed.EmbeddedChunk{
		ec("chunk_001", 1, 0),
		ec("chunk_002", 1, 0),
		ec("chunk_003", 1, 0),
	}

	pairs := RankTopK(chunks, 3)
	want := [][2]string{
		{"chunk_001", "chunk_002"},
		{"chunk_001", "chunk_003"},
		{"chunk_002", "chunk_003"},
	}
	for i, w := range want {
		if pairs[i].ChunkA != w[0] || pairs[i].ChunkB != w[1] {
			t.Errorf("pairs[%d] = (%s, %s), want (%s, %s)", i, pairs[i].ChunkA, pairs[i].ChunkB, w[0], w[1])
		}
	}
}

func TestRankTopK_Length(t *testing.T) {
	enc := embed.NewSynthetic(embed.SyntheticConfig{})
	tests := []struct {
		chunks, k, want int
	}{
		{0, 3, 0},
		{1, 3, 0},
		{2, 3, 1},
		{3, 3, 3},
		{5, 3, 3},
		{5, 0, 0},
		{4, 10, 6},
	}

	for _, tc := range tests {
		chunks := make([]segment.Chunk, tc.chunks)
		for i := range chunks {
			chunks[i] = segment.Chunk{ID: segment.ChunkID(i + 1)}
		}
		embedded, _ := enc.Encode(context.Background(), chunks)

		got := RankTopK(embedded, tc.k)
		if len(got) != tc.want {
			t.Errorf("RankTopK(%d chunks, k=%d) len = %d, want %d", tc.chunks, tc.k, len(got), tc.want)
		}
		for _, p := range got {
			if p.Score < -1 || p.Score > 1 {
				t.Errorf("score %v out of [-1, 1]", p.Score)
			}
		}
	}
}

func TestRankTopK_Excerpts(t *testing.T) {
	long := strings.Repeat("a", 100)
	chunks := []embed.EmbeddedChunk{ec("chunk_001", 1, 0), ec("chunk_002", 1, 0)}
	chunks[0].Content = long

	pairs := RankTopK(chunks, 1)
	if pairs[0].ExcerptA != strings.Repeat("a", 80)+"..." {
		t.Errorf("ExcerptA = %q, want 80 runes plus ellipsis", pairs[0].ExcerptA)
	}
	if pairs[0].ExcerptB != "contenido chunk_002" {
		t.Errorf("ExcerptB = %q, want untruncated content", pairs[0].ExcerptB)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		a, b []float64
		want float64
	}{
		{[]float64{1, 0}, []float64{1, 0}, 1},
		{[]float64{1, 0}, []float64{0, 3}, 0},
		{[]float64{2, 0}, []float64{-1, 0}, -1},
		{[]float64{0, 0}, []float64{1, 1}, 0},
	}
	for _, tc := range tests {
		if got := Cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Cosine(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestExcerpt_Runes(t *testing.T) {
	if got := Excerpt("técnica", 3); got != "téc..." {
		t.Errorf("Excerpt = %q, want %q", got, "téc...")
	}
}
