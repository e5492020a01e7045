package similarity

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/abhisek/recallkit/internal/embed"
)

// DefaultK is the number of pairs kept by the ranker.
const DefaultK = 3

// excerptRunes is the excerpt length attached to each pair.
const excerptRunes = 80

// Pair is one scored chunk pair. ChunkA always precedes ChunkB in
// document order.
type Pair struct {
	ChunkA   string  `json:"chunk_id_a"`
	ChunkB   string  `json:"chunk_id_b"`
	Score    float64 `json:"score"`
	ExcerptA string  `json:"excerpt_a"`
	ExcerptB string  `json:"excerpt_b"`
}

// RankTopK scores every unordered chunk pair by dot product and returns the
// k best, highest first. Vectors must already be unit length. Ties are
// ordered by the chunks' positions in the input, which is segment order,
// so chunk_999 sorts before chunk_1000.
//
// The comparison is quadratic in the number of chunks, which the
// segmenter keeps in the tens.
func RankTopK(chunks []embed.EmbeddedChunk, k int) []Pair {
	if k <= 0 || len(chunks) < 2 {
		return []Pair{}
	}

	type ranked struct {
		Pair
		a, b int
	}
	all := make([]ranked, 0, len(chunks)*(len(chunks)-1)/2)
	for i := range chunks {
		for j := i + 1; j < len(chunks); j++ {
			a, b := chunks[i], chunks[j]
			all = append(all, ranked{
				Pair: Pair{ChunkA: a.ID, ChunkB: b.ID, Score: clamp(Dot(a.Vector, b.Vector))},
				a:    i,
				b:    j,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		if all[i].a != all[j].a {
			return all[i].a < all[j].a
		}
		return all[i].b < all[j].b
	})

	pairs := make([]Pair, min(k, len(all)))
	for i := range pairs {
		pairs[i] = all[i].Pair
	}

	content := make(map[string]string, len(chunks))
	for _, c := range chunks {
		content[c.ID] = c.Content
	}
	for i := range pairs {
		pairs[i].ExcerptA = Excerpt(content[pairs[i].ChunkA], excerptRunes)
		pairs[i].ExcerptB = Excerpt(content[pairs[i].ChunkB], excerptRunes)
	}

	return pairs
}

// Dot returns the dot product over the shared prefix of a and b.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := range n {
		sum += a[i] * b[i]
	}
	return sum
}

// Cosine returns the cosine similarity of a and b without assuming unit
// length. Zero vectors score 0.
func Cosine(a, b []float64) float64 {
	n := min(len(a), len(b))
	var dot, na, nb float64
	for i := range n {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// Excerpt returns the first n runes of s, suffixed with "..." when cut.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}

// clamp absorbs rounding that pushes unit-vector products past ±1.
func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
