package questions

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/recallkit/internal/segment"
	"github.com/abhisek/recallkit/internal/similarity"
)

// Synthesizer turns concepts into template-based questions. All random
// choices draw from the injected source, so a fixed seed reproduces the
// same question set.
type Synthesizer struct {
	cfg   Config
	rng   *rand.Rand
	title cases.Caser
}

// NewSynthesizer creates a Synthesizer. A nil rng is seeded from the clock.
func NewSynthesizer(cfg Config, rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	if len(cfg.Templates) == 0 {
		cfg.Templates = DefaultTemplates
	}
	return &Synthesizer{
		cfg:   cfg,
		rng:   rng,
		title: cases.Title(language.Spanish),
	}
}

// NewRand returns a PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SeedFor derives a stable seed from document text, so the same document
// yields the same questions across runs.
func SeedFor(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Synthesize returns min(MaxQuestions, len(concepts)) questions in concept
// order. Every question references a chunk whenever chunks is non-empty.
func (s *Synthesizer) Synthesize(concepts []string, chunks []segment.Chunk) []Question {
	n := max(min(s.cfg.MaxQuestions, len(concepts)), 0)
	if len(s.cfg.Templates) == 0 {
		n = 0
	}
	out := make([]Question, 0, n)

	for i, concept := range concepts[:n] {
		tmpl := s.cfg.Templates[s.rng.IntN(len(s.cfg.Templates))]

		q := Question{
			ID:               fmt.Sprintf("q_%02d", i+1),
			Concept:          concept,
			Prompt:           fmt.Sprintf(tmpl, s.title.String(concept)),
			Difficulty:       s.Difficulty(concept),
			EstimatedMinutes: s.minutes(),
		}

		if src, ok := s.sourceChunk(concept, chunks); ok {
			q.SourceChunkID = src.ID
			q.ContextSnippet = similarity.Excerpt(src.Content, s.cfg.SnippetRunes)
		}

		out = append(out, q)
	}

	return out
}

// Difficulty classifies a concept: more than two words is advanced, a
// procedural keyword is intermediate, anything else is basic.
func (s *Synthesizer) Difficulty(concept string) Difficulty {
	if len(strings.Fields(concept)) > 2 {
		return DifficultyAdvanced
	}
	lower := strings.ToLower(concept)
	for _, kw := range s.cfg.ProceduralKeywords {
		if strings.Contains(lower, kw) {
			return DifficultyIntermediate
		}
	}
	return DifficultyBasic
}

// sourceChunk returns the first chunk mentioning concept, or a random one.
func (s *Synthesizer) sourceChunk(concept string, chunks []segment.Chunk) (segment.Chunk, bool) {
	if len(chunks) == 0 {
		return segment.Chunk{}, false
	}
	lower := strings.ToLower(concept)
	for _, c := range chunks {
		if strings.Contains(strings.ToLower(c.Content), lower) {
			return c, true
		}
	}
	return chunks[s.rng.IntN(len(chunks))], true
}

func (s *Synthesizer) minutes() int {
	lo, hi := s.cfg.MinMinutes, s.cfg.MaxMinutes
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}
