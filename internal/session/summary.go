package session

import (
	"time"

	"github.com/abhisek/recallkit/internal/assess"
)

// Summary aggregates a session's assessment history.
type Summary struct {
	SessionID string `json:"session_id"`

	// Answered is the number of assessments; Total the number of questions.
	Answered int `json:"answered"`
	Total    int `json:"total"`

	MeanScore         float64 `json:"mean_score"`
	ConceptsMentioned int     `json:"concepts_mentioned"`
	ReasoningShown    int     `json:"reasoning_shown"`

	// OverallTier maps MeanScore through the answer tiers. Empty when no
	// answer was assessed.
	OverallTier assess.Tier `json:"overall_tier"`

	Elapsed time.Duration `json:"elapsed"`
}

// Summary derives the session statistics from the history. It may be
// called at any time; after completion the result no longer changes.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID: s.ID,
		Answered:  len(s.history),
		Total:     len(s.questions),
	}

	end := s.endTime
	if s.phase != PhaseComplete {
		end = s.now()
	}
	sum.Elapsed = end.Sub(s.startTime)

	if len(s.history) == 0 {
		return sum
	}

	var total int
	for _, a := range s.history {
		total += a.Score
		if a.MentionsConcept {
			sum.ConceptsMentioned++
		}
		if a.ShowsReasoning {
			sum.ReasoningShown++
		}
	}

	sum.MeanScore = float64(total) / float64(len(s.history))
	sum.OverallTier = assess.TierFor(sum.MeanScore)
	return sum
}
