package assess

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/recallkit/internal/questions"
)

// ErrEmptyAnswer rejects a blank or unedited placeholder answer. The
// learner must resubmit; no Assessment is produced.
var ErrEmptyAnswer = errors.New("empty answer")

// Tier is the qualitative band of an answer score.
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierFair             Tier = "fair"
	TierNeedsImprovement Tier = "needs improvement"
)

// TierFor maps a 0 to 100 score to its tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}

// Assessment is the scored result of one answer. It is never mutated
// after creation.
type Assessment struct {
	QuestionID string `json:"question_id"`
	Concept    string `json:"concept"`
	Answer     string `json:"answer"`
	Score      int    `json:"score"`
	Tier       Tier   `json:"tier"`

	MentionsConcept  bool `json:"mentions_concept"`
	ShowsReasoning   bool `json:"shows_reasoning"`
	SufficientLength bool `json:"sufficient_length"`

	// Feedback has one line per flag, in flag order.
	Feedback []string `json:"feedback"`

	WordCount  int       `json:"word_count"`
	AssessedAt time.Time `json:"assessed_at"`
}

// Assessor scores free-text answers with lexical heuristics.
type Assessor struct {
	cfg Config
	now func() time.Time
}

// NewAssessor creates an Assessor.
func NewAssessor(cfg Config) *Assessor {
	return &Assessor{cfg: cfg, now: time.Now}
}

// Placeholder returns the configured answer placeholder.
func (a *Assessor) Placeholder() string {
	return a.cfg.Placeholder
}

// Assess scores answer against q. Each flag contributes its points
// independently; there is no partial credit within a flag.
func (a *Assessor) Assess(q questions.Question, answer string) (*Assessment, error) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" || (a.cfg.Placeholder != "" && trimmed == strings.TrimSpace(a.cfg.Placeholder)) {
		return nil, ErrEmptyAnswer
	}

	lower := strings.ToLower(trimmed)
	concept := strings.ToLower(strings.TrimSpace(q.Concept))
	words := len(strings.Fields(trimmed))

	res := &Assessment{
		QuestionID:       q.ID,
		Concept:          q.Concept,
		Answer:           answer,
		MentionsConcept:  concept != "" && strings.Contains(lower, concept),
		ShowsReasoning:   a.hasMarker(lower),
		SufficientLength: words >= a.cfg.MinWords,
		WordCount:        words,
		AssessedAt:       a.now(),
	}

	if res.MentionsConcept {
		res.Score += a.cfg.ConceptPoints
		res.Feedback = append(res.Feedback, "Mencionas el concepto clave.")
	} else {
		res.Feedback = append(res.Feedback, fmt.Sprintf("Intenta mencionar explícitamente '%s'.", q.Concept))
	}

	if res.ShowsReasoning {
		res.Score += a.cfg.ReasoningPoints
		res.Feedback = append(res.Feedback, "Explicas el porqué o das un ejemplo.")
	} else {
		res.Feedback = append(res.Feedback, "Agrega una explicación: usa 'porque', 'permite' o un ejemplo concreto.")
	}

	if res.SufficientLength {
		res.Score += a.cfg.LengthPoints
		res.Feedback = append(res.Feedback, "Tu respuesta tiene un desarrollo suficiente.")
	} else {
		res.Feedback = append(res.Feedback, fmt.Sprintf("Desarrolla más tu respuesta (al menos %d palabras).", a.cfg.MinWords))
	}

	res.Tier = TierFor(float64(res.Score))
	return res, nil
}

func (a *Assessor) hasMarker(lower string) bool {
	for _, m := range a.cfg.ReasoningMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
