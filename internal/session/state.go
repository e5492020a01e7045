package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/questions"
)

var (
	// ErrSessionComplete is returned once the cursor has passed the last
	// question. The session stays inert until a new one is started.
	ErrSessionComplete = errors.New("session complete")

	// ErrAlreadyAnswered is returned when submitting twice for the same
	// question.
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Phase is the current stage of the session.
type Phase int

const (
	PhaseAsking   Phase = iota // Waiting for an answer to the current question
	PhaseFeedback              // Current question answered, showing its assessment
	PhaseComplete              // Cursor past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseFeedback:
		return "feedback"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Scorer assesses one answer. *assess.Assessor satisfies it.
type Scorer interface {
	Assess(q questions.Question, answer string) (*assess.Assessment, error)
}

// Session walks a learner through a fixed question list. It is owned by a
// single interaction loop and is not safe for concurrent use.
type Session struct {
	// ID identifies this session in logs and summaries.
	ID string

	questions []questions.Question
	cursor    int
	history   []assess.Assessment
	answered  map[string]bool
	phase     Phase

	scorer    Scorer
	startTime time.Time
	endTime   time.Time
	now       func() time.Time
}

// New starts a session over qs. An empty question list starts complete.
func New(qs []questions.Question, scorer Scorer) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		questions: append([]questions.Question(nil), qs...),
		answered:  make(map[string]bool),
		scorer:    scorer,
		now:       time.Now,
	}
	s.startTime = s.now()
	if len(s.questions) == 0 {
		s.finish()
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Position returns the 1-based index of the current question and the total.
func (s *Session) Position() (int, int) {
	return min(s.cursor+1, len(s.questions)), len(s.questions)
}

// History returns a copy of the assessments so far, in submission order.
func (s *Session) History() []assess.Assessment {
	return append([]assess.Assessment(nil), s.history...)
}

// Questions returns the session's question list.
func (s *Session) Questions() []questions.Question {
	return append([]questions.Question(nil), s.questions...)
}

func (s *Session) finish() {
	s.phase = PhaseComplete
	s.endTime = s.now()
}
