package session

import (
	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/questions"
)

// Current returns the question under the cursor, or false once the
// session is complete.
func (s *Session) Current() (*questions.Question, bool) {
	if s.phase == PhaseComplete {
		return nil, false
	}
	q := s.questions[s.cursor]
	return &q, true
}

// Submit assesses text against the current question and appends the
// result to the history. A rejected answer (assess.ErrEmptyAnswer) leaves
// the session unchanged so the learner can resubmit.
func (s *Session) Submit(text string) (*assess.Assessment, error) {
	q, ok := s.Current()
	if !ok {
		return nil, ErrSessionComplete
	}
	if s.answered[q.ID] {
		return nil, ErrAlreadyAnswered
	}

	res, err := s.scorer.Assess(*q, text)
	if err != nil {
		return nil, err
	}

	s.history = append(s.history, *res)
	s.answered[q.ID] = true
	s.phase = PhaseFeedback
	return res, nil
}

// Advance moves to the next question, answered or not. Past the last
// question it completes the session and returns ErrSessionComplete.
func (s *Session) Advance() (*questions.Question, error) {
	if s.phase == PhaseComplete {
		return nil, ErrSessionComplete
	}

	s.cursor++
	if s.cursor >= len(s.questions) {
		s.cursor = len(s.questions)
		s.finish()
		return nil, ErrSessionComplete
	}

	s.phase = PhaseAsking
	q := s.questions[s.cursor]
	return &q, nil
}

// Answered reports whether the current question already has an assessment.
func (s *Session) Answered() bool {
	q, ok := s.Current()
	return ok && s.answered[q.ID]
}
