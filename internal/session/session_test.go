package session

import (
	"errors"
	"testing"

	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/questions"
)

func testQuestions() []questions.Question {
	return []questions.Question{
		{ID: "q_01", Concept: "memoria", SourceChunkID: "chunk_001"},
		{ID: "q_02", Concept: "active recall", SourceChunkID: "chunk_001"},
		{ID: "q_03", Concept: "estudio", SourceChunkID: "chunk_002"},
	}
}

func newTestSession() *Session {
	return New(testQuestions(), assess.NewAssessor(assess.DefaultConfig()))
}

func TestSession_WalkThrough(t *testing.T) {
	s := newTestSession()

	q, ok := s.Current()
	if !ok || q.ID != "q_01" {
		t.Fatalf("Current() = %v, %v; want q_01", q, ok)
	}

	res, err := s.Submit("La memoria se fortalece porque recuperar información obliga al cerebro a trabajar")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("Score = %d, want 100", res.Score)
	}
	if s.Phase() != PhaseFeedback {
		t.Errorf("Phase = %v, want feedback", s.Phase())
	}

	next, err := s.Advance()
	if err != nil || next.ID != "q_02" {
		t.Fatalf("Advance() = %v, %v; want q_02", next, err)
	}
	if s.Phase() != PhaseAsking {
		t.Errorf("Phase = %v, want asking", s.Phase())
	}

	if _, err := s.Submit("no sé"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	// Skip the last question.
	if _, err := s.Advance(); !errors.Is(err, ErrSessionComplete) {
		t.Fatalf("Advance past end err = %v, want ErrSessionComplete", err)
	}
	if s.Phase() != PhaseComplete {
		t.Errorf("Phase = %v, want complete", s.Phase())
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() returned a question after completion")
	}
}

func TestSession_InertAfterCompletion(t *testing.T) {
	s := New(testQuestions()[:1], assess.NewAssessor(assess.DefaultConfig()))
	_, _ = s.Advance()

	if _, err := s.Submit("memoria"); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("Submit after completion err = %v, want ErrSessionComplete", err)
	}
	if _, err := s.Advance(); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("Advance after completion err = %v, want ErrSessionComplete", err)
	}

	before := s.Summary()
	after := s.Summary()
	if before != after {
		t.Errorf("summary changed after completion: %+v vs %+v", before, after)
	}
}

func TestSession_RejectedAnswerLeavesState(t *testing.T) {
	s := newTestSession()

	if _, err := s.Submit("   "); !errors.Is(err, assess.ErrEmptyAnswer) {
		t.Fatalf("Submit(blank) err = %v, want ErrEmptyAnswer", err)
	}
	if len(s.History()) != 0 {
		t.Errorf("history has %d entries after rejection", len(s.History()))
	}
	if s.Phase() != PhaseAsking {
		t.Errorf("Phase = %v, want asking", s.Phase())
	}
	if _, err := s.Submit("memoria"); err != nil {
		t.Errorf("resubmission failed: %v", err)
	}
}

func TestSession_SingleAnswerPerQuestion(t *testing.T) {
	s := newTestSession()
	if _, err := s.Submit("memoria"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := s.Submit("memoria otra vez"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Submit err = %v, want ErrAlreadyAnswered", err)
	}
	if !s.Answered() {
		t.Error("Answered() = false after submit")
	}
}

func TestSession_Empty(t *testing.T) {
	s := New(nil, assess.NewAssessor(assess.DefaultConfig()))
	if s.Phase() != PhaseComplete {
		t.Errorf("Phase = %v, want complete for empty session", s.Phase())
	}
	sum := s.Summary()
	if sum.Answered != 0 || sum.OverallTier != "" || sum.MeanScore != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
}

func TestSummary(t *testing.T) {
	s := newTestSession()

	// 100: concept, reasoning, length.
	_, _ = s.Submit("La memoria se fortalece porque recuperar información obliga al cerebro a trabajar")
	_, _ = s.Advance()
	// 40: concept only.
	_, _ = s.Submit("active recall")
	_, _ = s.Advance()
	// 30: reasoning only.
	_, _ = s.Submit("porque sí")

	sum := s.Summary()
	if sum.Answered != 3 || sum.Total != 3 {
		t.Errorf("Answered/Total = %d/%d, want 3/3", sum.Answered, sum.Total)
	}
	if want := 170.0 / 3; sum.MeanScore != want {
		t.Errorf("MeanScore = %v, want %v", sum.MeanScore, want)
	}
	if sum.ConceptsMentioned != 2 {
		t.Errorf("ConceptsMentioned = %d, want 2", sum.ConceptsMentioned)
	}
	if sum.ReasoningShown != 2 {
		t.Errorf("ReasoningShown = %d, want 2", sum.ReasoningShown)
	}
	if sum.OverallTier != assess.TierFair {
		t.Errorf("OverallTier = %q, want %q", sum.OverallTier, assess.TierFair)
	}
	if sum.SessionID == "" {
		t.Error("SessionID is empty")
	}
}

func TestPosition(t *testing.T) {
	s := newTestSession()
	if i, n := s.Position(); i != 1 || n != 3 {
		t.Errorf("Position() = %d/%d, want 1/3", i, n)
	}
	_, _ = s.Advance()
	_, _ = s.Advance()
	_, _ = s.Advance()
	if i, n := s.Position(); i != 3 || n != 3 {
		t.Errorf("Position() after completion = %d/%d, want 3/3", i, n)
	}
}
