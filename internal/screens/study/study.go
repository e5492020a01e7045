package study

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/coach"
	"github.com/abhisek/recallkit/internal/metrics"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/router"
	"github.com/abhisek/recallkit/internal/screen"
	"github.com/abhisek/recallkit/internal/screens/summary"
	"github.com/abhisek/recallkit/internal/session"
	"github.com/abhisek/recallkit/internal/ui/components"
	"github.com/abhisek/recallkit/internal/ui/layout"
)

// Loader produces the question list for a session, typically by running
// the pipeline or reading a saved report.
type Loader func(ctx context.Context) ([]questions.Question, error)

// Deps are the collaborators of the study screen. Coach and Metrics may
// be nil.
type Deps struct {
	Load        Loader
	Scorer      session.Scorer
	Coach       *coach.Coach
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	Placeholder string
}

// StudyScreen runs one study session: load questions, ask them one at a
// time, show the assessment, then hand over to the summary.
type StudyScreen struct {
	deps  Deps
	sess  *session.Session
	input components.TextInput

	last     *assess.Assessment
	advice   *coach.Advice
	coaching bool
	coachErr string

	notice string
	errMsg string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New creates a StudyScreen.
func New(deps Deps) *StudyScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	placeholder := deps.Placeholder
	if placeholder == "" {
		placeholder = "Type your answer..."
	}
	return &StudyScreen{
		deps:  deps,
		input: components.NewTextInput(placeholder, 0, 72),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.input.Init())
}

func (s *StudyScreen) Title() string {
	if q := s.current(); q != nil {
		return q.Concept
	}
	return "Study"
}

// Status shows "question n of m" once questions are loaded.
func (s *StudyScreen) Status() string {
	if s.sess == nil || s.sess.Phase() == session.PhaseComplete {
		return ""
	}
	n, total := s.sess.Position()
	return fmt.Sprintf("%d/%d", n, total)
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	case s.sess == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	case s.sess.Phase() == session.PhaseFeedback:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if s.canCoach() {
			hints = append(hints, layout.KeyHint{Key: "c", Description: "Coach"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Esc", Description: "Finish"},
		}
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)

	case adviceMsg:
		return s.handleAdvice(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.asking() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) load() tea.Cmd {
	load := s.deps.Load
	return func() tea.Msg {
		if load == nil {
			return questionsLoadedMsg{Err: errors.New("no question source")}
		}
		qs, err := load(context.Background())
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *StudyScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.deps.Logger.Error("Failed to load questions", zap.Error(msg.Err))
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.sess = session.New(msg.Questions, s.deps.Scorer)
	s.deps.Logger.Info("Study session started",
		zap.String("session_id", s.sess.ID),
		zap.Int("questions", len(msg.Questions)))

	if s.sess.Phase() == session.PhaseComplete {
		return s, s.finish()
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}
	if s.sess == nil {
		if key == "esc" {
			return s, tea.Quit
		}
		return s, nil
	}

	switch s.sess.Phase() {
	case session.PhaseAsking:
		switch key {
		case "enter":
			return s.submit()
		case "ctrl+s":
			return s.advance()
		case "esc":
			return s, s.finish()
		}
		s.notice = ""
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case session.PhaseFeedback:
		switch key {
		case "enter":
			return s.advance()
		case "c":
			return s, s.requestAdvice()
		case "esc":
			return s, s.finish()
		}
	}
	return s, nil
}

func (s *StudyScreen) submit() (screen.Screen, tea.Cmd) {
	res, err := s.sess.Submit(s.input.Value())
	if errors.Is(err, assess.ErrEmptyAnswer) {
		s.notice = "Escribe una respuesta antes de enviar."
		return s, nil
	}
	if err != nil {
		s.deps.Logger.Warn("Submit failed", zap.Error(err))
		s.notice = err.Error()
		return s, nil
	}

	s.deps.Metrics.ObserveScore(res.Score)
	s.deps.Logger.Debug("Answer assessed",
		zap.String("question_id", res.QuestionID),
		zap.Int("score", res.Score),
		zap.String("tier", string(res.Tier)))

	s.last = res
	s.notice = ""
	s.input.Lock(res.Tier != assess.TierNeedsImprovement)
	return s, nil
}

func (s *StudyScreen) advance() (screen.Screen, tea.Cmd) {
	_, err := s.sess.Advance()
	s.last = nil
	s.advice = nil
	s.coaching = false
	s.coachErr = ""
	s.notice = ""

	if errors.Is(err, session.ErrSessionComplete) {
		return s, s.finish()
	}
	return s, s.input.Reset()
}

func (s *StudyScreen) finish() tea.Cmd {
	sum := s.sess.Summary()
	s.deps.Logger.Info("Study session finished",
		zap.String("session_id", sum.SessionID),
		zap.Int("answered", sum.Answered),
		zap.Int("total", sum.Total),
		zap.Float64("mean_score", sum.MeanScore))

	next := summary.New(sum)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *StudyScreen) canCoach() bool {
	return s.deps.Coach.Enabled() && s.last != nil && s.advice == nil && !s.coaching
}

func (s *StudyScreen) requestAdvice() tea.Cmd {
	if !s.canCoach() {
		return nil
	}
	q := s.current()
	if q == nil {
		return nil
	}

	s.coaching = true
	s.coachErr = ""

	c := s.deps.Coach
	in := coach.Input{Question: *q, Answer: s.last.Answer, Assessment: s.last}
	return func() tea.Msg {
		adv, err := c.Advise(context.Background(), in)
		return adviceMsg{QuestionID: in.Question.ID, Advice: adv, Err: err}
	}
}

func (s *StudyScreen) handleAdvice(msg adviceMsg) (screen.Screen, tea.Cmd) {
	q := s.current()
	if q == nil || q.ID != msg.QuestionID {
		return s, nil
	}

	s.coaching = false
	if msg.Err != nil {
		s.deps.Logger.Warn("Coach request failed", zap.Error(msg.Err))
		s.coachErr = msg.Err.Error()
		return s, nil
	}
	s.advice = msg.Advice
	return s, nil
}

func (s *StudyScreen) current() *questions.Question {
	if s.sess == nil {
		return nil
	}
	q, ok := s.sess.Current()
	if !ok {
		return nil
	}
	return q
}

func (s *StudyScreen) asking() bool {
	return s.sess != nil && s.sess.Phase() == session.PhaseAsking
}
