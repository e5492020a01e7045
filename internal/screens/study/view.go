package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/session"
	"github.com/abhisek/recallkit/internal/ui/components"
	"github.com/abhisek/recallkit/internal/ui/layout"
	"github.com/abhisek/recallkit/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.sess == nil {
		return renderLoading(width)
	}
	q := s.current()
	if q == nil {
		return ""
	}
	return s.renderQuestion(*q, width, height)
}

func (s *StudyScreen) renderQuestion(q questions.Question, width, height int) string {
	margin := 8
	if layout.IsCompactWidth(width) {
		margin = 4
	}
	contentWidth := min(width-margin, 76)
	pad := lipgloss.NewStyle().PaddingLeft(max((width-contentWidth)/2, 0))

	var b strings.Builder
	b.WriteString("\n")

	// Concept and difficulty.
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(q.Concept))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.DifficultyColor(string(q.Difficulty))).
		Render(fmt.Sprintf("[%s · ~%d min]", q.Difficulty, q.EstimatedMinutes)))
	b.WriteString("\n")

	n, total := s.sess.Position()
	done := n - 1
	if s.sess.Phase() == session.PhaseFeedback {
		done = n
	}
	b.WriteString(components.NewProgressBar("", done, total, contentWidth).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Width(contentWidth).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	if q.ContextSnippet != "" && !layout.IsCompactHeight(height) {
		b.WriteString(theme.Quote.Width(contentWidth - 2).Render(q.ContextSnippet))
		b.WriteString("\n\n")
	}

	b.WriteString(s.input.View())
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice))
		b.WriteString("\n")
	}

	if s.last != nil {
		b.WriteString("\n")
		b.WriteString(s.renderAssessment(contentWidth))
	}

	return pad.Render(b.String())
}

func (s *StudyScreen) renderAssessment(width int) string {
	a := s.last
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TierColor(string(a.Tier))).
		Bold(true).
		Render(fmt.Sprintf("%d/100  %s", a.Score, a.Tier)))
	b.WriteString("\n")

	for _, line := range a.Feedback {
		b.WriteString(theme.Body.Width(width).Render("• " + line))
		b.WriteString("\n")
	}

	switch {
	case s.coaching:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Consultando al coach..."))
		b.WriteString("\n")
	case s.coachErr != "":
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(width).
			Render("Coach: " + s.coachErr))
		b.WriteString("\n")
	case s.advice != nil:
		b.WriteString("\n")
		b.WriteString(renderAdvice(s.advice.Feedback, s.advice.FollowUp, s.advice.MissingPoints, width))
	}

	return b.String()
}

func renderAdvice(feedback, followUp string, missing []string, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Coach"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width).Render(feedback))
	b.WriteString("\n")
	for _, p := range missing {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Render("  - " + p))
		b.WriteString("\n")
	}
	if followUp != "" {
		b.WriteString(theme.Hint.Width(width).Render("» " + followUp))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Processing document...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to quit.", errMsg))
}
