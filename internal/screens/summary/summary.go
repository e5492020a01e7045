package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recallkit/internal/screen"
	"github.com/abhisek/recallkit/internal/session"
	"github.com/abhisek/recallkit/internal/ui/layout"
	"github.com/abhisek/recallkit/internal/ui/theme"
)

// SummaryScreen displays the statistics of a finished study session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Elapsed.Minutes())
	secs := int(sum.Elapsed.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	if sum.Answered == 0 {
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("No answers submitted (%d questions).", sum.Total)))
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 48)))

	rows := []struct {
		label string
		value string
	}{
		{"Answered", fmt.Sprintf("%d / %d", sum.Answered, sum.Total)},
		{"Mean score", fmt.Sprintf("%.1f", sum.MeanScore)},
		{"Concept mentioned", fmt.Sprintf("%d / %d", sum.ConceptsMentioned, sum.Answered)},
		{"Reasoning shown", fmt.Sprintf("%d / %d", sum.ReasoningShown, sum.Answered)},
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for _, r := range rows {
		line := fmt.Sprintf("%-20s%12s", r.label, r.value)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(center.
		Foreground(theme.TierColor(string(sum.OverallTier))).
		Bold(true).
		Render(fmt.Sprintf("Overall: %s", sum.OverallTier)))

	return b.String()
}
