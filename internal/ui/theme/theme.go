package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, calm and readable on dark terminals
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Quote = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Border).
		PaddingLeft(1)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// TierColor maps an answer tier name to its display color.
func TierColor(tier string) color.Color {
	switch tier {
	case "excellent":
		return Success
	case "good":
		return Secondary
	case "fair":
		return Warning
	case "needs improvement":
		return Error
	default:
		return TextDim
	}
}

// DifficultyColor maps a question difficulty to its display color.
func DifficultyColor(difficulty string) color.Color {
	switch difficulty {
	case "basic":
		return Success
	case "intermediate":
		return Accent
	case "advanced":
		return Error
	default:
		return TextDim
	}
}
