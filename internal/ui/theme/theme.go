package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquiz/internal/questions"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
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

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

var Card = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// Option states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Skipped = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

var ButtonActive = lipgloss.NewStyle().
	Background(Primary).
	Foreground(Text).
	Bold(true).
	Padding(0, 2)

// DifficultyColor returns the badge color for a difficulty tag.
func DifficultyColor(d questions.Difficulty) lipgloss.Style {
	switch d {
	case questions.Easy:
		return lipgloss.NewStyle().Foreground(Success)
	case questions.Medium:
		return lipgloss.NewStyle().Foreground(Accent)
	case questions.Hard:
		return lipgloss.NewStyle().Foreground(Error)
	default:
		return lipgloss.NewStyle().Foreground(Secondary)
	}
}

// LevelColor returns the highlight color for a level.
func LevelColor(level questions.Level) lipgloss.Style {
	switch level {
	case questions.Advanced:
		return lipgloss.NewStyle().Foreground(Primary).Bold(true)
	case questions.Intermediate:
		return lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	}
}
