package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquiz/internal/ui/theme"
)

// QuestionProgress is the "Question n of m" line with a filled bar
// underneath. Done counts the questions reached so far, including the
// current one.
type QuestionProgress struct {
	Done  int
	Total int
	Width int
}

// Fill returns how many of width cells are filled.
func (p QuestionProgress) Fill(width int) int {
	if p.Total <= 0 || width <= 0 {
		return 0
	}
	return min(max(p.Done*width/p.Total, 0), width)
}

// View renders the progress line and bar.
func (p QuestionProgress) View() string {
	label := fmt.Sprintf("Question %d of %d", p.Done, p.Total)
	pct := 0
	if p.Total > 0 {
		pct = (200*p.Done + p.Total) / (2 * p.Total)
	}
	right := fmt.Sprintf("%d%% complete", pct)

	gap := max(p.Width-lipgloss.Width(label)-lipgloss.Width(right), 1)
	head := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(label + strings.Repeat(" ", gap) + right)

	barWidth := max(p.Width, 4)
	filled := p.Fill(barWidth)
	bar := lipgloss.NewStyle().Background(theme.Primary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return head + "\n" + bar
}
