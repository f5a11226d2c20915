package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/ui/theme"
)

// MultiChoice renders a question with its four options, highlighting the
// recorded answer. It does not handle keys; the caller records answers
// through the quiz controller.
type MultiChoice struct {
	Question    questions.Question
	Answer      questions.Label
	AllowCannot bool
}

// View renders the question card.
func (m MultiChoice) View() string {
	var b strings.Builder

	var meta []string
	if m.Question.Difficulty != "" {
		meta = append(meta, theme.DifficultyColor(m.Question.Difficulty).Render(string(m.Question.Difficulty)))
	}
	if m.Question.Topic != "" {
		meta = append(meta, theme.Hint.Render(strings.ReplaceAll(m.Question.Topic, "_", " ")))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, "  "))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question.Text))
	b.WriteString("\n\n")

	for _, l := range questions.Labels {
		prefix := "  "
		style := theme.Unselected
		if m.Answer == l {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s)  %s", prefix, l, m.Question.Options[l])))
		b.WriteString("\n")
	}

	if m.AllowCannot {
		line := "  E)  I don't know how to solve this"
		style := theme.Hint
		if m.Answer == questions.CannotAnswer {
			line = "▸ E)  I don't know how to solve this"
			style = theme.Skipped
		}
		b.WriteString("\n" + style.Render(line) + "\n")
	}

	return b.String()
}
