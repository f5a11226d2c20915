package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquiz/internal/quiz"
	"github.com/abhisek/mathquiz/internal/ui/components"
	"github.com/abhisek/mathquiz/internal/ui/layout"
	"github.com/abhisek/mathquiz/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	st := m.ctrl.Status()
	header := layout.RenderHeader(quiz.Heading(st.State), m.headerStatus(st.State), m.width)
	footer := layout.RenderFooter(m.keyHints(st), m.width)
	height := layout.ContentHeight(header, footer, m.height)

	content := lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.body(st))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m Model) headerStatus(s quiz.State) string {
	if s.InQuestions() {
		return fmt.Sprintf("%d/%d  ", s.CurrentQuestion+1, len(s.Questions))
	}
	return m.ctrl.Config().Label() + "  "
}

func (m Model) body(st quiz.Status) string {
	if m.settings != nil {
		return theme.Card.Width(min(m.width-4, 72)).Render(m.settings.view())
	}
	if m.loading {
		return m.spinner.View() + " " + theme.Body.Render(quiz.LoadingMessage(st.State))
	}

	var content string
	switch st.State.Phase {
	case quiz.PhaseWelcome:
		content = m.welcomeView()
	case quiz.PhaseAssessment, quiz.PhaseTailoredQuiz:
		content = m.questionView(st.State)
	case quiz.PhaseLevelResult:
		content = levelResultView(st.State)
	case quiz.PhaseFinalResults:
		content = resultsView(m.ctrl.Results())
	}

	if st.Error != "" {
		content += "\n\n" + theme.ErrorText.Render(st.Error) + "\n" + theme.Hint.Render("Press R to try again.")
	}
	return content
}

func (m Model) welcomeView() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Adaptive Math Quiz"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Take a short assessment to find your level,\nthen get a quiz tailored to you."))
	b.WriteString("\n\n")

	cfg := m.ctrl.Config().Normalized()
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Provider: %s  Model: %s", cfg.Label(), cfg.Model)))
	if m.notice != "" {
		b.WriteString("\n" + theme.Hint.Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.ButtonActive.Render("▸ Start Assessment"))
	return b.String()
}

func (m Model) questionView(s quiz.State) string {
	q, ok := s.Question()
	if !ok {
		return ""
	}
	width := min(m.width-4, 80)

	bar := components.QuestionProgress{Done: s.CurrentQuestion + 1, Total: len(s.Questions), Width: width - 4}
	card := components.MultiChoice{
		Question:    q,
		Answer:      s.CurrentAnswer(),
		AllowCannot: s.Phase == quiz.PhaseAssessment,
	}
	return bar.View() + "\n\n" + theme.Card.Width(width).Render(card.View())
}

func levelResultView(s quiz.State) string {
	info := quiz.LevelInfo(s.Level)

	var b strings.Builder
	b.WriteString(theme.LevelColor(s.Level).Render(info.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You scored %d out of %d (%d%%)",
		s.AssessmentScore, s.AssessmentTotal, quiz.Percent(s.AssessmentScore, s.AssessmentTotal))))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(info.Description))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Your quiz will focus on:"))
	b.WriteString("\n")
	for _, t := range info.Topics {
		b.WriteString("  • " + t + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.ButtonActive.Render("▸ Start " + s.Level.Title() + " Quiz"))
	return b.String()
}

func resultsView(r quiz.Results) string {
	row := func(label string, score, total, pct int) string {
		return fmt.Sprintf("%-12s %2d/%-2d  %3d%%", label, score, total, pct)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(r.Message))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("You completed the " + string(r.Level) + " level quiz"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(row("Assessment", r.AssessmentScore, r.AssessmentTotal, r.AssessmentPercent)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(row("Quiz", r.QuizScore, r.QuizTotal, r.QuizPercent)))
	b.WriteString("\n")
	b.WriteString(theme.LevelColor(r.Level).Render(fmt.Sprintf("%-12s %8d%%", "Overall", r.OverallPercent)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Time: " + r.ElapsedClock()))
	b.WriteString("\n\n")
	b.WriteString(theme.ButtonActive.Render("▸ Take New Quiz"))
	return b.String()
}

func (m Model) keyHints(st quiz.Status) []layout.KeyHint {
	if m.settings != nil {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "←→", Description: "Provider"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if m.loading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	var hints []layout.KeyHint
	if st.Error != "" {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}

	switch st.State.Phase {
	case quiz.PhaseWelcome:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Start"},
			layout.KeyHint{Key: "S", Description: "Settings"},
			layout.KeyHint{Key: "Q", Description: "Quit"},
		)
	case quiz.PhaseAssessment, quiz.PhaseTailoredQuiz:
		hints = append(hints, layout.KeyHint{Key: "A-D", Description: "Answer"})
		if st.State.Phase == quiz.PhaseAssessment {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Can't answer"})
		}
		if st.State.CurrentAnswer() != "" {
			next := "Next"
			if st.State.IsLast() {
				next = "Finish"
			}
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: next})
		}
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Start over"})
	case quiz.PhaseLevelResult:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Start quiz"},
			layout.KeyHint{Key: "Esc", Description: "Start over"},
		)
	case quiz.PhaseFinalResults:
		hints = append(hints,
			layout.KeyHint{Key: "N", Description: "New quiz"},
			layout.KeyHint{Key: "Q", Description: "Quit"},
		)
	}
	return hints
}
