// Package tui is the terminal front end. It renders whatever phase the
// quiz controller is in and forwards key presses to it.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
	"github.com/abhisek/mathquiz/internal/ui/theme"
)

// Model is the root Bubble Tea model.
type Model struct {
	ctrl     *quiz.Controller
	spinner  spinner.Model
	settings *settingsForm
	loading  bool
	notice   string
	width    int
	height   int
}

// New creates a Model driving ctrl.
func New(ctrl *quiz.Controller) Model {
	return Model{
		ctrl: ctrl,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, quiz.ErrStale) {
			slog.Debug("fetch failed", "error", msg.err)
		}
		m.loading = m.ctrl.Busy()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.settings != nil {
			return m.updateSettings(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, done, saved := m.settings.update(msg)
	if !done {
		return m, cmd
	}
	if saved {
		cfg := m.settings.config()
		m.ctrl.SetConfig(cfg)
		m.notice = "Settings saved: " + cfg.Label() + " / " + cfg.Normalized().Model
	}
	m.settings = nil
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := strings.ToLower(msg.String())

	if m.loading {
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if key == "r" && m.ctrl.Err() != "" {
		return m.fetch(m.ctrl.Retry)
	}

	s := m.ctrl.Snapshot()
	switch s.Phase {
	case quiz.PhaseWelcome:
		switch key {
		case "enter", "space", " ":
			m.notice = ""
			return m.fetch(m.ctrl.StartAssessment)
		case "s":
			m.settings = newSettingsForm(m.ctrl.Config())
			return m, nil
		case "q":
			return m, tea.Quit
		}

	case quiz.PhaseAssessment, quiz.PhaseTailoredQuiz:
		if label, ok := answerKey(key, s.Phase); ok {
			if err := m.ctrl.SubmitAnswer(label); err != nil {
				slog.Debug("answer rejected", "error", err)
			}
			return m, nil
		}
		if key == "enter" {
			// Advance is refused until the question is answered.
			_ = m.ctrl.Next()
			return m, nil
		}
		if key == "esc" {
			m.ctrl.Restart()
			return m, nil
		}

	case quiz.PhaseLevelResult:
		switch key {
		case "enter", "space", " ":
			return m.fetch(m.ctrl.StartTailoredQuiz)
		case "esc":
			m.ctrl.Restart()
		}

	case quiz.PhaseFinalResults:
		switch key {
		case "n", "enter":
			m.ctrl.Restart()
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// answerKey maps a key to an answer label. E is only offered during the
// assessment.
func answerKey(key string, phase quiz.Phase) (questions.Label, bool) {
	switch key {
	case "a", "1":
		return questions.LabelA, true
	case "b", "2":
		return questions.LabelB, true
	case "c", "3":
		return questions.LabelC, true
	case "d", "4":
		return questions.LabelD, true
	case "e", "5":
		if phase == quiz.PhaseAssessment {
			return questions.CannotAnswer, true
		}
	}
	return "", false
}

// fetch runs a controller fetch in the background and shows the spinner
// until it completes.
func (m Model) fetch(run func(context.Context) error) (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return fetchDoneMsg{err: run(context.Background())}
		},
	)
}

// Run starts the terminal UI.
func Run(ctrl *quiz.Controller) error {
	_, err := tea.NewProgram(New(ctrl)).Run()
	return err
}
