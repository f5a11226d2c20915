package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquiz/internal/llm"
	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
)

// staticSource serves the fallback lists.
type staticSource struct {
	failAssessment bool
}

func (s staticSource) GenerateAssessment(context.Context, llm.Config) ([]questions.Question, error) {
	if s.failAssessment {
		return nil, &questions.ErrGeneration{Purpose: llm.PurposeAssessment, Err: context.Canceled}
	}
	return questions.AssessmentFallback(), nil
}

func (staticSource) GenerateTailored(_ context.Context, level questions.Level, _ []string, _ llm.Config) ([]questions.Question, error) {
	return questions.TailoredFallback(level), nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestModel(src quiz.Source) Model {
	ctrl := quiz.NewController(src, llm.Config{Provider: llm.ProviderMock},
		quiz.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	m := New(ctrl)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

// send delivers msg and runs any resulting fetch to completion.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, done := range collect(cmd) {
		next, _ = m.Update(done)
		m = next.(Model)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if done, ok := msg.(fetchDoneMsg); ok {
		return []tea.Msg{done}
	}
	return nil
}

func TestModel_FullRun(t *testing.T) {
	m := newTestModel(staticSource{})
	m = send(t, m, specialKey(tea.KeyEnter))
	if m.loading {
		t.Fatal("expected loading to end after fetch")
	}
	if got := m.ctrl.Snapshot().Phase; got != quiz.PhaseAssessment {
		t.Fatalf("expected assessment, got %s", got)
	}

	// Enter without an answer does nothing.
	m = send(t, m, specialKey(tea.KeyEnter))
	if m.ctrl.Snapshot().CurrentQuestion != 0 {
		t.Fatal("expected to stay on the first question")
	}

	for _, r := range "abaacbba" {
		m = send(t, m, keyPress(r))
		m = send(t, m, specialKey(tea.KeyEnter))
	}

	s := m.ctrl.Snapshot()
	if s.Phase != quiz.PhaseLevelResult || s.Level != questions.Advanced {
		t.Fatalf("expected advanced level result, got %s / %s", s.Phase, s.Level)
	}

	m = send(t, m, specialKey(tea.KeyEnter))
	if got := m.ctrl.Snapshot().Phase; got != quiz.PhaseTailoredQuiz {
		t.Fatalf("expected tailored quiz, got %s", got)
	}

	// E is not an answer outside the assessment.
	m = send(t, m, keyPress('e'))
	if m.ctrl.Snapshot().CurrentAnswer() != "" {
		t.Fatal("cannot-answer must not be offered in the tailored quiz")
	}

	m = send(t, m, keyPress('1'))
	m = send(t, m, specialKey(tea.KeyEnter))
	if got := m.ctrl.Snapshot().Phase; got != quiz.PhaseFinalResults {
		t.Fatalf("expected final results, got %s", got)
	}
	if m.ctrl.QuizScore() != 1 {
		t.Fatalf("expected quiz score 1, got %d", m.ctrl.QuizScore())
	}

	m = send(t, m, keyPress('n'))
	if got := m.ctrl.Snapshot().Phase; got != quiz.PhaseWelcome {
		t.Fatalf("expected welcome after restart, got %s", got)
	}
}

func TestModel_CannotAnswerInAssessment(t *testing.T) {
	m := newTestModel(staticSource{})
	m = send(t, m, specialKey(tea.KeyEnter))
	m = send(t, m, keyPress('e'))
	if got := m.ctrl.Snapshot().CurrentAnswer(); got != questions.CannotAnswer {
		t.Fatalf("expected cannot-answer, got %q", got)
	}
}

func TestModel_ErrorShowsRetry(t *testing.T) {
	m := newTestModel(staticSource{failAssessment: true})
	m = send(t, m, specialKey(tea.KeyEnter))

	if m.ctrl.Err() != quiz.MsgAssessmentFailed {
		t.Fatalf("expected failure message, got %q", m.ctrl.Err())
	}
	st := m.ctrl.Status()
	if !strings.Contains(m.body(st), quiz.MsgAssessmentFailed) {
		t.Fatal("expected error message in view")
	}
	if hints := m.keyHints(st); len(hints) == 0 || hints[0].Description != "Retry" {
		t.Fatalf("expected retry hint first, got %+v", hints)
	}

	m = send(t, m, keyPress('r'))
	if m.ctrl.Err() != quiz.MsgAssessmentFailed {
		t.Fatalf("expected retry to fail again, got %q", m.ctrl.Err())
	}
}

func TestModel_KeysIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(staticSource{})
	next, cmd := m.Update(specialKey(tea.KeyEnter))
	m = next.(Model)
	if !m.loading || cmd == nil {
		t.Fatal("expected a pending fetch")
	}

	next, cmd = m.Update(keyPress('s'))
	m = next.(Model)
	if cmd != nil || m.settings != nil {
		t.Fatal("expected keys to be ignored while loading")
	}
	if !strings.Contains(m.body(m.ctrl.Status()), "Preparing your assessment...") {
		t.Fatal("expected loading message")
	}
}

func TestModel_Settings(t *testing.T) {
	m := newTestModel(staticSource{})
	m = send(t, m, keyPress('s'))
	if m.settings == nil {
		t.Fatal("expected settings form")
	}

	// Provider field has focus; mock wraps round to cloud, then local.
	m = send(t, m, specialKey(tea.KeyRight))
	m = send(t, m, specialKey(tea.KeyRight))
	m = send(t, m, specialKey(tea.KeyEnter))
	if m.settings != nil {
		t.Fatal("expected settings form to close")
	}

	cfg := m.ctrl.Config()
	if cfg.Provider != llm.ProviderLocal {
		t.Fatalf("expected local provider, got %q", cfg.Provider)
	}
	if cfg.Model != llm.DefaultLocalModel {
		t.Fatalf("expected default local model, got %q", cfg.Model)
	}
}

func TestModel_SettingsKeepsUntoggledProvider(t *testing.T) {
	for _, provider := range []string{llm.ProviderAnthropic, llm.ProviderGemini, llm.ProviderMock} {
		m := newTestModel(staticSource{})
		m.ctrl.SetConfig(llm.Config{Provider: provider, APIKey: "key", Model: "custom-model"})

		m = send(t, m, keyPress('s'))
		m = send(t, m, specialKey(tea.KeyEnter))

		cfg := m.ctrl.Config()
		if cfg.Provider != provider {
			t.Fatalf("%s: expected provider kept, got %q", provider, cfg.Provider)
		}
		if cfg.Model != "custom-model" {
			t.Fatalf("%s: expected model kept, got %q", provider, cfg.Model)
		}
	}
}

func TestSettingsForm_CyclesAllProviders(t *testing.T) {
	f := newSettingsForm(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "key"})

	f.cycleProvider(1)
	if f.cfg.Provider != llm.ProviderGemini {
		t.Fatalf("expected gemini after anthropic, got %q", f.cfg.Provider)
	}
	if got := f.config().Model; got != llm.DefaultGeminiModel {
		t.Fatalf("expected default gemini model, got %q", got)
	}

	f.cycleProvider(-1)
	f.cycleProvider(-1)
	if f.cfg.Provider != llm.ProviderLocal {
		t.Fatalf("expected local two steps back, got %q", f.cfg.Provider)
	}
	if !f.visible(fieldLocalURL) || f.visible(fieldAPIKey) {
		t.Fatal("local shows the URL field and hides the key")
	}

	f.cycleProvider(-2)
	if f.cfg.Provider != llm.ProviderMock {
		t.Fatalf("expected wrap round to mock, got %q", f.cfg.Provider)
	}
	if f.visible(fieldAPIKey) || f.visible(fieldLocalURL) {
		t.Fatal("mock needs neither key nor URL")
	}
}

func TestModel_SettingsCancel(t *testing.T) {
	m := newTestModel(staticSource{})
	m = send(t, m, keyPress('s'))
	m = send(t, m, specialKey(tea.KeyRight))
	m = send(t, m, specialKey(tea.KeyEscape))

	if m.ctrl.Config().Provider != llm.ProviderMock {
		t.Fatalf("expected config unchanged, got %q", m.ctrl.Config().Provider)
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(staticSource{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
}
