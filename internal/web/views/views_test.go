package views

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
)

func render(t *testing.T, p Page) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, IndexPage(p).Render(context.Background(), &sb))
	return sb.String()
}

func questionPage() Page {
	return Page{
		Phase:   quiz.PhaseAssessment,
		Heading: "Assessment Phase",
		Question: questions.Question{
			Text:       "Is 2 < 3 & 3 > 2?",
			Topic:      "number_sense",
			Difficulty: questions.Easy,
		},
		Options: []Option{
			{Label: "A", Text: "yes"},
			{Label: "B", Text: "no"},
		},
		Number:      1,
		Total:       8,
		AllowCannot: true,
	}
}

func TestIndexPage_Question(t *testing.T) {
	page := render(t, questionPage())

	assert.Contains(t, page, "<title>Assessment Phase</title>")
	assert.Contains(t, page, "Question 1 of 8 · number sense · easy")
	assert.Contains(t, page, "Is 2 &lt; 3 &amp; 3 &gt; 2?")
	assert.Contains(t, page, `value="A" aria-pressed="false">A. yes</button>`)
	assert.Contains(t, page, `value="CANNOT_ANSWER"`)
	assert.Contains(t, page, `type="submit" disabled>Next Question</button>`)
	assert.Contains(t, page, "Start Over")
	assert.NotContains(t, page, `http-equiv="refresh"`)
}

func TestIndexPage_AnsweredLastQuestion(t *testing.T) {
	p := questionPage()
	p.Options[1].Selected = true
	p.Answered = true
	p.IsLast = true

	page := render(t, p)
	assert.Contains(t, page, `value="B" aria-pressed="true">`)
	assert.Contains(t, page, `type="submit">Complete Assessment</button>`)

	p.Phase = quiz.PhaseTailoredQuiz
	p.AllowCannot = false
	page = render(t, p)
	assert.Contains(t, page, "Finish Quiz")
	assert.NotContains(t, page, "CANNOT_ANSWER")
}

func TestIndexPage_BusyRefreshes(t *testing.T) {
	page := render(t, Page{
		Phase:   quiz.PhaseWelcome,
		Heading: "Adaptive Math Quiz",
		Busy:    true,
		Loading: "Preparing your assessment...",
	})

	assert.Contains(t, page, `<meta http-equiv="refresh" content="1">`)
	assert.Contains(t, page, "Preparing your assessment...")
	assert.NotContains(t, page, "Start Assessment")
}

func TestIndexPage_WelcomeSettings(t *testing.T) {
	page := render(t, Page{
		Phase:   quiz.PhaseWelcome,
		Heading: "Adaptive Math Quiz",
		Settings: Settings{
			Providers: []ProviderChoice{
				{Value: "cloud", Label: "OpenRouter"},
				{Value: "local", Label: "Ollama", Selected: true},
			},
			LocalURL: "http://localhost:11434",
			Model:    `llama"3`,
			Models:   []string{"llama3.2", "phi3"},
		},
	})

	assert.Contains(t, page, `<option value="local" selected>Ollama</option>`)
	assert.Contains(t, page, `<option value="cloud">OpenRouter</option>`)
	assert.Contains(t, page, `value="llama&#34;3"`)
	assert.Contains(t, page, `<option value="phi3"></option>`)
	assert.Contains(t, page, `placeholder="sk-or-..."`)
	assert.NotContains(t, page, "Start Over")
}

func TestIndexPage_Results(t *testing.T) {
	page := render(t, Page{
		Phase:     quiz.PhaseFinalResults,
		Heading:   "Quiz Complete",
		LevelInfo: quiz.LevelDetails{Title: "Intermediate Level"},
		Results: quiz.Results{
			AssessmentScore:   5,
			AssessmentTotal:   8,
			AssessmentPercent: 63,
			QuizScore:         6,
			QuizTotal:         8,
			QuizPercent:       75,
			OverallPercent:    69,
			Message:           "Good work",
		},
	})

	assert.Contains(t, page, "<li>Assessment: 5/8 (63%)</li>")
	assert.Contains(t, page, "<li>Overall: 69%</li>")
	assert.Contains(t, page, "<li>Level: Intermediate Level</li>")
	assert.Contains(t, page, "Take Another Quiz")
}

func TestIndexPage_ErrorOffersRetry(t *testing.T) {
	page := render(t, Page{
		Phase:   quiz.PhaseWelcome,
		Heading: "Adaptive Math Quiz",
		Error:   quiz.MsgAssessmentFailed,
	})

	assert.Contains(t, page, quiz.MsgAssessmentFailed)
	assert.Contains(t, page, `action="/retry"`)
}

func TestIndexPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	err := IndexPage(Page{Phase: quiz.PhaseWelcome}).Render(ctx, &sb)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sb.String())
}
