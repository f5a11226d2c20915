// Package views holds the templ components of the browser UI.
package views

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
)

// Option is one answer button on the question screen.
type Option struct {
	Label    string
	Text     string
	Selected bool
}

// Caption is the button text, e.g. "A. 13".
func (o Option) Caption() string {
	return o.Label + ". " + o.Text
}

// ProviderChoice is one entry of the provider select.
type ProviderChoice struct {
	Value    string
	Label    string
	Selected bool
}

// Settings is the provider form on the welcome screen. The stored API key
// is never part of it.
type Settings struct {
	Providers []ProviderChoice
	Model     string
	LocalURL  string
	HasKey    bool
	Models    []string
}

func (s Settings) KeyPlaceholder() string {
	if s.HasKey {
		return "stored, leave blank to keep"
	}
	return "sk-or-..."
}

// Page is everything the index page renders.
type Page struct {
	Phase    quiz.Phase
	Heading  string
	Busy     bool
	Loading  string
	Error    string
	Settings Settings

	Question    questions.Question
	Options     []Option
	Number      int
	Total       int
	AllowCannot bool
	CannotSet   bool
	Answered    bool
	IsLast      bool

	LevelInfo       quiz.LevelDetails
	AssessmentScore int
	AssessmentTotal int
	AssessmentPct   int

	Results quiz.Results
}

// InQuestions reports whether a question is on screen.
func (p Page) InQuestions() bool {
	return (p.Phase == quiz.PhaseAssessment || p.Phase == quiz.PhaseTailoredQuiz) && p.Total > 0
}

// QuestionMeta is the position line above a question.
func (p Page) QuestionMeta() string {
	parts := []string{fmt.Sprintf("Question %d of %d", p.Number, p.Total)}
	if p.Question.Topic != "" {
		parts = append(parts, strings.ReplaceAll(p.Question.Topic, "_", " "))
	}
	if p.Question.Difficulty != "" {
		parts = append(parts, string(p.Question.Difficulty))
	}
	return strings.Join(parts, " · ")
}

func (p Page) NextLabel() string {
	switch {
	case !p.IsLast:
		return "Next Question"
	case p.Phase == quiz.PhaseAssessment:
		return "Complete Assessment"
	default:
		return "Finish Quiz"
	}
}

func (p Page) RestartLabel() string {
	if p.Phase == quiz.PhaseFinalResults {
		return "Take Another Quiz"
	}
	return "Start Over"
}

func (p Page) ScoreLine() string {
	return fmt.Sprintf("You scored %d out of %d (%d%%).", p.AssessmentScore, p.AssessmentTotal, p.AssessmentPct)
}

func (p Page) StartQuizLabel() string {
	return "Start " + p.LevelInfo.Title + " Quiz"
}

// ResultLines are the rows of the final summary.
func (p Page) ResultLines() []string {
	r := p.Results
	return []string{
		fmt.Sprintf("Assessment: %d/%d (%d%%)", r.AssessmentScore, r.AssessmentTotal, r.AssessmentPercent),
		fmt.Sprintf("Quiz: %d/%d (%d%%)", r.QuizScore, r.QuizTotal, r.QuizPercent),
		fmt.Sprintf("Overall: %d%%", r.OverallPercent),
		"Level: " + p.LevelInfo.Title,
		"Time: " + r.ElapsedClock(),
	}
}
