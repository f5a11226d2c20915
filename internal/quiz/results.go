package quiz

import (
	"fmt"
	"time"

	"github.com/abhisek/mathquiz/internal/questions"
)

// Results summarizes a finished session.
type Results struct {
	Level             questions.Level `json:"level"`
	AssessmentScore   int             `json:"assessmentScore"`
	AssessmentTotal   int             `json:"assessmentTotal"`
	AssessmentPercent int             `json:"assessmentPercent"`
	QuizScore         int             `json:"quizScore"`
	QuizTotal         int             `json:"quizTotal"`
	QuizPercent       int             `json:"quizPercent"`
	OverallPercent    int             `json:"overallPercent"`
	Elapsed           time.Duration   `json:"elapsed"`
	Message           string          `json:"message"`
}

// BuildResults summarizes s as of now. Outside the final phase the quiz
// figures are zero.
func BuildResults(s State, now time.Time) Results {
	quizScore := s.QuizScore()
	quizTotal := 0
	if s.Phase == PhaseFinalResults {
		quizTotal = len(s.Questions)
	}
	overall := Percent(s.AssessmentScore+quizScore, s.AssessmentTotal+quizTotal)

	return Results{
		Level:             s.Level,
		AssessmentScore:   s.AssessmentScore,
		AssessmentTotal:   s.AssessmentTotal,
		AssessmentPercent: Percent(s.AssessmentScore, s.AssessmentTotal),
		QuizScore:         quizScore,
		QuizTotal:         quizTotal,
		QuizPercent:       Percent(quizScore, quizTotal),
		OverallPercent:    overall,
		Elapsed:           now.Sub(s.StartTime).Truncate(time.Second),
		Message:           PerformanceMessage(overall),
	}
}

// ElapsedClock formats the elapsed time as m:ss.
func (r Results) ElapsedClock() string {
	secs := int(r.Elapsed / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// PerformanceMessage returns the encouragement shown for an overall
// percentage.
func PerformanceMessage(percent int) string {
	switch {
	case percent >= 90:
		return "Outstanding! You're a math superstar! 🌟"
	case percent >= 80:
		return "Excellent work! Keep up the great progress! 🎉"
	case percent >= 70:
		return "Good job! You're on the right track! 👍"
	case percent >= 60:
		return "Nice effort! Room for improvement! 💪"
	default:
		return "Keep practicing! Every expert was once a beginner! 🚀"
	}
}

// LevelDetails describes a level on the level-result screen.
type LevelDetails struct {
	Title       string
	Description string
	Topics      []string
}

// LevelInfo returns the display details for level.
func LevelInfo(level questions.Level) LevelDetails {
	switch level {
	case questions.Advanced:
		return LevelDetails{
			Title:       "Advanced Level",
			Description: "Excellent! You'll tackle complex mathematical concepts.",
			Topics:      []string{"Calculus", "Trigonometry", "Advanced Algebra"},
		}
	case questions.Intermediate:
		return LevelDetails{
			Title:       "Intermediate Level",
			Description: "Well done! You're ready for more challenging problems.",
			Topics:      []string{"Algebra", "Geometry", "Statistics"},
		}
	default:
		return LevelDetails{
			Title:       "Beginner Level",
			Description: "Great start! You'll work on fundamental math concepts.",
			Topics:      []string{"Basic Arithmetic", "Simple Equations", "Fractions"},
		}
	}
}

// Heading returns the screen title for the phase of s.
func Heading(s State) string {
	switch s.Phase {
	case PhaseAssessment:
		return "Assessment Phase"
	case PhaseLevelResult:
		return "Level Assessment Complete"
	case PhaseTailoredQuiz:
		return s.Level.Title() + " Level Quiz"
	case PhaseFinalResults:
		return "Quiz Complete"
	default:
		return "Adaptive Math Quiz"
	}
}

// LoadingMessage returns the waiting text shown while questions for the
// next phase are generated.
func LoadingMessage(s State) string {
	if s.Phase == PhaseLevelResult {
		return "Generating your personalized quiz..."
	}
	return "Preparing your assessment..."
}
