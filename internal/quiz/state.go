// Package quiz implements the assessment and tailored-quiz state machine.
//
// State is a value type: every transition returns a new State and leaves
// the receiver untouched. Controller owns the live State and sequences the
// asynchronous question fetches around it.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathquiz/internal/questions"
)

// Phase is a stage of the quiz lifecycle. Phases only move forward, in
// declaration order, except for Restart which returns to PhaseWelcome.
type Phase string

const (
	PhaseWelcome      Phase = "welcome"
	PhaseAssessment   Phase = "assessment"
	PhaseLevelResult  Phase = "level-result"
	PhaseTailoredQuiz Phase = "tailored-quiz"
	PhaseFinalResults Phase = "final-results"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidAnswer     = errors.New("invalid answer")
	ErrNoAnswer          = errors.New("current question has no answer")
	ErrNoQuestions       = errors.New("no questions")
)

// State is one snapshot of a quiz session.
type State struct {
	Phase           Phase                `json:"phase"`
	CurrentQuestion int                  `json:"currentQuestion"`
	Questions       []questions.Question `json:"questions"`

	// Answers parallels Questions. An empty label means unanswered.
	Answers []questions.Label `json:"answers"`

	// AssessmentScore, AssessmentTotal and Level are written once, when
	// the assessment ends.
	AssessmentScore int             `json:"assessmentScore"`
	AssessmentTotal int             `json:"assessmentTotal"`
	Level           questions.Level `json:"level"`

	StartTime time.Time `json:"startTime"`
	SessionID string    `json:"sessionId"`
}

// NewState returns a fresh session in the welcome phase.
func NewState(now time.Time) State {
	return State{
		Phase:     PhaseWelcome,
		Level:     questions.Beginner,
		StartTime: now,
		SessionID: uuid.NewString(),
	}
}

func (s State) transitionErr(action string) error {
	return fmt.Errorf("%w: %s during %s", ErrInvalidTransition, action, s.Phase)
}

// InQuestions reports whether the session is showing questions.
func (s State) InQuestions() bool {
	return s.Phase == PhaseAssessment || s.Phase == PhaseTailoredQuiz
}

// Start begins the assessment with qs. The answers, index and timer are
// reset.
func (s State) Start(qs []questions.Question, now time.Time) (State, error) {
	if s.Phase != PhaseWelcome {
		return s, s.transitionErr("start assessment")
	}
	if len(qs) == 0 {
		return s, ErrNoQuestions
	}
	next := NewState(now)
	next.SessionID = s.SessionID
	next.Phase = PhaseAssessment
	next.Questions = qs
	next.Answers = make([]questions.Label, len(qs))
	return next, nil
}

// Answer records label for the current question, replacing any earlier
// answer.
func (s State) Answer(label questions.Label) (State, error) {
	if !s.InQuestions() {
		return s, s.transitionErr("answer")
	}
	if !label.IsOption() && label != questions.CannotAnswer {
		return s, fmt.Errorf("%w: %q", ErrInvalidAnswer, label)
	}
	answers := make([]questions.Label, len(s.Answers))
	copy(answers, s.Answers)
	answers[s.CurrentQuestion] = label
	s.Answers = answers
	return s, nil
}

// Advance moves to the next question. Past the last assessment question it
// scores the assessment and moves to the level result; past the last quiz
// question it moves to the final results.
func (s State) Advance() (State, error) {
	if !s.InQuestions() {
		return s, s.transitionErr("advance")
	}
	if s.CurrentAnswer() == "" {
		return s, ErrNoAnswer
	}
	if !s.IsLast() {
		s.CurrentQuestion++
		return s, nil
	}

	if s.Phase == PhaseAssessment {
		s.AssessmentScore = Score(s.Questions, s.Answers)
		s.AssessmentTotal = len(s.Questions)
		s.Level = ClassifyLevel(s.AssessmentScore, s.AssessmentTotal)
		s.Phase = PhaseLevelResult
		return s, nil
	}

	s.Phase = PhaseFinalResults
	return s, nil
}

// BeginTailored starts the tailored quiz with qs.
func (s State) BeginTailored(qs []questions.Question) (State, error) {
	if s.Phase != PhaseLevelResult {
		return s, s.transitionErr("start tailored quiz")
	}
	if len(qs) == 0 {
		return s, ErrNoQuestions
	}
	s.Phase = PhaseTailoredQuiz
	s.Questions = qs
	s.Answers = make([]questions.Label, len(qs))
	s.CurrentQuestion = 0
	return s, nil
}

// Restart discards the session. It is valid from every phase.
func (s State) Restart(now time.Time) State {
	return NewState(now)
}

// Question returns the current question. ok is false outside the
// question phases.
func (s State) Question() (q questions.Question, ok bool) {
	if !s.InQuestions() || s.CurrentQuestion >= len(s.Questions) {
		return questions.Question{}, false
	}
	return s.Questions[s.CurrentQuestion], true
}

// CurrentAnswer returns the label recorded for the current question.
func (s State) CurrentAnswer() questions.Label {
	if s.CurrentQuestion < 0 || s.CurrentQuestion >= len(s.Answers) {
		return ""
	}
	return s.Answers[s.CurrentQuestion]
}

// IsLast reports whether the current question is the last one.
func (s State) IsLast() bool {
	return s.CurrentQuestion == len(s.Questions)-1
}

// QuizScore is the tailored-quiz score. It is only meaningful once the
// quiz is complete and is 0 in every other phase.
func (s State) QuizScore() int {
	if s.Phase != PhaseFinalResults {
		return 0
	}
	return Score(s.Questions, s.Answers)
}
