package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquiz/internal/questions"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func answerAll(t *testing.T, s State, labels ...questions.Label) State {
	t.Helper()
	require.Len(t, labels, len(s.Questions))
	var err error
	for _, l := range labels {
		s, err = s.Answer(l)
		require.NoError(t, err)
		s, err = s.Advance()
		require.NoError(t, err)
	}
	return s
}

func assessment(t *testing.T) State {
	t.Helper()
	s, err := NewState(t0).Start(questions.AssessmentFallback(), t0.Add(time.Second))
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	s := NewState(t0)
	assert.Equal(t, PhaseWelcome, s.Phase)
	assert.Equal(t, questions.Beginner, s.Level)
	assert.Equal(t, 0, s.AssessmentScore)
	assert.Empty(t, s.Questions)
	assert.Empty(t, s.Answers)
	assert.NotEmpty(t, s.SessionID)
}

func TestStart(t *testing.T) {
	s := assessment(t)
	assert.Equal(t, PhaseAssessment, s.Phase)
	assert.Equal(t, 0, s.CurrentQuestion)
	assert.Len(t, s.Answers, len(s.Questions))
	assert.Equal(t, t0.Add(time.Second), s.StartTime)

	_, err := s.Start(questions.AssessmentFallback(), t0)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NewState(t0).Start(nil, t0)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestAnswer_OverwritesWithoutMutatingReceiver(t *testing.T) {
	s := assessment(t)

	a, err := s.Answer(questions.LabelB)
	require.NoError(t, err)
	b, err := a.Answer(questions.LabelC)
	require.NoError(t, err)

	assert.Equal(t, questions.Label(""), s.CurrentAnswer())
	assert.Equal(t, questions.LabelB, a.CurrentAnswer())
	assert.Equal(t, questions.LabelC, b.CurrentAnswer())
	assert.Len(t, b.Answers, len(b.Questions))
}

func TestAnswer_Rejects(t *testing.T) {
	_, err := assessment(t).Answer("E")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = NewState(t0).Answer(questions.LabelA)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvance_RequiresAnswer(t *testing.T) {
	s := assessment(t)
	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrNoAnswer)

	s, err = s.Answer(questions.CannotAnswer)
	require.NoError(t, err)
	s, err = s.Advance()
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentQuestion)
}

func TestAssessmentClassification(t *testing.T) {
	// Fallback key is A B B A C B B A; one miss on question 3.
	s := answerAll(t, assessment(t), "A", "B", "A", "A", "C", "B", "B", "A")

	assert.Equal(t, PhaseLevelResult, s.Phase)
	assert.Equal(t, 7, s.AssessmentScore)
	assert.Equal(t, 8, s.AssessmentTotal)
	assert.Equal(t, questions.Advanced, s.Level)
	assert.Len(t, s.Answers, len(s.Questions))
}

func TestCannotAnswerNeverScores(t *testing.T) {
	s := answerAll(t, assessment(t),
		questions.CannotAnswer, questions.CannotAnswer, questions.CannotAnswer, questions.CannotAnswer,
		questions.CannotAnswer, questions.CannotAnswer, questions.CannotAnswer, "A")

	assert.Equal(t, 1, s.AssessmentScore)
	assert.Equal(t, questions.Beginner, s.Level)
}

func TestFullSession(t *testing.T) {
	s := answerAll(t, assessment(t), "A", "A", "A", "A", "A", "A", "A", "A")
	require.Equal(t, PhaseLevelResult, s.Phase)
	assert.Equal(t, 3, s.AssessmentScore)
	assert.Equal(t, questions.Beginner, s.Level)

	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	s, err = s.BeginTailored(questions.TailoredFallback(s.Level))
	require.NoError(t, err)
	assert.Equal(t, PhaseTailoredQuiz, s.Phase)
	assert.Equal(t, 0, s.CurrentQuestion)
	assert.Equal(t, []questions.Label{"", ""}, s.Answers)

	s, err = s.Answer("B")
	require.NoError(t, err)
	assert.Equal(t, 0, s.QuizScore(), "quiz score is zero before the final phase")

	s, err = s.Advance()
	require.NoError(t, err)
	s, err = s.Answer("A")
	require.NoError(t, err)
	s, err = s.Advance()
	require.NoError(t, err)

	assert.Equal(t, PhaseFinalResults, s.Phase)
	assert.Equal(t, 1, s.QuizScore())
	assert.Equal(t, 3, s.AssessmentScore, "assessment score is not touched by the quiz")
	assert.Equal(t, questions.Beginner, s.Level)

	r := s.Restart(t0.Add(time.Hour))
	assert.Equal(t, PhaseWelcome, r.Phase)
	assert.Empty(t, r.Questions)
	assert.Empty(t, r.Answers)
	assert.Equal(t, 0, r.AssessmentScore)
	assert.Equal(t, questions.Beginner, r.Level)
	assert.Equal(t, t0.Add(time.Hour), r.StartTime)
	assert.NotEqual(t, s.SessionID, r.SessionID)
}

func TestBeginTailored_WrongPhase(t *testing.T) {
	_, err := assessment(t).BeginTailored(questions.TailoredFallback(questions.Beginner))
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		score, total int
		want         questions.Level
	}{
		{0, 0, questions.Beginner},
		{0, 8, questions.Beginner},
		{3, 8, questions.Beginner},
		{4, 10, questions.Intermediate},
		{2, 5, questions.Intermediate},
		{5, 8, questions.Intermediate},
		{69, 100, questions.Intermediate},
		{7, 10, questions.Advanced},
		{6, 8, questions.Advanced},
		{8, 8, questions.Advanced},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLevel(tt.score, tt.total), "%d/%d", tt.score, tt.total)
	}
}

func TestScore_IgnoresUnsetSlots(t *testing.T) {
	qs := questions.AssessmentFallback()
	answers := make([]questions.Label, len(qs))
	assert.Equal(t, 0, Score(qs, answers))
	answers[0] = "A"
	answers[1] = "B"
	assert.Equal(t, 2, Score(qs, answers))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 88, Percent(7, 8))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 0, Percent(3, 0))
}

func TestResults(t *testing.T) {
	s := answerAll(t, assessment(t), "A", "B", "B", "A", "C", "B", "B", "A")
	s, err := s.BeginTailored(questions.TailoredFallback(s.Level))
	require.NoError(t, err)
	s = answerAll(t, s, "A")

	r := BuildResults(s, s.StartTime.Add(95*time.Second))
	assert.Equal(t, questions.Advanced, r.Level)
	assert.Equal(t, 100, r.AssessmentPercent)
	assert.Equal(t, 1, r.QuizScore)
	assert.Equal(t, 1, r.QuizTotal)
	assert.Equal(t, 100, r.OverallPercent)
	assert.Equal(t, "1:35", r.ElapsedClock())
	assert.Equal(t, PerformanceMessage(100), r.Message)
}

func TestPerformanceMessage(t *testing.T) {
	assert.Contains(t, PerformanceMessage(90), "Outstanding")
	assert.Contains(t, PerformanceMessage(89), "Excellent work")
	assert.Contains(t, PerformanceMessage(70), "Good job")
	assert.Contains(t, PerformanceMessage(60), "Nice effort")
	assert.Contains(t, PerformanceMessage(59), "Keep practicing")
}

func TestHeading(t *testing.T) {
	s := answerAll(t, assessment(t), "A", "B", "B", "A", "C", "B", "B", "A")
	assert.Equal(t, "Level Assessment Complete", Heading(s))
	s, err := s.BeginTailored(questions.TailoredFallback(s.Level))
	require.NoError(t, err)
	assert.Equal(t, "Advanced Level Quiz", Heading(s))
	assert.Equal(t, "Intermediate Level", LevelInfo(questions.Intermediate).Title)
}
