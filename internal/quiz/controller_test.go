package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquiz/internal/llm"
	"github.com/abhisek/mathquiz/internal/questions"
)

type fetchResult struct {
	qs  []questions.Question
	err error
}

// fakeSource answers from queued results. When gate is set, each call
// blocks until a value is sent on it.
type fakeSource struct {
	mu         sync.Mutex
	assessment []fetchResult
	tailored   []fetchResult
	levels     []questions.Level
	cfgs       []llm.Config
	gate       chan struct{}
}

func (f *fakeSource) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeSource) pop(list *[]fetchResult) fetchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(*list) == 0 {
		return fetchResult{err: errors.New("no result queued")}
	}
	r := (*list)[0]
	*list = (*list)[1:]
	return r
}

func (f *fakeSource) GenerateAssessment(_ context.Context, cfg llm.Config) ([]questions.Question, error) {
	f.mu.Lock()
	f.cfgs = append(f.cfgs, cfg)
	f.mu.Unlock()
	f.wait()
	r := f.pop(&f.assessment)
	return r.qs, r.err
}

func (f *fakeSource) GenerateTailored(_ context.Context, level questions.Level, _ []string, cfg llm.Config) ([]questions.Question, error) {
	f.mu.Lock()
	f.levels = append(f.levels, level)
	f.cfgs = append(f.cfgs, cfg)
	f.mu.Unlock()
	f.wait()
	r := f.pop(&f.tailored)
	return r.qs, r.err
}

func newTestController(src Source) *Controller {
	clock := t0
	return NewController(src, llm.Config{Provider: llm.ProviderMock},
		WithClock(func() time.Time { return clock }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func answerAndAdvance(t *testing.T, c *Controller, labels ...questions.Label) {
	t.Helper()
	for _, l := range labels {
		require.NoError(t, c.SubmitAnswer(l))
		require.NoError(t, c.Next())
	}
}

func TestController_FullFlow(t *testing.T) {
	src := &fakeSource{
		assessment: []fetchResult{{qs: questions.AssessmentFallback()}},
		tailored:   []fetchResult{{qs: questions.TailoredFallback(questions.Advanced)}},
	}
	c := newTestController(src)
	ctx := context.Background()

	assert.Equal(t, PhaseWelcome, c.Snapshot().Phase)
	require.NoError(t, c.StartAssessment(ctx))
	assert.False(t, c.Busy())
	assert.Equal(t, PhaseAssessment, c.Snapshot().Phase)

	assert.ErrorIs(t, c.Next(), ErrNoAnswer)

	// Re-answering overwrites.
	require.NoError(t, c.SubmitAnswer("D"))
	answerAndAdvance(t, c, "A", "B", "A", "A", "C", "B", "B", "A")

	s := c.Snapshot()
	require.Equal(t, PhaseLevelResult, s.Phase)
	assert.Equal(t, 7, s.AssessmentScore)
	assert.Equal(t, questions.Advanced, s.Level)
	assert.Equal(t, 0, c.QuizScore())

	require.NoError(t, c.StartTailoredQuiz(ctx))
	assert.Equal(t, []questions.Level{questions.Advanced}, src.levels)
	answerAndAdvance(t, c, "A")

	assert.Equal(t, PhaseFinalResults, c.Snapshot().Phase)
	assert.Equal(t, 1, c.QuizScore())
	assert.Equal(t, 7, c.Results().AssessmentScore)

	c.Restart()
	s = c.Snapshot()
	assert.Equal(t, PhaseWelcome, s.Phase)
	assert.Empty(t, s.Questions)
	assert.Equal(t, questions.Beginner, s.Level)
	assert.Equal(t, 0, s.AssessmentScore)
}

func TestController_FailureAndRetry(t *testing.T) {
	src := &fakeSource{
		assessment: []fetchResult{
			{err: &questions.ErrGeneration{Purpose: llm.PurposeAssessment, Err: errors.New("boom")}},
			{qs: questions.AssessmentFallback()},
		},
	}
	c := newTestController(src)
	ctx := context.Background()

	err := c.StartAssessment(ctx)
	var genErr *questions.ErrGeneration
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, MsgAssessmentFailed, c.Err())
	assert.False(t, c.Busy())
	assert.Equal(t, PhaseWelcome, c.Snapshot().Phase)

	require.NoError(t, c.Retry(ctx))
	assert.Empty(t, c.Err())
	assert.Equal(t, PhaseAssessment, c.Snapshot().Phase)

	assert.ErrorIs(t, c.Retry(ctx), ErrNothingToRetry)
}

func TestController_TailoredFailureMessage(t *testing.T) {
	src := &fakeSource{
		assessment: []fetchResult{{qs: questions.AssessmentFallback()[:1]}},
		tailored:   []fetchResult{{err: errors.New("boom")}, {qs: questions.TailoredFallback(questions.Beginner)}},
	}
	c := newTestController(src)
	ctx := context.Background()

	require.NoError(t, c.StartAssessment(ctx))
	answerAndAdvance(t, c, "B")
	require.Equal(t, PhaseLevelResult, c.Snapshot().Phase)

	require.Error(t, c.StartTailoredQuiz(ctx))
	assert.Equal(t, MsgQuizFailed, c.Err())
	assert.Equal(t, PhaseLevelResult, c.Snapshot().Phase)

	require.NoError(t, c.Retry(ctx))
	assert.Equal(t, PhaseTailoredQuiz, c.Snapshot().Phase)
}

func TestController_ConfigurationErrorSurfaces(t *testing.T) {
	src := &fakeSource{
		assessment: []fetchResult{{err: &llm.ErrConfiguration{Provider: "cloud", Reason: "API key not configured"}}},
	}
	c := newTestController(src)

	err := c.StartAssessment(context.Background())
	var cfgErr *llm.ErrConfiguration
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, MsgAssessmentFailed, c.Err())
}

func TestController_WrongPhase(t *testing.T) {
	c := newTestController(&fakeSource{})
	assert.ErrorIs(t, c.StartTailoredQuiz(context.Background()), ErrInvalidTransition)
	assert.ErrorIs(t, c.SubmitAnswer("A"), ErrInvalidTransition)
	assert.ErrorIs(t, c.Next(), ErrInvalidTransition)
}

func TestController_RestartDiscardsInFlightFetch(t *testing.T) {
	src := &fakeSource{
		assessment: []fetchResult{{qs: questions.AssessmentFallback()}},
		gate:       make(chan struct{}),
	}
	c := newTestController(src)

	done := make(chan error, 1)
	go func() { done <- c.StartAssessment(context.Background()) }()

	require.Eventually(t, c.Busy, time.Second, time.Millisecond)
	c.Restart()
	assert.False(t, c.Busy())

	src.gate <- struct{}{}
	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, PhaseWelcome, c.Snapshot().Phase)
}

func TestController_NewerFetchWins(t *testing.T) {
	first := questions.AssessmentFallback()[:2]
	second := questions.AssessmentFallback()
	src := &fakeSource{
		assessment: []fetchResult{{qs: first}, {qs: second}},
		gate:       make(chan struct{}),
	}
	c := newTestController(src)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.StartAssessment(ctx) }()
	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return len(src.cfgs) == 1
	}, time.Second, time.Millisecond)

	secondDone := make(chan error, 1)
	go func() { secondDone <- c.StartAssessment(ctx) }()
	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return len(src.cfgs) == 2
	}, time.Second, time.Millisecond)

	// Both calls are parked on the gate; whichever wakes first pops the
	// first result, but only the newer epoch may apply its result.
	src.gate <- struct{}{}
	src.gate <- struct{}{}

	errs := []error{<-firstDone, <-secondDone}
	assert.ErrorIs(t, errs[0], ErrStale)
	assert.NoError(t, errs[1])
	assert.Equal(t, PhaseAssessment, c.Snapshot().Phase)
	assert.False(t, c.Busy())
}

func TestController_SetConfig(t *testing.T) {
	src := &fakeSource{assessment: []fetchResult{{qs: questions.AssessmentFallback()}}}
	c := newTestController(src)

	cfg := llm.Config{Provider: llm.ProviderLocal, Model: "phi3"}
	c.SetConfig(cfg)
	assert.Equal(t, cfg, c.Config())

	require.NoError(t, c.StartAssessment(context.Background()))
	assert.Equal(t, "phi3", src.cfgs[0].Model)
}

func TestController_Status(t *testing.T) {
	c := newTestController(&fakeSource{assessment: []fetchResult{{err: errors.New("x")}}})
	_ = c.StartAssessment(context.Background())

	st := c.Status()
	assert.Equal(t, PhaseWelcome, st.State.Phase)
	assert.False(t, st.Busy)
	assert.Equal(t, MsgAssessmentFailed, st.Error)
}
