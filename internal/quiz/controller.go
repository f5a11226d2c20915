package quiz

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/mathquiz/internal/llm"
	"github.com/abhisek/mathquiz/internal/questions"
)

var (
	// ErrStale is returned by a fetch whose result was discarded because a
	// restart or a newer fetch superseded it.
	ErrStale = errors.New("generation superseded")

	ErrNothingToRetry = errors.New("nothing to retry")
)

// User-facing failure messages.
const (
	MsgAssessmentFailed = "Failed to load assessment questions. Please try again."
	MsgQuizFailed       = "Failed to load quiz questions. Please try again."
)

// Source supplies question lists. *questions.Client implements it.
type Source interface {
	GenerateAssessment(ctx context.Context, cfg llm.Config) ([]questions.Question, error)
	GenerateTailored(ctx context.Context, level questions.Level, topics []string, cfg llm.Config) ([]questions.Question, error)
}

type fetchKind int

const (
	fetchNone fetchKind = iota
	fetchAssessment
	fetchTailored
)

// Status is a consistent view of the controller for presentation.
type Status struct {
	State State  `json:"state"`
	Busy  bool   `json:"busy"`
	Error string `json:"error,omitempty"`
}

// Controller owns the live quiz State. Its methods are safe for concurrent
// use; the fetch methods block for the duration of the generation call
// without holding the lock.
type Controller struct {
	source Source
	now    func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	cfg    llm.Config
	busy   bool
	epoch  uint64
	errMsg string
	failed fetchKind
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a controller in the welcome phase.
func NewController(source Source, cfg llm.Config, opts ...Option) *Controller {
	c := &Controller{
		source: source,
		now:    time.Now,
		logger: slog.Default(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = NewState(c.now())
	return c
}

// Snapshot returns the current state. The returned value is never modified
// by later transitions.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns state, busy flag and error message together.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{State: c.state, Busy: c.busy, Error: c.errMsg}
}

// Busy reports whether a question fetch is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Err returns the user-visible message of the last failed fetch, or "".
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Config returns the backend configuration used for the next fetch.
func (c *Controller) Config() llm.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetConfig replaces the backend configuration. Fetches already in flight
// keep the configuration they started with.
func (c *Controller) SetConfig(cfg llm.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
}

// StartAssessment fetches the assessment and enters the assessment phase.
func (c *Controller) StartAssessment(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != PhaseWelcome {
		err := c.state.transitionErr("start assessment")
		c.mu.Unlock()
		return err
	}
	epoch, cfg := c.beginLocked()
	c.mu.Unlock()

	qs, err := c.source.GenerateAssessment(ctx, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.logger.Debug("discarding stale assessment", "session", c.state.SessionID)
		return ErrStale
	}
	c.busy = false
	if err != nil {
		return c.failLocked(fetchAssessment, MsgAssessmentFailed, err)
	}
	next, err := c.state.Start(qs, c.now())
	if err != nil {
		return c.failLocked(fetchAssessment, MsgAssessmentFailed, err)
	}
	c.state = next
	c.failed = fetchNone
	c.logger.Info("assessment started", "session", next.SessionID, "questions", len(qs))
	return nil
}

// StartTailoredQuiz fetches a quiz for the inferred level and enters the
// tailored-quiz phase.
func (c *Controller) StartTailoredQuiz(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != PhaseLevelResult {
		err := c.state.transitionErr("start tailored quiz")
		c.mu.Unlock()
		return err
	}
	level := c.state.Level
	epoch, cfg := c.beginLocked()
	c.mu.Unlock()

	qs, err := c.source.GenerateTailored(ctx, level, questions.TopicsFor(level), cfg)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.logger.Debug("discarding stale quiz", "session", c.state.SessionID)
		return ErrStale
	}
	c.busy = false
	if err != nil {
		return c.failLocked(fetchTailored, MsgQuizFailed, err)
	}
	next, err := c.state.BeginTailored(qs)
	if err != nil {
		return c.failLocked(fetchTailored, MsgQuizFailed, err)
	}
	c.state = next
	c.failed = fetchNone
	c.logger.Info("tailored quiz started", "session", next.SessionID, "level", level, "questions", len(qs))
	return nil
}

// Retry re-runs the fetch that last failed.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	failed := c.failed
	c.mu.Unlock()

	switch failed {
	case fetchAssessment:
		return c.StartAssessment(ctx)
	case fetchTailored:
		return c.StartTailoredQuiz(ctx)
	default:
		return ErrNothingToRetry
	}
}

// SubmitAnswer records label for the current question.
func (c *Controller) SubmitAnswer(label questions.Label) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.state.Answer(label)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Next advances past the current question.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.state.Advance()
	if err != nil {
		return err
	}
	if next.Phase != c.state.Phase {
		c.logger.Info("phase complete",
			"session", next.SessionID,
			"from", c.state.Phase,
			"to", next.Phase,
			"assessment_score", next.AssessmentScore,
			"level", next.Level,
		)
	}
	c.state = next
	return nil
}

// Restart discards the session and any fetch in flight.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.busy = false
	c.errMsg = ""
	c.failed = fetchNone
	c.state = c.state.Restart(c.now())
}

// QuizScore returns the tailored-quiz score, 0 before the final results.
func (c *Controller) QuizScore() int {
	return c.Snapshot().QuizScore()
}

// Results summarizes the session as of now.
func (c *Controller) Results() Results {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildResults(c.state, c.now())
}

// beginLocked starts a fetch: it supersedes any fetch in flight and clears
// the previous error.
func (c *Controller) beginLocked() (uint64, llm.Config) {
	c.epoch++
	c.busy = true
	c.errMsg = ""
	return c.epoch, c.cfg
}

func (c *Controller) failLocked(kind fetchKind, msg string, err error) error {
	c.errMsg = msg
	c.failed = kind
	c.logger.Error("question generation failed", "session", c.state.SessionID, "error", err)
	return err
}
