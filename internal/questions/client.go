package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/mathquiz/internal/llm"
)

// ErrGeneration wraps a failure that neither configuration checks nor the
// fallback path account for. Callers surface it and offer a retry.
type ErrGeneration struct {
	Purpose string
	Err     error
}

func (e *ErrGeneration) Error() string {
	return fmt.Sprintf("generate %s questions: %v", e.Purpose, e.Err)
}

func (e *ErrGeneration) Unwrap() error { return e.Err }

// ProviderFactory builds an llm.Provider for a configuration.
type ProviderFactory func(ctx context.Context, cfg llm.Config) (llm.Provider, error)

// Client generates question lists. Transport and parse failures are
// recovered by returning the matching fallback list.
type Client struct {
	newProvider ProviderFactory
	logger      *slog.Logger
}

// New creates a Client. A nil factory uses llm.NewProvider; a nil logger
// uses slog.Default().
func New(factory ProviderFactory, logger *slog.Logger) *Client {
	if factory == nil {
		factory = llm.NewProvider
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{newProvider: factory, logger: logger}
}

// GenerateAssessment returns the assessment question list.
func (c *Client) GenerateAssessment(ctx context.Context, cfg llm.Config) ([]Question, error) {
	return c.generate(ctx, cfg, llm.PurposeAssessment, AssessmentPrompt(),
		ParseAssessment,
		AssessmentFallback,
	)
}

// GenerateTailored returns a quiz for level. Empty topics default to
// TopicsFor(level).
func (c *Client) GenerateTailored(ctx context.Context, level Level, topics []string, cfg llm.Config) ([]Question, error) {
	if len(topics) == 0 {
		topics = TopicsFor(level)
	}
	return c.generate(ctx, cfg, llm.PurposeTailored, TailoredPrompt(level, topics),
		func(text string) ([]Question, error) { return ParseTailored(text, level) },
		func() []Question { return TailoredFallback(level) },
	)
}

func (c *Client) generate(
	ctx context.Context,
	cfg llm.Config,
	purpose string,
	prompt string,
	parse func(string) ([]Question, error),
	fallback func() []Question,
) ([]Question, error) {
	// Checked here so a missing credential never reaches the factory or the network.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()

	provider, err := c.newProvider(ctx, cfg)
	if err != nil {
		var cfgErr *llm.ErrConfiguration
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &ErrGeneration{Purpose: purpose, Err: err}
	}

	ctx = llm.WithPurpose(ctx, purpose)
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(SystemPrompt, prompt, cfg.Temperature)
	req.JSON = true

	resp, err := provider.Generate(ctx, req)
	if err != nil {
		if recoverable(err) {
			return c.fallback(ctx, purpose, err, fallback), nil
		}
		var cfgErr *llm.ErrConfiguration
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &ErrGeneration{Purpose: purpose, Err: err}
	}

	qs, err := parse(resp.Content)
	if err != nil {
		return c.fallback(ctx, purpose, err, fallback), nil
	}

	c.logger.InfoContext(ctx, "questions generated",
		"purpose", purpose,
		"provider", cfg.Provider,
		"model", provider.ModelID(),
		"count", len(qs),
		"fallback", false,
	)
	return qs, nil
}

func (c *Client) fallback(ctx context.Context, purpose string, cause error, fallback func() []Question) []Question {
	qs := fallback()
	c.logger.WarnContext(ctx, "using fallback questions",
		"purpose", purpose,
		"count", len(qs),
		"fallback", true,
		"reason", cause,
	)
	return qs
}

// recoverable reports whether err is a transport or parse failure.
func recoverable(err error) bool {
	var tErr *llm.ErrTransport
	var invErr *llm.ErrInvalidResponse
	return errors.As(err, &tErr) || errors.As(err, &invErr)
}
