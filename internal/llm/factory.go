package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider creates a Provider from configuration.
// The configuration is validated first, so a bad selection or a missing
// credential fails with *ErrConfiguration before anything touches the network.
// The result is wrapped with logging and, when MaxAttempts > 1, retry.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderCloud:
		base, err = NewOpenAIProvider(cfg)
	case ProviderLocal:
		base, err = NewOllamaProvider(cfg)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	var p Provider = WithLogging(base, cfg.Provider, slog.Default())
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry)
	}
	return p, nil
}
