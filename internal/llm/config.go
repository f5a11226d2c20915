package llm

import (
	"os"
	"strings"
	"time"
)

// Provider selector values.
const (
	ProviderCloud     = "cloud"
	ProviderLocal     = "local"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

const (
	// DefaultCloudBaseURL is the OpenRouter chat-completion API root.
	DefaultCloudBaseURL = "https://openrouter.ai/api/v1"

	// DefaultLocalURL is where a local Ollama server listens out of the box.
	DefaultLocalURL = "http://localhost:11434"

	DefaultCloudModel     = "meta-llama/llama-4-maverick:free"
	DefaultLocalModel     = "llama3.2"
	DefaultAnthropicModel = "claude-haiku"
	DefaultGeminiModel    = "gemini-flash"
)

// CloudModels are suggested models for the cloud provider.
var CloudModels = []string{
	"meta-llama/llama-4-maverick:free",
	"meta-llama/llama-3.1-8b-instruct:free",
	"microsoft/phi-3-mini-128k-instruct:free",
	"google/gemma-2-9b-it:free",
}

// LocalModels are suggested models for the local provider.
// Each must be pulled into the local server first.
var LocalModels = []string{
	"llama3.2",
	"llama3.1",
	"phi3",
	"gemma2",
	"qwen2.5",
	"mistral",
}

// providerAliases maps accepted alternate names to canonical selectors.
var providerAliases = map[string]string{
	"openrouter": ProviderCloud,
	"ollama":     ProviderLocal,
}

// Config selects and configures the backend used for question generation.
// It is supplied by the caller and may change between calls.
type Config struct {
	// Provider selects which backend to use.
	// Values: "cloud", "local", "anthropic", "gemini", "mock"
	Provider string

	// APIKey is the credential. Required for every hosted provider.
	APIKey string

	// LocalURL is the local inference server root. Default: DefaultLocalURL.
	LocalURL string

	// BaseURL overrides the hosted API root. Default: DefaultCloudBaseURL
	// for the cloud provider, the SDK default otherwise.
	BaseURL string

	// Model is the model identifier passed to the backend.
	Model string

	// Referer is sent as HTTP-Referer to the cloud provider, which uses it
	// for app attribution. Optional.
	Referer string

	// Temperature for question generation. DefaultConfig sets 0.7; an
	// explicit 0 is kept for deterministic output.
	Temperature float64

	// Timeout bounds a single request. Default: 60s.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 means a single attempt with no retry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderCloud,
		Model:       DefaultCloudModel,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Normalized resolves provider aliases and fills per-provider defaults.
func (c Config) Normalized() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if canonical, ok := providerAliases[c.Provider]; ok {
		c.Provider = canonical
	}
	c.APIKey = strings.TrimSpace(c.APIKey)

	switch c.Provider {
	case ProviderCloud:
		if c.BaseURL == "" {
			c.BaseURL = DefaultCloudBaseURL
		}
		if c.Model == "" {
			c.Model = DefaultCloudModel
		}
	case ProviderLocal:
		if c.LocalURL == "" {
			c.LocalURL = DefaultLocalURL
		}
		c.LocalURL = strings.TrimRight(c.LocalURL, "/")
		if c.Model == "" {
			c.Model = DefaultLocalModel
		}
	case ProviderAnthropic:
		if c.Model == "" {
			c.Model = DefaultAnthropicModel
		}
	case ProviderGemini:
		if c.Model == "" {
			c.Model = DefaultGeminiModel
		}
	}

	if c.Retry.MaxAttempts < 1 {
		c.Retry.MaxAttempts = 1
	}
	return c
}

// Validate checks that the selected provider exists and has its credential.
// The returned error, if any, is an *ErrConfiguration.
func (c Config) Validate() error {
	c = c.Normalized()
	switch c.Provider {
	case ProviderCloud, ProviderAnthropic, ProviderGemini:
		if c.APIKey == "" {
			return &ErrConfiguration{Provider: c.Provider, Reason: "API key not configured"}
		}
	case ProviderLocal, ProviderMock:
		// No credential needed.
	case "":
		return &ErrConfiguration{Reason: "no provider selected"}
	default:
		return &ErrConfiguration{Provider: c.Provider, Reason: "unknown provider"}
	}
	return nil
}

// Label returns a short human-readable provider name for display.
func (c Config) Label() string {
	switch c.Normalized().Provider {
	case ProviderCloud:
		return "OpenRouter"
	case ProviderLocal:
		return "Ollama"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderGemini:
		return "Gemini"
	case ProviderMock:
		return "Mock"
	default:
		return c.Provider
	}
}

// DiscoverAPIKey fills an empty APIKey from the vendor's standard
// environment variable for the selected provider.
func (c Config) DiscoverAPIKey() Config {
	if c.APIKey != "" {
		return c
	}
	var env string
	switch c.Normalized().Provider {
	case ProviderCloud:
		env = "OPENROUTER_API_KEY"
	case ProviderAnthropic:
		env = "ANTHROPIC_API_KEY"
	case ProviderGemini:
		env = "GEMINI_API_KEY"
	default:
		return c
	}
	c.APIKey = os.Getenv(env)
	return c
}
