package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements Provider against a local Ollama server's
// native chat endpoint.
type OllamaProvider struct {
	baseURL   *url.URL
	transport http.RoundTripper
	model     string
}

// NewOllamaProvider creates a provider for the local backend.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	raw := strings.TrimRight(cfg.LocalURL, "/")
	if raw == "" {
		raw = DefaultLocalURL
	}
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ErrConfiguration{Provider: ProviderLocal, Reason: fmt.Sprintf("invalid local URL %q", cfg.LocalURL)}
	}
	return &OllamaProvider{
		baseURL:   base,
		transport: http.DefaultTransport,
		model:     cfg.Model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	// The api client drops the response once it reports a status error, so
	// the status and Retry-After header are captured on the way through.
	rec := &statusRecorder{next: p.transport}
	client := api.NewClient(p.baseURL, &http.Client{Transport: rec})

	stream := false
	options := map[string]any{"temperature": req.Temperature}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	var chat *api.ChatResponse
	err := client.Chat(ctx, &api.ChatRequest{
		Model:    p.model,
		Messages: buildOllamaMessages(req),
		Stream:   &stream,
		Options:  options,
	}, func(r api.ChatResponse) error {
		chat = &r
		return nil
	})
	if err != nil {
		return nil, mapOllamaError(err, rec)
	}
	if chat == nil {
		return nil, &ErrInvalidResponse{Err: errors.New("empty chat response")}
	}

	model := chat.Model
	if model == "" {
		model = p.model
	}
	stop := "end"
	if chat.DoneReason == "length" {
		stop = "max_tokens"
	}

	return &Response{
		Content: chat.Message.Content,
		Usage: Usage{
			InputTokens:  chat.PromptEvalCount,
			OutputTokens: chat.EvalCount,
			TotalTokens:  chat.PromptEvalCount + chat.EvalCount,
		},
		Model:      model,
		StopReason: stop,
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func buildOllamaMessages(req Request) []api.Message {
	var messages []api.Message
	if req.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, api.Message{Role: string(m.Role), Content: m.Content})
	}
	return messages
}

func mapOllamaError(err error, rec *statusRecorder) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return &ErrTransport{StatusCode: statusErr.StatusCode, RetryAfter: rec.retryAfter, Err: err}
	}
	if rec.status >= http.StatusBadRequest {
		return &ErrTransport{StatusCode: rec.status, RetryAfter: rec.retryAfter, Err: err}
	}
	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &synErr) || errors.As(err, &typeErr) {
		return &ErrInvalidResponse{Err: err}
	}
	return &ErrTransport{Err: err}
}

// statusRecorder remembers the status and Retry-After of the last response.
type statusRecorder struct {
	next       http.RoundTripper
	status     int
	retryAfter time.Duration
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if resp != nil {
		r.status = resp.StatusCode
		if secs, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil && secs > 0 {
			r.retryAfter = time.Duration(secs) * time.Second
		}
	}
	return resp, err
}
