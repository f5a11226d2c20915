// Package web serves the quiz as a server-rendered browser app.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/mathquiz/internal/llm"
	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
	"github.com/abhisek/mathquiz/internal/web/views"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	ctrl  *quiz.Controller
	fetch func(run func(context.Context) error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithSyncFetch makes fetch endpoints wait for questions before
// redirecting instead of generating in the background.
func WithSyncFetch() Option {
	return func(h *Handler) {
		h.fetch = func(run func(context.Context) error) {
			_ = run(context.Background())
		}
	}
}

// New creates a new Handler.
func New(ctrl *quiz.Controller, opts ...Option) (*Handler, error) {
	h := &Handler{
		ctrl: ctrl,
		fetch: func(run func(context.Context) error) {
			go func() { _ = run(context.Background()) }()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Post("/start", h.handleStart)
	r.Post("/answer", h.handleAnswer)
	r.Post("/next", h.handleNext)
	r.Post("/tailored", h.handleTailored)
	r.Post("/retry", h.handleRetry)
	r.Post("/restart", h.handleRestart)
	r.Post("/settings", h.handleSettings)
	r.Get("/api/state", h.handleState)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

// NewRouter returns a router with logging and panic recovery.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	h.Routes(r)
	return r
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.IndexPage(h.page()).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	st := h.ctrl.Status()
	if st.Busy {
		redirectHome(w, r)
		return
	}
	if st.State.Phase != quiz.PhaseWelcome {
		http.Error(w, "assessment already started", http.StatusConflict)
		return
	}
	h.fetch(h.ctrl.StartAssessment)
	redirectHome(w, r)
}

func (h *Handler) handleTailored(w http.ResponseWriter, r *http.Request) {
	st := h.ctrl.Status()
	if st.Busy {
		redirectHome(w, r)
		return
	}
	if st.State.Phase != quiz.PhaseLevelResult {
		http.Error(w, "assessment not finished", http.StatusConflict)
		return
	}
	h.fetch(h.ctrl.StartTailoredQuiz)
	redirectHome(w, r)
}

func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	if h.ctrl.Busy() {
		redirectHome(w, r)
		return
	}
	if h.ctrl.Err() == "" {
		http.Error(w, quiz.ErrNothingToRetry.Error(), http.StatusConflict)
		return
	}
	h.fetch(h.ctrl.Retry)
	redirectHome(w, r)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	label, err := questions.ParseLabel(r.FormValue("answer"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.ctrl.SubmitAnswer(label); err != nil {
		writeTransitionError(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Next(); err != nil {
		writeTransitionError(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Restart()
	redirectHome(w, r)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.ctrl.Config()
	cfg.Provider = r.FormValue("provider")
	cfg.Model = strings.TrimSpace(r.FormValue("model"))
	cfg.LocalURL = strings.TrimSpace(r.FormValue("localUrl"))
	// An empty key field keeps the stored key; the page never echoes it.
	if key := strings.TrimSpace(r.FormValue("apiKey")); key != "" {
		cfg.APIKey = key
	}
	cfg = cfg.Normalized()

	// A missing key is stored as is and reported when the next fetch fails.
	switch cfg.Provider {
	case llm.ProviderCloud, llm.ProviderLocal, llm.ProviderAnthropic, llm.ProviderGemini, llm.ProviderMock:
	default:
		http.Error(w, fmt.Sprintf("unknown provider %q", cfg.Provider), http.StatusBadRequest)
		return
	}

	h.ctrl.SetConfig(cfg)
	slog.Info("settings updated", "provider", cfg.Provider, "model", cfg.Model)
	redirectHome(w, r)
}

// stateResponse is the JSON form of the controller state.
type stateResponse struct {
	quiz.Status
	QuizScore int           `json:"quizScore"`
	Results   *quiz.Results `json:"results,omitempty"`
	Provider  string        `json:"provider"`
	Model     string        `json:"model"`
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	st := h.ctrl.Status()
	cfg := h.ctrl.Config().Normalized()
	resp := stateResponse{
		Status:    st,
		QuizScore: st.State.QuizScore(),
		Provider:  cfg.Provider,
		Model:     cfg.Model,
	}
	if st.State.Phase == quiz.PhaseFinalResults {
		res := h.ctrl.Results()
		resp.Results = &res
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("encode state", "error", err)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrInvalidAnswer):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusConflict)
	}
}
