package web

import (
	"github.com/abhisek/mathquiz/internal/llm"
	"github.com/abhisek/mathquiz/internal/questions"
	"github.com/abhisek/mathquiz/internal/quiz"
	"github.com/abhisek/mathquiz/internal/web/views"
)

var providerChoices = []string{
	llm.ProviderCloud,
	llm.ProviderLocal,
	llm.ProviderAnthropic,
	llm.ProviderGemini,
	llm.ProviderMock,
}

func settingsView(cfg llm.Config) views.Settings {
	s := views.Settings{
		Model:    cfg.Model,
		LocalURL: cfg.LocalURL,
		HasKey:   cfg.APIKey != "",
	}
	for _, p := range providerChoices {
		s.Providers = append(s.Providers, views.ProviderChoice{
			Value:    p,
			Label:    llm.Config{Provider: p}.Label(),
			Selected: p == cfg.Provider,
		})
	}
	switch cfg.Provider {
	case llm.ProviderCloud:
		s.Models = llm.CloudModels
	case llm.ProviderLocal:
		s.Models = llm.LocalModels
	}
	return s
}

func (h *Handler) page() views.Page {
	st := h.ctrl.Status()
	s := st.State

	p := views.Page{
		Phase:           s.Phase,
		Heading:         quiz.Heading(s),
		Busy:            st.Busy,
		Loading:         quiz.LoadingMessage(s),
		Error:           st.Error,
		Settings:        settingsView(h.ctrl.Config().Normalized()),
		LevelInfo:       quiz.LevelInfo(s.Level),
		AssessmentScore: s.AssessmentScore,
		AssessmentTotal: s.AssessmentTotal,
		AssessmentPct:   quiz.Percent(s.AssessmentScore, s.AssessmentTotal),
	}

	if q, ok := s.Question(); ok {
		answer := s.CurrentAnswer()
		p.Question = q
		p.Number = s.CurrentQuestion + 1
		p.Total = len(s.Questions)
		p.AllowCannot = s.Phase == quiz.PhaseAssessment
		p.CannotSet = answer == questions.CannotAnswer
		p.Answered = answer != ""
		p.IsLast = s.IsLast()
		for _, l := range questions.Labels {
			p.Options = append(p.Options, views.Option{
				Label:    string(l),
				Text:     q.Options[l],
				Selected: answer == l,
			})
		}
	}

	if s.Phase == quiz.PhaseFinalResults {
		p.Results = h.ctrl.Results()
	}
	return p
}
