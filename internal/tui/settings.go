package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquiz/internal/llm"
	"github.com/abhisek/mathquiz/internal/ui/components"
	"github.com/abhisek/mathquiz/internal/ui/theme"
)

// Settings form fields, in focus order.
const (
	fieldProvider = iota
	fieldAPIKey
	fieldLocalURL
	fieldModel
	fieldCount
)

// settingsForm edits the backend configuration.
type settingsForm struct {
	cfg    llm.Config
	focus  int
	inputs [fieldCount]components.TextInput
}

func newSettingsForm(cfg llm.Config) *settingsForm {
	cfg = cfg.Normalized()
	f := &settingsForm{cfg: cfg}
	f.inputs[fieldAPIKey] = components.NewTextInput("API key", "sk-or-...", cfg.APIKey, true)
	f.inputs[fieldLocalURL] = components.NewTextInput("Local URL", llm.DefaultLocalURL, cfg.LocalURL, false)
	f.inputs[fieldModel] = components.NewTextInput("Model", cfg.Model, cfg.Model, false)
	return f
}

// config returns the edited configuration.
func (f *settingsForm) config() llm.Config {
	cfg := f.cfg
	cfg.APIKey = strings.TrimSpace(f.inputs[fieldAPIKey].Value())
	cfg.LocalURL = strings.TrimSpace(f.inputs[fieldLocalURL].Value())
	cfg.Model = strings.TrimSpace(f.inputs[fieldModel].Value())
	return cfg
}

// providerChoices is the order the provider field cycles through.
var providerChoices = []string{
	llm.ProviderCloud,
	llm.ProviderLocal,
	llm.ProviderAnthropic,
	llm.ProviderGemini,
	llm.ProviderMock,
}

// cycleProvider moves the selection by delta and resets the model to the
// new provider's default. The provider only changes here.
func (f *settingsForm) cycleProvider(delta int) {
	i := 0
	for j, p := range providerChoices {
		if p == f.cfg.Provider {
			i = j
			break
		}
	}
	n := len(providerChoices)
	f.cfg.Provider = providerChoices[(i+delta+n)%n]
	f.cfg.Model = ""
	f.inputs[fieldModel].Model.SetValue(f.cfg.Normalized().Model)
}

// visible reports whether field i applies to the selected provider.
func (f *settingsForm) visible(i int) bool {
	switch i {
	case fieldAPIKey:
		switch f.cfg.Provider {
		case llm.ProviderCloud, llm.ProviderAnthropic, llm.ProviderGemini:
			return true
		}
		return false
	case fieldLocalURL:
		return f.cfg.Provider == llm.ProviderLocal
	}
	return true
}

func (f *settingsForm) moveFocus(delta int) tea.Cmd {
	if f.focus != fieldProvider {
		f.inputs[f.focus].Blur()
	}
	for {
		f.focus = (f.focus + delta + fieldCount) % fieldCount
		if f.visible(f.focus) {
			break
		}
	}
	if f.focus != fieldProvider {
		return f.inputs[f.focus].Focus()
	}
	return nil
}

// update handles a key. done is true when the form closes; saved tells
// whether the edits should be kept.
func (f *settingsForm) update(msg tea.KeyMsg) (cmd tea.Cmd, done, saved bool) {
	switch msg.String() {
	case "esc":
		return nil, true, false
	case "enter":
		return nil, true, true
	case "tab", "down":
		return f.moveFocus(1), false, false
	case "shift+tab", "up":
		return f.moveFocus(-1), false, false
	}

	if f.focus == fieldProvider {
		switch msg.String() {
		case "right", "space", " ":
			f.cycleProvider(1)
		case "left":
			f.cycleProvider(-1)
		}
		return nil, false, false
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false, false
}

func (f *settingsForm) view() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("API Configuration"))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Width(10).Foreground(theme.TextDim)
	if f.focus == fieldProvider {
		label = label.Foreground(theme.Primary).Bold(true)
	}
	choices := make([]string, len(providerChoices))
	for i, p := range providerChoices {
		style := theme.Unselected
		if p == f.cfg.Provider {
			style = theme.Selected
		}
		choices[i] = style.Render(llm.Config{Provider: p}.Label())
	}
	b.WriteString(label.Render("Provider") + " " + strings.Join(choices, "  "))
	b.WriteString("\n\n")

	for i := fieldAPIKey; i < fieldCount; i++ {
		if !f.visible(i) {
			continue
		}
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	var suggested []string
	switch f.cfg.Provider {
	case llm.ProviderCloud:
		suggested = llm.CloudModels
	case llm.ProviderLocal:
		suggested = llm.LocalModels
	}
	if len(suggested) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Suggested: " + strings.Join(suggested, ", ")))
	}
	return b.String()
}
