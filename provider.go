package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	bolt "go.etcd.io/bbolt"
)

type llmProvider interface {
	name() string
	defaultModel() string
	isConfigured() bool

	form(int, int, *huh.KeyMap) *huh.Form
	saveForm(*bolt.DB, *huh.Form) (llmProvider, bool, error)

	Title() string
	Description() string
	list.Item

	newLLM(modelSetting) (llm, error)
}

// modelSetting selects the provider and model used for conversations.
type modelSetting struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

const (
	providerGemini    = "Gemini"
	providerOpenAI    = "OpenAI"
	providerAnthropic = "Anthropic"
	providerOllama    = "Ollama"
)

// loadLLMProviders reads saved credentials. Providers without saved credentials fall
// back to the environment.
func loadLLMProviders(db *bolt.DB, cfg config) ([]llmProvider, error) {
	var g geminiProvider
	if err := loadProviderSettings(db, "gemini", &g); err != nil {
		return nil, fmt.Errorf("failed to load gemini settings: %w", err)
	}
	if g.APIKey == "" {
		g.APIKey = cfg.GeminiAPIKey
	}

	var oa openaiProvider
	if err := loadProviderSettings(db, "openai", &oa); err != nil {
		return nil, fmt.Errorf("failed to load openai settings: %w", err)
	}
	if oa.APIKey == "" {
		oa.APIKey = cfg.OpenAIAPIKey
	}

	var a anthropicProvider
	if err := loadProviderSettings(db, "anthropic", &a); err != nil {
		return nil, fmt.Errorf("failed to load anthropic settings: %w", err)
	}
	if a.APIKey == "" {
		a.APIKey = cfg.AnthropicAPIKey
	}

	var o ollamaProvider
	if err := loadProviderSettings(db, "ollama", &o); err != nil {
		return nil, fmt.Errorf("failed to load ollama settings: %w", err)
	}
	if o.Host == "" {
		o.Host = cfg.OllamaHost
	}
	if o.Host == "" && strings.EqualFold(cfg.Provider, providerOllama) {
		o.Host = defaultOllamaHost
	}

	return []llmProvider{g, oa, a, o}, nil
}

// completerFromSetting builds the completer for setting. It fails with
// errConfiguration when the provider has no credential.
func completerFromSetting(setting modelSetting, providers []llmProvider) (completer, error) {
	for _, p := range providers {
		if !strings.EqualFold(p.name(), setting.Provider) {
			continue
		}

		if !p.isConfigured() {
			return nil, fmt.Errorf("%w: %s has no credential, set it in options (ctrl+o)", errConfiguration, p.name())
		}

		if setting.Model == "" {
			setting.Model = p.defaultModel()
		}

		l, err := p.newLLM(setting)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", p.name(), err)
		}

		return newLLMCompleter(p.name(), l), nil
	}

	return nil, fmt.Errorf("%w: unknown provider %q", errConfiguration, setting.Provider)
}

func credentialForm(prefix, provider, description, apiKey string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(prefix+"APIKey").
				Title("API Key").
				Description(description).
				Placeholder("API Key").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewConfirm().
				Key(prefix+"Confirm").
				Title("Confirm").
				Description(fmt.Sprintf("Save this %s settings?", provider)).
				Affirmative("Yes").
				Negative("Back"),
		),
	).
		WithTheme(huh.ThemeCatppuccin()).
		WithShowErrors(true).
		WithShowHelp(true)
}

func credentialFromForm(prefix string, form *huh.Form) (string, bool) {
	if !form.GetBool(prefix + "Confirm") {
		return "", false
	}

	apiKey := strings.TrimSpace(form.GetString(prefix + "APIKey"))
	if apiKey == "" {
		return "", false
	}

	return apiKey, true
}

func (m mainModel) initProviders() (mainModel, error) {
	var err error
	m.providers, err = loadLLMProviders(m.db, m.cfg)
	if err != nil {
		return mainModel{}, fmt.Errorf("failed to load llm providers: %w", err)
	}

	items := make([]list.Item, 0, len(m.providers))
	for _, item := range m.providers {
		items = append(items, item)
	}

	m.providersList = defaultList("Providers", m.keymap, func() []key.Binding {
		return []key.Binding{
			m.keymap.back,
		}
	}, func() []key.Binding {
		return []key.Binding{
			m.keymap.pick,
			m.keymap.back,
		}
	})
	m.providersList.SetItems(items)
	m.providersList.SetFilteringEnabled(false)
	m.providersList.SetShowStatusBar(false)

	return m, nil
}

func (m mainModel) updateProvidersSize() mainModel {
	height := m.height - logoHeight()

	if m.err != nil {
		height -= errHeight(m.width, m.err)
	}

	m.providersList.SetSize(m.width, max(height, 0))
	return m
}

func (m mainModel) handleProvidersEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateProvidersSize()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.back):
			return m.setViewState(viewStateOptions).updateOptionsSize(), nil
		case key.Matches(msg, m.keymap.pick):
			return m.selectProvider(m.providersList.Index())
		}
	}
	var cmd tea.Cmd
	m.providersList, cmd = m.providersList.Update(msg)
	return m, cmd
}

func (m mainModel) providersView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		logoView(),
		m.providersList.View(),
	)
}

func (m mainModel) selectProvider(index int) (mainModel, tea.Cmd) {
	m.selectedProviderIndex = index

	return m.setViewState(viewStateProviderForm).
		updateFormSize().
		newProviderForm()
}

func (m mainModel) newProviderForm() (mainModel, tea.Cmd) {
	selectedProvider := m.providers[m.selectedProviderIndex]

	m.providerForm = selectedProvider.form(m.formWidth, m.formHeight, m.keymap.formKeymap)

	return m, m.providerForm.PrevField()
}

func (m mainModel) handleProviderFormEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateFormSize()
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.back) {
			return m.setViewState(viewStateProviders), nil
		}
	}

	form, cmd := m.providerForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.providerForm = f
	}

	if m.providerForm.State != huh.StateCompleted {
		return m, cmd
	}

	provider, confirmed, err := m.providers[m.selectedProviderIndex].saveForm(m.db, m.providerForm)
	if err != nil {
		m.err = fmt.Errorf("error saving provider settings: %w", err)
		return m.updateFormSize(), nil
	}

	if !confirmed {
		return m.setViewState(viewStateProviders), nil
	}

	m.providers[m.selectedProviderIndex] = provider
	m.providersList.SetItem(m.selectedProviderIndex, provider)

	return m.refreshCompleter().setViewState(viewStateProviders), nil
}

func (m mainModel) providerFormView() string {
	selectedProvider := m.providers[m.selectedProviderIndex]
	title := selectedProvider.name()
	if selectedProvider.isConfigured() {
		title = "Edit " + title
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		logoView(),
		titleStyle.Render(title),
		m.providerForm.View(),
	)
}

func (m mainModel) newModelForm() (mainModel, tea.Cmd) {
	provider := m.modelSetting.Provider
	model := m.modelSetting.Model
	temperature := strconv.FormatFloat(m.modelSetting.Temperature, 'f', -1, 64)

	options := make([]huh.Option[string], len(m.providers))
	for i, p := range m.providers {
		options[i] = huh.NewOption(p.Title(), p.name())
	}

	m.modelForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("modelProvider").
				Title("Provider").
				Options(options...).
				Value(&provider),
			huh.NewInput().
				Key("modelName").
				Title("Model").
				Description("Leave empty to use the provider's default model.").
				Value(&model),
			huh.NewInput().
				Key("modelTemperature").
				Title("Temperature").
				Validate(validateTemperature).
				Value(&temperature),
			huh.NewConfirm().
				Key("modelConfirm").
				Title("Confirm").
				Description("Save this model settings?").
				Affirmative("Yes").
				Negative("Back"),
		),
	).
		WithWidth(m.formWidth).
		WithHeight(m.formHeight).
		WithTheme(huh.ThemeCatppuccin()).
		WithKeyMap(m.keymap.formKeymap).
		WithShowErrors(true).
		WithShowHelp(true)

	return m, m.modelForm.PrevField()
}

func validateTemperature(s string) error {
	t, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("temperature must be a number")
	}
	if t < 0 || t > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}

func (m mainModel) handleModelFormEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateFormSize()
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.back) {
			return m.setViewState(viewStateOptions).updateOptionsSize(), nil
		}
	}

	form, cmd := m.modelForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.modelForm = f
	}

	if m.modelForm.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.modelForm.GetBool("modelConfirm") {
		return m.setViewState(viewStateOptions).updateOptionsSize(), nil
	}

	temperature, _ := strconv.ParseFloat(strings.TrimSpace(m.modelForm.GetString("modelTemperature")), 64)
	setting := modelSetting{
		Provider:    m.modelForm.GetString("modelProvider"),
		Model:       strings.TrimSpace(m.modelForm.GetString("modelName")),
		Temperature: temperature,
	}

	if err := saveModelSetting(m.db, setting); err != nil {
		m.err = fmt.Errorf("error saving model settings: %w", err)
		return m.updateFormSize(), nil
	}
	m.modelSetting = setting

	return m.refreshCompleter().initOptions().setViewState(viewStateOptions).updateOptionsSize(), nil
}

func (m mainModel) modelFormView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		logoView(),
		titleStyle.Render("Model"),
		m.modelForm.View(),
	)
}

// refreshCompleter rebuilds the session's completer from the current settings.
func (m mainModel) refreshCompleter() mainModel {
	c, err := completerFromSetting(m.modelSetting, m.providers)
	if err != nil {
		m.session.setCompleter(nil)
		m.err = err
		return m
	}

	m.session.setCompleter(c)
	m.err = nil
	return m
}
