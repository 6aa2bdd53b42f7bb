package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	bolt "go.etcd.io/bbolt"
)

type mainModel struct {
	db      *bolt.DB
	cfg     config
	session *chatSession

	archiveList list.Model

	chatViewport   viewport.Model
	chatMDRenderer *glamour.TermRenderer
	chatSpinner    spinner.Model
	chatTextArea   textarea.Model

	optionsList list.Model

	providersList list.Model
	providerForm  *huh.Form
	modelForm     *huh.Form
	languageForm  *huh.Form

	helpModel help.Model

	providers             []llmProvider
	selectedProviderIndex int
	modelSetting          modelSetting

	keymap     keymap
	width      int
	height     int
	formWidth  int
	formHeight int

	viewState viewState
	notice    string
	err       error
}

type viewState int

const (
	viewStateChat viewState = iota
	viewStateArchive
	viewStateOptions
	viewStateProviders
	viewStateProviderForm
	viewStateModelForm
	viewStateLanguageForm
)

func initLogger(cfgPath string, level slog.Level) error {
	logPath := filepath.Join(cfgPath, "zabaan.log")
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating log file: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	handler := slog.NewJSONHandler(logFile, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading configuration: %w", err))
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal(fmt.Errorf("error creating data directory: %w", err))
	}

	if err := initLogger(cfg.DataDir, cfg.logLevel()); err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	slog.Info("starting zabaan application", "provider", cfg.Provider)

	db, err := bolt.Open(filepath.Join(cfg.DataDir, "zabaan.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Fatal(fmt.Errorf("error opening database: %w", err))
	}
	defer db.Close()

	if err := initKVDB(db); err != nil {
		log.Fatal(fmt.Errorf("error initializing kvdb: %w", err))
	}

	profile, err := loadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatal(fmt.Errorf("error loading language profile: %w", err))
	}

	m, err := newMainModel(db, cfg, profile, newWhatlangDetector())
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing model: %w", err))
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

func newMainModel(db *bolt.DB, cfg config, profile languageProfile, d detector) (mainModel, error) {
	m := mainModel{
		db:     db,
		cfg:    cfg,
		keymap: newKeymap(),
	}

	var err error

	m, err = m.initProviders()
	if err != nil {
		return mainModel{}, fmt.Errorf("failed to load llm providers: %w", err)
	}

	m.modelSetting, err = loadModelSetting(db, cfg.defaultModelSetting())
	if err != nil {
		return mainModel{}, fmt.Errorf("failed to load model setting: %w", err)
	}

	m.session = newChatSession(profile, d, nil)
	m = m.refreshCompleter()

	m.viewState = viewStateChat
	if m.session.completer == nil {
		m.viewState = viewStateOptions
	}
	m.keymap.viewState = m.viewState

	m = m.initChat()
	m = m.initArchive()
	m = m.initOptions()

	m.helpModel = help.New()

	return m, nil
}

func (mainModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.quit) {
			return m, tea.Quit
		}
	case turnResultMsg:
		// Handled here because the reply may arrive while another view is shown.
		return m.handleTurnResult(msg)
	}

	var cmd tea.Cmd

	switch m.viewState {
	case viewStateChat:
		m, cmd = m.handleChatEvents(msg)
	case viewStateArchive:
		m, cmd = m.handleArchiveEvents(msg)
	case viewStateOptions:
		m, cmd = m.handleOptionsEvents(msg)
	case viewStateProviders:
		m, cmd = m.handleProvidersEvents(msg)
	case viewStateProviderForm:
		m, cmd = m.handleProviderFormEvents(msg)
	case viewStateModelForm:
		m, cmd = m.handleModelFormEvents(msg)
	case viewStateLanguageForm:
		m, cmd = m.handleLanguageFormEvents(msg)
	}

	return m, cmd
}

func (m mainModel) View() string {
	var vs []string

	switch m.viewState {
	case viewStateChat:
		vs = append(vs, m.chatView())
	case viewStateArchive:
		vs = append(vs, m.archiveView())
	case viewStateOptions:
		vs = append(vs, m.optionsView())
	case viewStateProviders:
		vs = append(vs, m.providersView())
	case viewStateProviderForm:
		vs = append(vs, m.providerFormView())
	case viewStateModelForm:
		vs = append(vs, m.modelFormView())
	case viewStateLanguageForm:
		vs = append(vs, m.languageFormView())
	default:
		m.err = fmt.Errorf("unknown view state %d", m.viewState)
	}

	if m.err != nil {
		vs = append(vs, errView(m.width, m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, vs...)
}

func (m mainModel) setViewState(state viewState) mainModel {
	m.viewState = state
	m.keymap.viewState = state

	return m
}

func (m mainModel) updateFormSize() mainModel {
	titleHeight := lipgloss.Height(titleStyle.Render(""))
	height := m.height - logoHeight() - titleHeight

	if m.err != nil {
		height -= errHeight(m.width, m.err)
	}

	m.formWidth = m.width
	m.formHeight = max(height, 0)

	return m
}
