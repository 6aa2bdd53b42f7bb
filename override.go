package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// autoDetect is the picker value that clears the override.
const autoDetect = "auto"

func (m mainModel) newLanguageForm() (mainModel, tea.Cmd) {
	selected := autoDetect
	if override, ok := m.session.languageOverride(); ok {
		selected = string(override)
	}

	options := make([]huh.Option[string], 0, len(languageTags)+1)
	options = append(options, huh.NewOption("Auto-detect", autoDetect))
	for _, tag := range languageTags {
		options = append(options, huh.NewOption(tag.label(), string(tag)))
	}

	m.languageForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("language").
				Title("Reply language").
				Description("A fixed language wins over detection until you open previous chats.").
				Options(options...).
				Value(&selected),
		),
	).
		WithWidth(m.formWidth).
		WithHeight(m.formHeight).
		WithTheme(huh.ThemeCatppuccin()).
		WithKeyMap(m.keymap.formKeymap).
		WithShowHelp(true)

	return m, m.languageForm.Init()
}

func (m mainModel) handleLanguageFormEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateFormSize()
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.back) {
			return m.setViewState(viewStateChat).updateChatSize(), nil
		}
	}

	form, cmd := m.languageForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.languageForm = f
	}

	if m.languageForm.State != huh.StateCompleted {
		return m, cmd
	}

	m = m.applyLanguageChoice(m.languageForm.GetString("language"))

	return m.setViewState(viewStateChat).updateChatSize(), nil
}

func (m mainModel) applyLanguageChoice(choice string) mainModel {
	tag, ok := parseLanguageTag(choice)
	if !ok {
		m.session.clearLanguageOverride()
		return m
	}

	m.session.setLanguageOverride(tag)
	return m
}

func (m mainModel) languageFormView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		logoView(),
		titleStyle.Render("Language"),
		m.languageForm.View(),
	)
}
