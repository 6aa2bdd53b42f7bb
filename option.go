package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type optionItem struct {
	title       string
	description string
}

const (
	optionProvidersTitle = "Providers"
	optionModelTitle     = "Model"
	optionLanguageTitle  = "Language"
)

var optionItems = []optionItem{
	{
		title:       optionProvidersTitle,
		description: "Manages the credentials of the LLM providers",
	},
	{
		title:       optionModelTitle,
		description: "Selects the provider, model and temperature used for chats",
	},
	{
		title:       optionLanguageTitle,
		description: "Fixes the reply language or lets it be detected",
	},
}

func (m mainModel) initOptions() mainModel {
	items := make([]list.Item, len(optionItems))
	for i, item := range optionItems {
		it := item

		switch item.title {
		case optionProvidersTitle:
			if m.session.completer != nil {
				it.title += " (configured)"
			} else {
				it.title += " (not configured)"
			}
		case optionModelTitle:
			model := m.modelSetting.Model
			if model == "" {
				model = "default model"
			}
			it.title += fmt.Sprintf(" (%s, %s)", m.modelSetting.Provider, model)
		}

		items[i] = it
	}

	m.optionsList = defaultList("Options", m.keymap, func() []key.Binding {
		return []key.Binding{
			m.keymap.back,
		}
	}, func() []key.Binding {
		return []key.Binding{
			m.keymap.pick,
			m.keymap.back,
		}
	})
	m.optionsList.SetItems(items)
	m.optionsList.SetFilteringEnabled(false)
	m.optionsList.SetShowStatusBar(false)

	return m.updateOptionsSize()
}

func (m mainModel) updateOptionsSize() mainModel {
	height := m.height - logoHeight()

	if m.err != nil {
		height -= errHeight(m.width, m.err)
	}

	m.optionsList.SetSize(m.width, max(height, 0))
	return m
}

func (m mainModel) handleOptionsEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateOptionsSize()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.back):
			return m.setViewState(viewStateChat).updateChatSize(), nil
		case key.Matches(msg, m.keymap.pick):
			return m.selectOption(m.optionsList.Index())
		}
	}
	var cmd tea.Cmd
	m.optionsList, cmd = m.optionsList.Update(msg)
	return m, cmd
}

func (m mainModel) optionsView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		logoView(),
		m.optionsList.View(),
	)
}

func (m mainModel) selectOption(index int) (mainModel, tea.Cmd) {
	if index < 0 || index >= len(optionItems) {
		return m, nil
	}

	switch optionItems[index].title {
	case optionProvidersTitle:
		return m.setViewState(viewStateProviders).updateProvidersSize(), nil
	case optionModelTitle:
		return m.setViewState(viewStateModelForm).
			updateFormSize().
			newModelForm()
	case optionLanguageTitle:
		return m.setViewState(viewStateLanguageForm).
			updateFormSize().
			newLanguageForm()
	}
	return m, nil
}

func (c optionItem) Title() string {
	return c.title
}

func (c optionItem) Description() string {
	return c.description
}

func (c optionItem) FilterValue() string {
	return c.title
}
