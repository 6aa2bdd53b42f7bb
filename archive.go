package main

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m mainModel) initArchive() mainModel {
	m.archiveList = defaultList("Previous Chats", m.keymap, func() []key.Binding {
		return []key.Binding{
			m.keymap.new,
			m.keymap.options,
		}
	}, func() []key.Binding {
		return []key.Binding{
			m.keymap.new,
			m.keymap.pick,
			m.keymap.options,
			m.keymap.back,
		}
	})
	m.archiveList.SetShowStatusBar(false)

	return m.refreshArchiveItems()
}

// refreshArchiveItems lists the archive newest first.
func (m mainModel) refreshArchiveItems() mainModel {
	archive := m.session.archive

	items := make([]list.Item, len(archive))
	for i := range archive {
		items[i] = archive[len(archive)-1-i]
	}
	m.archiveList.SetItems(items)

	return m
}

// enterArchive shows the previous chats. Showing the list drops any language
// override, so automatic detection resumes on the next turn.
func (m mainModel) enterArchive() mainModel {
	m.session.clearLanguageOverride()

	return m.refreshArchiveItems().
		setViewState(viewStateArchive).
		updateArchiveSize()
}

func (m mainModel) updateArchiveSize() mainModel {
	height := m.height - logoHeight()

	if m.err != nil {
		height -= errHeight(m.width, m.err)
	}

	m.archiveList.SetSize(m.width, max(height, 0))
	return m
}

func (m mainModel) handleArchiveEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateArchiveSize()
	case tea.KeyMsg:
		if m.archiveList.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keymap.back):
			return m.setViewState(viewStateChat).updateChatSize(), nil
		case key.Matches(msg, m.keymap.new):
			m.session.startNewChat()
			m.chatTextArea.Reset()
			m.chatTextArea.Focus()
			return m.setViewState(viewStateChat).updateChatSize(), nil
		case key.Matches(msg, m.keymap.options):
			return m.setViewState(viewStateOptions).updateOptionsSize(), nil
		case key.Matches(msg, m.keymap.pick):
			return m.selectArchived(m.archiveList.Index())
		}
	}

	var cmd tea.Cmd
	m.archiveList, cmd = m.archiveList.Update(msg)
	return m, cmd
}

func (m mainModel) selectArchived(listIndex int) (mainModel, tea.Cmd) {
	// The list is reversed relative to the archive.
	index := len(m.session.archive) - 1 - listIndex
	if !m.session.restoreArchivedChat(index) {
		return m, nil
	}

	m.err = nil
	m.notice = ""
	m.chatTextArea.Reset()
	m.chatTextArea.Focus()

	return m.setViewState(viewStateChat).updateChatSize(), nil
}

func (m mainModel) archiveView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		logoView(),
		m.archiveList.View(),
	)
}
