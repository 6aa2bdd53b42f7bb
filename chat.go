package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// turn is one entry of the transcript.
type turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

const minWrapWidth = 20

type turnResultMsg struct {
	turn  pendingTurn
	reply string
	err   error
}

func (m mainModel) initChat() mainModel {
	m.chatViewport = viewport.New(0, 0)
	m.chatViewport.KeyMap = m.keymap.chatViewportKeymap

	m.chatSpinner = spinner.New(spinner.WithSpinner(spinner.MiniDot))

	m.chatTextArea = textarea.New()
	m.chatTextArea.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return ""
	})
	m.chatTextArea.ShowLineNumbers = false
	m.chatTextArea.SetHeight(3)
	m.chatTextArea.Placeholder = "Type your message here..."
	m.chatTextArea.CharLimit = 0
	m.chatTextArea.KeyMap = m.keymap.chatTextAreaKeymap
	m.chatTextArea.Focus()

	m.chatMDRenderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithPreservedNewLines(),
		glamour.WithWordWrap(0),
	)

	return m
}

func (m mainModel) chatTitle() string {
	current := m.session.currentLanguage()
	title := fmt.Sprintf("Zabaan · %s", current.displayName())
	if override, ok := m.session.languageOverride(); ok {
		title = fmt.Sprintf("Zabaan · %s (fixed)", override.displayName())
	}
	return title
}

func (m mainModel) updateChatSize() mainModel {
	titleHeight := lipgloss.Height(titleStyle.Render(m.chatTitle()))
	textareaHeight := lipgloss.Height(chatTextareaStyle.Render(m.chatTextArea.View()))
	helpHeight := lipgloss.Height(m.helpModel.View(m.keymap))

	newHeight := m.height - titleHeight - textareaHeight - helpHeight
	if m.err != nil {
		newHeight -= errHeight(m.width, m.err)
	}
	if m.notice != "" {
		newHeight -= lipgloss.Height(noticeView(m.width, m.notice))
	}
	m.chatViewport.Width = m.width
	m.chatViewport.Height = max(newHeight, 0)

	m.chatTextArea.SetWidth(max(m.width-chatTextareaStyle.GetHorizontalFrameSize(), 0))

	var sb strings.Builder
	for _, t := range m.session.transcript {
		content := wordwrap.String(t.Content, max(m.width-10, minWrapWidth))
		if t.Role == roleAssistant && m.chatMDRenderer != nil {
			if rc, err := m.chatMDRenderer.Render(content); err == nil {
				content = rc
			}
		} else {
			content += "\n"
		}

		sb.WriteString(chatEntityStyle.Render(fmt.Sprintf("%s: ", displayName(t.Role))))
		sb.WriteString(chatContentStyle.Render(content))
		sb.WriteString("\n")
	}
	if m.session.turnInFlight {
		sb.WriteString(spinnerStyle.Render(m.chatSpinner.View()))
	}

	m.chatViewport.SetContent(sb.String())
	m.chatViewport.GotoBottom()

	return m
}

func (m mainModel) handleChatEvents(msg tea.Msg) (mainModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.updateChatSize()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.escape):
			m.err = nil
			m.notice = ""
			return m.enterArchive(), nil
		case key.Matches(msg, m.keymap.submit):
			return m.sendChat()
		case key.Matches(msg, m.keymap.newChat):
			m.session.startNewChat()
			m.chatTextArea.Reset()
			m.chatTextArea.Focus()
			m.err = nil
			m.notice = ""
			return m.updateChatSize(), nil
		case key.Matches(msg, m.keymap.export):
			return m.exportChat().updateChatSize(), nil
		case key.Matches(msg, m.keymap.language):
			return m.setViewState(viewStateLanguageForm).
				updateFormSize().
				newLanguageForm()
		case key.Matches(msg, m.keymap.options):
			return m.setViewState(viewStateOptions).updateOptionsSize(), nil
		case key.Matches(msg, m.keymap.openHelp):
			m.keymap.openHelp.SetEnabled(false)
			m.keymap.closeHelp.SetEnabled(true)
			m.helpModel.ShowAll = true
			return m.updateChatSize(), nil
		case key.Matches(msg, m.keymap.closeHelp):
			m.keymap.closeHelp.SetEnabled(false)
			m.keymap.openHelp.SetEnabled(true)
			m.helpModel.ShowAll = false
			return m.updateChatSize(), nil
		}
	case spinner.TickMsg:
		if !m.session.turnInFlight {
			return m, nil
		}
		m.chatSpinner, cmd = m.chatSpinner.Update(msg)
		return m.updateChatSize(), cmd
	}

	m.chatTextArea, cmd = m.chatTextArea.Update(msg)
	cmds = append(cmds, cmd)

	m.chatViewport, cmd = m.chatViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m mainModel) sendChat() (mainModel, tea.Cmd) {
	p, err := m.session.beginTurn(m.chatTextArea.Value())
	switch {
	case errors.Is(err, errTurnInFlight), errors.Is(err, errEmptyMessage):
		return m, nil
	case errors.Is(err, errConfiguration):
		m.err = fmt.Errorf("%w: no provider is ready, configure one in options (ctrl+o)", errConfiguration)
		return m.updateChatSize(), nil
	case err != nil:
		m.err = err
		return m.updateChatSize(), nil
	}

	m.err = nil
	m.notice = ""
	m.chatTextArea.Reset()
	m.chatTextArea.Blur()

	timeout := m.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	send := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := p.convo.send(ctx, p.prompt)
		return turnResultMsg{
			turn:  p,
			reply: reply,
			err:   err,
		}
	}

	return m.updateChatSize(), tea.Batch(m.chatSpinner.Tick, send)
}

func (m mainModel) handleTurnResult(msg turnResultMsg) (mainModel, tea.Cmd) {
	err := m.session.endTurn(msg.turn, msg.reply, msg.err)
	if errors.Is(err, errStaleTurn) {
		return m, nil
	}
	m.err = err

	m.chatTextArea.Focus()

	if m.viewState != viewStateChat {
		return m, nil
	}
	return m.updateChatSize(), nil
}

func (m mainModel) exportChat() mainModel {
	path, err := writeTranscript(m.cfg.ExportDir, m.session.transcript)
	if err != nil {
		m.err = fmt.Errorf("error exporting transcript: %w", err)
		return m
	}

	m.err = nil
	m.notice = "Transcript saved to " + path
	return m
}

func (m mainModel) chatView() string {
	vs := []string{
		titleStyle.Render(m.chatTitle()),
		m.chatViewport.View(),
	}
	if m.notice != "" {
		vs = append(vs, noticeView(m.width, m.notice))
	}
	vs = append(vs,
		chatTextareaStyle.Render(m.chatTextArea.View()),
		m.helpModel.View(m.keymap),
	)

	return lipgloss.JoinVertical(lipgloss.Left, vs...)
}

func displayName(role string) string {
	if role == roleUser {
		return "You"
	}
	return "Assistant"
}
