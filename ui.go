package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

func defaultList(title string, km keymap, shortHelps, fullHelps func() []key.Binding) list.Model {
	l := list.New([]list.Item{}, listDelegate(), 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	// Remove horizontal padding from the title bar for consistency.
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.DisableQuitKeybindings()

	l.AdditionalShortHelpKeys = shortHelps
	l.AdditionalFullHelpKeys = fullHelps

	l.KeyMap.Quit = km.quit
	l.KeyMap.ShowFullHelp = km.openHelp
	l.KeyMap.CloseFullHelp = km.closeHelp

	return l
}

func listDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = listSelectedTitleStyle
	delegate.Styles.SelectedDesc = listDescSelectedStyle
	delegate.Styles.NormalTitle = listTitleStyle
	delegate.Styles.NormalDesc = listDescStyle

	return delegate
}

func logoView() string {
	return logoStyle.Render(logo)
}

func logoHeight() int {
	return lipgloss.Height(logoView())
}

func errView(width int, err error) string {
	return errorStyle.Render(fmt.Sprintf("Error: %s%s",
		err, strings.Repeat(" ", width)))
}

func errHeight(width int, err error) int {
	return lipgloss.Height(errView(width, err))
}

func noticeView(width int, notice string) string {
	return noticeStyle.Width(width).Render(notice)
}

// logo is generated at https://patorjk.com/software/taag/#p=display&f=Standard&t=Zabaan
const logo = `
 _____     _                        
|__  /__ _| |__   __ _  __ _ _ __   
  / // _`+"`"+` | '_ \ / _`+"`"+` |/ _`+"`"+` | '_ \  
 / /| (_| | |_) | (_| | (_| | | | | 
/____\__,_|_.__/ \__,_|\__,_|_| |_| 
                                    
`

// These styles are based on the official Catppuccin palette:
// https://github.com/catppuccin/catppuccin#-palette
var (
	// General styles

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#e64553", Dark: "#f38ba8"}). // Red
			Bold(true).
			PaddingBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#e64553", Dark: "#f38ba8"}). // Red
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#dc8a78", Dark: "#f2cdcd"}). // Rosewater
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}). // Green
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#eff1f5", Dark: "#cdd6f4"}). // Text color (Base)
			Background(lipgloss.AdaptiveColor{Light: "#e64553", Dark: "#d20f39"}). // Red (darker variant)
			Bold(true).
			Padding(0, 1)

	// List styles

	listSelectedTitleStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				Foreground(lipgloss.AdaptiveColor{Light: "#e64553", Dark: "#f38ba8"}).       // Red
				BorderForeground(lipgloss.AdaptiveColor{Light: "#dc8a78", Dark: "#f2cdcd"}). // Rosewater
				Padding(0, 0, 0, 1)

	listDescSelectedStyle = listSelectedTitleStyle.
				Foreground(lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#a6adc8"}) // Overlay0

	listTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ea76cb", Dark: "#f5c2e7"}). // Pink
			Bold(true)

	listDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#a6adc8"}). // Overlay0
			Italic(true)

	// Chat styles

	chatEntityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ea76cb", Dark: "#f5c2e7"}). // Pink
			Bold(true)

	chatContentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"}). // Text
				Padding(0, 4)

	chatTextareaStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.AdaptiveColor{Light: "#dc8a78", Dark: "#f2cdcd"}). // Rosewater
				Padding(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#7287fd", Dark: "#b4befe"}). // Lavender
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)
)
