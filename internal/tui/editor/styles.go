package editor

import (
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/tui/theme"
)

var (
	titleStyle = theme.Title
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	focusStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	mutedStyle = theme.Muted
	errStyle   = theme.Error
	helpStyle  = theme.HelpHint

	pickerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2)
	pickerTitleStyle     = theme.ModalTitle
	pickerItemStyle      = lipgloss.NewStyle().Foreground(theme.Text)
	pickerSelectedStyle  = lipgloss.NewStyle().Foreground(theme.Warning)
	pickerHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Success)
	pickerCreateStyle    = lipgloss.NewStyle().Foreground(theme.Success)
	pickerHelpStyle      = theme.ModalHelp

	suggestBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 2)
)
