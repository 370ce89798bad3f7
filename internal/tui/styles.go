package tui

import (
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/tui/theme"
)

var (
	TitleStyle     = theme.Title
	StatusBarStyle = theme.StatusBar
	HelpStyle      = theme.HelpHint
	ErrorStyle     = lipgloss.NewStyle().Foreground(theme.Danger)
)
