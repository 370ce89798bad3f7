package tagbrowser

import (
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/tui/theme"
)

var (
	titleStyle  = theme.Title
	cursorStyle = theme.Cursor
	countStyle  = theme.Muted
	emptyStyle  = theme.Muted
	inputStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	modalStyle  = theme.ModalBox
	modalTitle  = theme.ModalTitle
	checkStyle  = lipgloss.NewStyle().Foreground(theme.Warning)
	helpStyle   = theme.HelpHint
)
