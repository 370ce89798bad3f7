package notelist

import (
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/tui/theme"
)

var (
	titleStyle     = theme.Title
	pinStyle       = theme.Pinned
	noteTitleStyle = lipgloss.NewStyle().Foreground(theme.Text)
	snippetStyle   = theme.Muted
	dateStyle      = theme.Muted
	cursorStyle    = theme.Cursor
	selectedStyle  = theme.SelectedBg
	searchStyle    = lipgloss.NewStyle().Foreground(theme.Success)
	scopeStyle     = lipgloss.NewStyle().Foreground(theme.Warning)
	emptyStyle     = theme.Muted
	helpStyle      = theme.HelpHint
)
