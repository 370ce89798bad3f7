package messages

import tea "github.com/charmbracelet/bubbletea"

// ViewType represents the different views in the application
type ViewType int

const (
	ViewNotes ViewType = iota
	ViewEditor
	ViewTags
	ViewReminders
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// EditNoteMsg requests opening the editor for a specific note.
// An empty NoteID opens the editor on a fresh note.
type EditNoteMsg struct {
	NoteID string
}

// NotesChangedMsg signals that the note collection changed and views
// holding derived lists should rebuild them.
type NotesChangedMsg struct{}

// StatusMsg sets the transient message shown in the status bar.
type StatusMsg struct {
	Text    string
	IsError bool
}

// ExecMsg carries a closure produced outside the event loop. The root
// model runs Fn on the update goroutine so that library and tag state
// are only ever touched from one goroutine.
type ExecMsg struct {
	Fn func()
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

func StatusError(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsError: true}
	}
}
