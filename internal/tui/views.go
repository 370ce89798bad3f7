package tui

import "quicknotes/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewNotes     = messages.ViewNotes
	ViewEditor    = messages.ViewEditor
	ViewTags      = messages.ViewTags
	ViewReminders = messages.ViewReminders
)

type SwitchViewMsg = messages.SwitchViewMsg
type EditNoteMsg = messages.EditNoteMsg
type NotesChangedMsg = messages.NotesChangedMsg
type StatusMsg = messages.StatusMsg
type ExecMsg = messages.ExecMsg
