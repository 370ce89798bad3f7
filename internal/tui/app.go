package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/notes"
	"quicknotes/internal/tags"
	"quicknotes/internal/tui/agenda"
	"quicknotes/internal/tui/editor"
	"quicknotes/internal/tui/notelist"
	"quicknotes/internal/tui/tagbrowser"
)

// AppModel is the root model that dispatches to child views
type AppModel struct {
	lib *notes.Library
	mgr *tags.Manager

	currentView  ViewType
	noteView     notelist.Model
	editorView   editor.Model
	editorOpen   bool
	tagView      tagbrowser.Model
	reminderView agenda.Model

	status      string
	statusIsErr bool
	showHelp    bool

	width  int
	height int
	ready  bool
}

// NewAppModel creates the root application model
func NewAppModel(lib *notes.Library, mgr *tags.Manager, defaultView string) AppModel {
	view := ViewNotes
	switch defaultView {
	case "tags":
		view = ViewTags
	case "reminders":
		view = ViewReminders
	}

	return AppModel{
		lib:          lib,
		mgr:          mgr,
		currentView:  view,
		noteView:     notelist.New(lib, mgr),
		tagView:      tagbrowser.New(mgr),
		reminderView: agenda.New(lib),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		m.noteView.SetSize(msg.Width, contentHeight)
		m.tagView.SetSize(msg.Width, contentHeight)
		m.reminderView.SetSize(msg.Width, contentHeight)
		if m.editorOpen {
			m.editorView.SetSize(msg.Width, contentHeight)
		}
		return m, nil

	case ExecMsg:
		// Deferred work from the auto-tagger arrives here so tag and
		// note state only changes on this goroutine.
		if msg.Fn != nil {
			msg.Fn()
		}
		m.refreshAll()
		return m, nil

	case NotesChangedMsg:
		m.lib.Reload()
		m.refreshAll()
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		m.statusIsErr = msg.IsError
		return m, nil

	case SwitchViewMsg:
		m.currentView = msg.View
		if msg.View != ViewEditor {
			m.editorOpen = false
		}
		m.refreshAll()
		return m, nil

	case EditNoteMsg:
		m.editorView = editor.New(m.lib, m.mgr, msg.NoteID)
		m.editorView.SetSize(m.width, m.height-3)
		m.editorOpen = true
		m.currentView = ViewEditor
		return m, nil

	case tagbrowser.FilterNotesMsg:
		m.noteView.FilterByTags([]string{msg.TagName})
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		m.status = ""

		// The editor and any modal own the keyboard entirely.
		if m.currentView != ViewEditor && !m.inModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewNotes
				m.noteView.Refresh()
				return m, nil
			case "2":
				m.currentView = ViewTags
				m.tagView.Refresh()
				return m, nil
			case "3":
				m.currentView = ViewReminders
				m.reminderView.Refresh()
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewNotes:
		m.noteView, cmd = m.noteView.Update(msg)
		return m, cmd
	case ViewEditor:
		if m.editorOpen {
			m.editorView, cmd = m.editorView.Update(msg)
			return m, cmd
		}
	case ViewTags:
		m.tagView, cmd = m.tagView.Update(msg)
		return m, cmd
	case ViewReminders:
		m.reminderView, cmd = m.reminderView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *AppModel) refreshAll() {
	m.noteView.Refresh()
	m.tagView.Refresh()
	m.reminderView.Refresh()
}

func (m AppModel) inModalState() bool {
	switch m.currentView {
	case ViewNotes:
		return m.noteView.IsInModalState()
	case ViewTags:
		return m.tagView.IsInModalState()
	}
	return false
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var content string
	switch m.currentView {
	case ViewNotes:
		content = m.noteView.View()
	case ViewEditor:
		if m.editorOpen {
			content = m.editorView.View()
		}
	case ViewTags:
		content = m.tagView.View()
	case ViewReminders:
		content = m.reminderView.View()
	}

	var statusText string
	switch {
	case m.status != "" && m.statusIsErr:
		statusText = ErrorStyle.Render(m.status)
	case m.status != "":
		statusText = m.status
	case m.currentView == ViewEditor:
		statusText = "Editor | ctrl+s: save | esc: cancel"
	default:
		statusText = "1:notes 2:tags 3:reminders | ?:help | q:quit"
	}

	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m AppModel) renderHelpOverlay() string {
	helpBoxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("4")).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	line := func(key, desc string) string {
		return "  " + keyStyle.Width(14).Render(key) + descStyle.Render(desc)
	}

	var content string
	content += sectionStyle.Render("QuickNotes - Keyboard Shortcuts") + "\n\n"

	content += sectionStyle.Render("Global Navigation") + "\n"
	content += line("1", "Note list") + "\n"
	content += line("2", "Tag browser") + "\n"
	content += line("3", "Reminders") + "\n"
	content += line("?", "Show this help") + "\n"
	content += line("q", "Quit") + "\n"
	content += line("ctrl+c", "Force quit") + "\n\n"

	content += sectionStyle.Render("Note List") + "\n"
	content += line("j / k", "Navigate notes") + "\n"
	content += line("enter", "Edit note") + "\n"
	content += line("n", "New note") + "\n"
	content += line("p", "Pin / unpin") + "\n"
	content += line("d", "Delete note") + "\n"
	content += line("u", "Undo last delete") + "\n"
	content += line("/", "Search (ctrl+f cycles field)") + "\n\n"

	content += sectionStyle.Render("Editor") + "\n"
	content += line("tab", "Next field") + "\n"
	content += line("ctrl+e", "Edit tags") + "\n"
	content += line("ctrl+t", "Suggest tags") + "\n"
	content += line("ctrl+r", "Toggle reminder") + "\n"
	content += line("ctrl+s", "Save") + "\n\n"

	content += sectionStyle.Render("Tag Browser") + "\n"
	content += line("enter", "Filter notes by tag") + "\n"
	content += line("r", "Rename tag") + "\n"
	content += line("m", "Merge tags") + "\n"
	content += line("c", "Change color") + "\n"
	content += line("d", "Delete tag") + "\n\n"

	content += HelpStyle.Render("Press any key to close")

	box := helpBoxStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
