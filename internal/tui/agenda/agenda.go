package agenda

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quicknotes/internal/notes"
	"quicknotes/internal/reminders"
	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/shared"
	"quicknotes/internal/tui/theme"
)

const upcomingWindow = 7 * 24 * time.Hour

var (
	titleStyle   = theme.Title
	sectionStyle = theme.Subtitle
	dueStyle     = theme.Error
	soonStyle    = theme.Warn
	laterStyle   = theme.Muted
	cursorStyle  = theme.Cursor
	dateStyle    = theme.Muted
	emptyStyle   = theme.Muted
	helpStyle    = theme.HelpHint
)

// Model shows notes with reminders, due ones first.
type Model struct {
	lib *notes.Library

	due      []*notes.Note
	upcoming []*notes.Note
	later    []*notes.Note
	flat     []*notes.Note
	cursor   int

	width  int
	height int
}

// New creates the reminder agenda view.
func New(lib *notes.Library) Model {
	m := Model{lib: lib}
	m.Refresh()
	return m
}

// SetSize updates the dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh rebuilds the due and upcoming buckets.
func (m *Model) Refresh() {
	now := time.Now()
	all := m.lib.Notes()

	m.due = reminders.Due(all, now)
	m.upcoming = reminders.Upcoming(all, now, upcomingWindow)

	cutoff := now.Add(upcomingWindow)
	m.later = nil
	for _, n := range reminders.Scheduled(all) {
		if n.NotificationDate != nil && n.NotificationDate.After(cutoff) {
			m.later = append(m.later, n)
		}
	}

	m.flat = nil
	m.flat = append(m.flat, m.due...)
	m.flat = append(m.flat, m.upcoming...)
	m.flat = append(m.flat, m.later...)

	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsInModalState is always false; the agenda has no modal state.
func (m Model) IsInModalState() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.flat) {
			id := m.flat[m.cursor].ID
			return m, func() tea.Msg { return messages.EditNoteMsg{NoteID: id} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Reminders") + "\n\n")

	if len(m.flat) == 0 {
		s.WriteString(shared.CenterContent(emptyStyle.Render("No reminders scheduled. Enable one from the note editor."), m.height-3))
		return shared.FitToHeight(s.String(), m.height)
	}

	index := 0
	render := func(header string, list []*notes.Note, style func(*notes.Note) string) {
		if len(list) == 0 {
			return
		}
		s.WriteString(sectionStyle.Render(header) + "\n")
		for _, n := range list {
			cursor := "  "
			if index == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			s.WriteString(cursor + style(n) + "\n")
			index++
		}
		s.WriteString("\n")
	}

	render("Due", m.due, func(n *notes.Note) string {
		return dueStyle.Render(n.Title) + "  " + dateStyle.Render(formatDate(n))
	})
	render("Next 7 days", m.upcoming, func(n *notes.Note) string {
		return soonStyle.Render(n.Title) + "  " + dateStyle.Render(formatDate(n))
	})
	render("Later", m.later, func(n *notes.Note) string {
		return laterStyle.Render(n.Title) + "  " + dateStyle.Render(formatDate(n))
	})

	s.WriteString(helpStyle.Render("jk: navigate  enter: open note"))

	return shared.FitToHeight(s.String(), m.height)
}

func formatDate(n *notes.Note) string {
	if n.NotificationDate == nil {
		return ""
	}
	return n.NotificationDate.Format("Mon Jan 2 15:04")
}
