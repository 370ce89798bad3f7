package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/notes"
	"quicknotes/internal/tags"
	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/theme"
)

const reminderLayout = "2006-01-02 15:04"

type focusField int

const (
	focusTitle focusField = iota
	focusBody
	focusReminder
)

// suggestionsMsg carries AI tag suggestions back into the editor.
type suggestionsMsg struct {
	names []string
	err   string
}

// Model edits a single note. A nil note means a fresh one is created
// on save.
type Model struct {
	lib *notes.Library
	mgr *tags.Manager

	noteID   string
	title    textinput.Model
	body     textarea.Model
	reminder textinput.Model
	remindOn   bool
	tagNames   []string
	tagsEdited bool
	focus      focusField

	picker     *TagPickerModel
	suggesting bool
	suggestCh  chan suggestionsMsg
	suggested  []string
	suggestSel map[int]bool
	suggestCur int

	errText string
	width   int
	height  int
}

// New creates an editor. noteID selects the note to edit; pass the
// empty string to start a new note.
func New(lib *notes.Library, mgr *tags.Manager, noteID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 120
	ti.Width = 60
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.SetWidth(72)
	ta.SetHeight(12)

	ri := textinput.New()
	ri.Placeholder = reminderLayout
	ri.CharLimit = len(reminderLayout)
	ri.Width = 20

	m := Model{
		lib:      lib,
		mgr:      mgr,
		noteID:   noteID,
		title:    ti,
		body:     ta,
		reminder: ri,
	}

	if n := findNote(lib, noteID); n != nil {
		m.title.SetValue(n.Title)
		m.body.SetValue(n.Content)
		m.tagNames = n.TagNames()
		m.remindOn = n.NotificationsEnabled
		if n.NotificationDate != nil {
			m.reminder.SetValue(n.NotificationDate.Format(reminderLayout))
		}
	}

	return m
}

func findNote(lib *notes.Library, id string) *notes.Note {
	if id == "" {
		return nil
	}
	for _, n := range lib.Notes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// SetSize updates the dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	bw := width - 6
	if bw > 100 {
		bw = 100
	}
	if bw > 10 {
		m.body.SetWidth(bw)
	}
	bh := height - 12
	if bh >= 3 {
		m.body.SetHeight(bh)
	}
}

// IsInModalState reports whether a sub-component owns the keyboard.
func (m Model) IsInModalState() bool { return true }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		m.suggesting = false
		if msg.err != "" {
			m.errText = msg.err
			return m, nil
		}
		if len(msg.names) == 0 {
			return m, messages.Status("No tag suggestions")
		}
		m.suggested = msg.names
		m.suggestSel = make(map[int]bool, len(msg.names))
		for i := range msg.names {
			m.suggestSel[i] = true
		}
		m.suggestCur = 0
		return m, nil

	case tea.KeyMsg:
		if m.picker != nil {
			picker, cmd, done := m.picker.Update(msg)
			m.picker = &picker
			if done {
				m.tagNames = picker.SelectedTags()
				m.tagsEdited = true
				m.picker = nil
			}
			return m, cmd
		}
		if m.suggested != nil {
			return m.handleSuggestKeys(msg)
		}
		return m.handleKeys(msg)
	}

	// Cursor blink and friends go to the focused component.
	return m.updateFocused(msg)
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, messages.SwitchView(messages.ViewNotes)

	case "tab":
		m.focus = (m.focus + 1) % 3
		if !m.remindOn && m.focus == focusReminder {
			m.focus = focusTitle
		}
		m.applyFocus()
		return m, nil

	case "shift+tab":
		if m.focus == focusTitle {
			m.focus = focusBody
		} else {
			m.focus--
		}
		if !m.remindOn && m.focus == focusReminder {
			m.focus = focusBody
		}
		m.applyFocus()
		return m, nil

	case "ctrl+e":
		picker := NewTagPicker(m.mgr.AllTagNames(), m.tagNames)
		m.picker = &picker
		return m, nil

	case "ctrl+r":
		m.remindOn = !m.remindOn
		if m.remindOn && m.reminder.Value() == "" {
			m.reminder.SetValue(time.Now().Add(time.Hour).Format(reminderLayout))
		}
		if !m.remindOn && m.focus == focusReminder {
			m.focus = focusTitle
			m.applyFocus()
		}
		return m, nil

	case "ctrl+t":
		return m.startSuggest()

	case "ctrl+s":
		return m.save()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusBody:
		m.body, cmd = m.body.Update(msg)
	case focusReminder:
		m.reminder, cmd = m.reminder.Update(msg)
	}
	return m, cmd
}

func (m *Model) applyFocus() {
	m.title.Blur()
	m.body.Blur()
	m.reminder.Blur()
	switch m.focus {
	case focusTitle:
		m.title.Focus()
	case focusBody:
		m.body.Focus()
	case focusReminder:
		m.reminder.Focus()
	}
}

// startSuggest asks the tag coordinator for AI suggestions. The reply
// arrives through a channel bridged back into the event loop by the
// returned command.
func (m Model) startSuggest() (Model, tea.Cmd) {
	if m.suggesting {
		return m, nil
	}
	m.errText = ""
	m.suggesting = true
	ch := make(chan suggestionsMsg, 1)
	m.suggestCh = ch

	var current []notes.Tag
	for _, name := range m.tagNames {
		current = append(current, notes.Tag{Name: name})
	}
	draft := notes.NewNote(m.title.Value(), m.body.Value(), current)

	m.mgr.SuggestTags(draft, m.mgr.AutoTagLimit(),
		func(names []string) { ch <- suggestionsMsg{names: names} },
		func(errMsg string) { ch <- suggestionsMsg{err: errMsg} },
	)

	return m, func() tea.Msg { return <-ch }
}

func (m Model) handleSuggestKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.suggested = nil
		m.suggestSel = nil
		return m, nil

	case "j", "down":
		if m.suggestCur < len(m.suggested)-1 {
			m.suggestCur++
		}
		return m, nil

	case "k", "up":
		if m.suggestCur > 0 {
			m.suggestCur--
		}
		return m, nil

	case "tab", " ":
		m.suggestSel[m.suggestCur] = !m.suggestSel[m.suggestCur]
		return m, nil

	case "enter":
		added := 0
		for i, name := range m.suggested {
			if !m.suggestSel[i] {
				continue
			}
			if !containsFold(m.tagNames, name) {
				m.tagNames = append(m.tagNames, name)
				m.tagsEdited = true
				added++
			}
		}
		m.suggested = nil
		m.suggestSel = nil
		if added > 0 {
			return m, messages.Status(fmt.Sprintf("Added %d suggested tag(s)", added))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) save() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	if title == "" {
		m.errText = "Title cannot be empty"
		return m, nil
	}
	if m.titleTaken(title) {
		m.errText = fmt.Sprintf("A note titled %q already exists", title)
		return m, nil
	}
	m.errText = ""

	var date *time.Time
	if m.remindOn {
		parsed, err := time.ParseInLocation(reminderLayout, strings.TrimSpace(m.reminder.Value()), time.Local)
		if err != nil {
			m.errText = "Reminder must be " + reminderLayout
			return m, nil
		}
		date = &parsed
	}

	n := findNote(m.lib, m.noteID)
	if n == nil {
		n = notes.NewNote(title, m.body.Value(), nil)
		if !m.lib.AddNote(n) {
			m.errText = "Could not add note"
			return m, nil
		}
		// Auto-tagging ran inside AddNote. When the user edited the
		// selection it wins, including over a freshly auto-assigned
		// tag they had already deselected.
		if m.tagsEdited {
			m.applyTagSelection(n)
			m.lib.Touch(n)
		}
	} else {
		n.Title = title
		n.Content = m.body.Value()
		m.applyTagSelection(n)
		m.lib.Touch(n)
	}

	m.lib.UpdateNotificationSettings(n, m.remindOn, date)

	return m, tea.Batch(
		messages.SwitchView(messages.ViewNotes),
		messages.Status(fmt.Sprintf("Saved %q", title)),
	)
}

// applyTagSelection makes the picker selection authoritative: tags the
// user deselected come off the note before the selection is applied.
func (m Model) applyTagSelection(n *notes.Note) {
	for _, name := range n.TagNames() {
		if !containsFold(m.tagNames, name) {
			n.RemoveTag(name)
		}
	}
	m.mgr.SetTags(n, m.tagNames)
	m.mgr.CleanupUnusedTags()
}

// titleTaken reports whether another note already uses the title.
func (m Model) titleTaken(title string) bool {
	for _, other := range m.lib.Notes() {
		if other.ID == m.noteID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(other.Title), title) {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	if m.picker != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}
	if m.suggested != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.suggestView())
	}

	var s strings.Builder

	heading := "New Note"
	if m.noteID != "" {
		heading = "Edit Note"
	}
	s.WriteString(titleStyle.Render(heading) + "\n\n")

	s.WriteString(labelStyle.Render("Title") + "\n")
	s.WriteString(m.title.View() + "\n\n")

	s.WriteString(labelStyle.Render("Content") + "\n")
	s.WriteString(m.body.View() + "\n\n")

	s.WriteString(labelStyle.Render("Tags") + " ")
	if len(m.tagNames) == 0 {
		s.WriteString(mutedStyle.Render("none"))
	} else {
		var parts []string
		for _, name := range m.tagNames {
			parts = append(parts, theme.TagStyle(m.mgr.TagColorFor(name)).Render("#"+name))
		}
		s.WriteString(strings.Join(parts, " "))
	}
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("Reminder") + " ")
	if m.remindOn {
		s.WriteString(m.reminder.View())
	} else {
		s.WriteString(mutedStyle.Render("off"))
	}
	s.WriteString("\n\n")

	if m.errText != "" {
		s.WriteString(errStyle.Render(m.errText) + "\n")
	}
	if m.suggesting {
		s.WriteString(mutedStyle.Render("Asking for tag suggestions...") + "\n")
	}

	s.WriteString(helpStyle.Render("tab: next field  ctrl+e: tags  ctrl+t: suggest  ctrl+r: reminder  ctrl+s: save  esc: cancel"))

	return s.String()
}

func (m Model) suggestView() string {
	var s strings.Builder
	s.WriteString(pickerTitleStyle.Render("Suggested Tags") + "\n\n")
	for i, name := range m.suggested {
		checkbox := "[ ]"
		if m.suggestSel[i] {
			checkbox = "[x]"
		}
		line := checkbox + " " + name
		style := pickerItemStyle
		if i == m.suggestCur {
			style = pickerHighlightStyle
		} else if m.suggestSel[i] {
			style = pickerSelectedStyle
		}
		s.WriteString(style.Render(line) + "\n")
	}
	s.WriteString("\n" + pickerHelpStyle.Render("jk: navigate • tab: toggle • enter: apply • esc: dismiss"))
	return suggestBoxStyle.Render(s.String())
}
