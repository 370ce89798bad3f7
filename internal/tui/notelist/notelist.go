package notelist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/notes"
	"quicknotes/internal/tags"
	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/shared"
	"quicknotes/internal/tui/theme"
)

// SearchScope selects which note fields a search query runs against.
type SearchScope int

const (
	ScopeAll SearchScope = iota
	ScopeTitle
	ScopeContent
	ScopeTag
)

func (s SearchScope) String() string {
	switch s {
	case ScopeTitle:
		return "title"
	case ScopeContent:
		return "content"
	case ScopeTag:
		return "tag"
	default:
		return "all"
	}
}

func (s SearchScope) fields() (byTitle, byContent, byTag bool) {
	switch s {
	case ScopeTitle:
		return true, false, false
	case ScopeContent:
		return false, true, false
	case ScopeTag:
		return false, false, true
	default:
		return true, true, true
	}
}

// Model is the main note list view with inline search and a filter
// by tag applied from the tag browser.
type Model struct {
	lib *notes.Library
	mgr *tags.Manager

	display []*notes.Note
	cursor  int
	scroll  int

	searchActive bool
	searchTyping bool
	searchInput  textinput.Model
	scope        SearchScope

	filterTags []string

	confirm *shared.ConfirmationModal

	width  int
	height int
}

// New creates the note list view.
func New(lib *notes.Library, mgr *tags.Manager) Model {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 100
	si.Width = 40

	m := Model{
		lib:         lib,
		mgr:         mgr,
		searchInput: si,
	}
	m.Refresh()
	return m
}

// SetSize updates the dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// FilterByTags restricts the list to notes carrying any of the given
// tags. An empty slice clears the filter.
func (m *Model) FilterByTags(names []string) {
	m.filterTags = names
	m.Refresh()
}

// Refresh rebuilds the display list from the library, keeping the
// cursor on the same note when it survives the rebuild.
func (m *Model) Refresh() {
	var focusID string
	if m.cursor >= 0 && m.cursor < len(m.display) {
		focusID = m.display[m.cursor].ID
	}

	var list []*notes.Note
	query := strings.TrimSpace(m.searchInput.Value())
	if m.searchActive && query != "" {
		byTitle, byContent, byTag := m.scope.fields()
		list = m.lib.Search(query, byTitle, byContent, byTag)
	} else {
		list = m.lib.Notes()
	}

	if len(m.filterTags) > 0 {
		filtered := m.mgr.FilterNotesByTags(m.filterTags)
		allowed := make(map[string]struct{}, len(filtered))
		for _, n := range filtered {
			allowed[n.ID] = struct{}{}
		}
		kept := list[:0:0]
		for _, n := range list {
			if _, ok := allowed[n.ID]; ok {
				kept = append(kept, n)
			}
		}
		list = kept
	}

	// Pinned notes first, then most recently modified.
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Pinned != list[j].Pinned {
			return list[i].Pinned
		}
		return list[i].LastModified.After(list[j].LastModified)
	})

	m.display = list
	m.cursor = 0
	for i, n := range list {
		if n.ID == focusID {
			m.cursor = i
			break
		}
	}
	m.ensureCursorVisible()
}

// Selected returns the note under the cursor, or nil.
func (m Model) Selected() *notes.Note {
	if m.cursor >= 0 && m.cursor < len(m.display) {
		return m.display[m.cursor]
	}
	return nil
}

// IsInModalState reports whether a modal or the search input owns the
// keyboard, so the root model should not intercept navigation keys.
func (m Model) IsInModalState() bool {
	return m.confirm != nil || m.searchTyping
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.ConfirmationResultMsg:
		modal := m.confirm
		m.confirm = nil
		if modal == nil || !msg.Confirmed {
			return m, nil
		}
		n := m.Selected()
		if n == nil {
			return m, nil
		}
		deleted := m.lib.DeleteNote(n)
		m.Refresh()
		if deleted != nil {
			return m, messages.Status(fmt.Sprintf("Deleted %q (u to undo)", deleted.Title))
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m, m.confirm.Update(msg)
		}
		if m.searchTyping {
			return m.handleSearchTyping(msg)
		}
		return m.handleNavigation(msg)
	}

	if m.searchTyping {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchTyping(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.searchTyping = false
		m.searchActive = false
		m.Refresh()
		return m, nil

	case "enter":
		m.searchInput.Blur()
		m.searchTyping = false
		return m, nil

	case "ctrl+f":
		m.scope = (m.scope + 1) % 4
		m.Refresh()
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.Refresh()
		return m, cmd
	}
}

func (m Model) handleNavigation(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.display)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case "g":
		m.cursor = 0
		m.ensureCursorVisible()
		return m, nil

	case "G":
		if len(m.display) > 0 {
			m.cursor = len(m.display) - 1
			m.ensureCursorVisible()
		}
		return m, nil

	case "/":
		m.searchActive = true
		m.searchTyping = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.searchActive {
			m.searchInput.SetValue("")
			m.searchActive = false
			m.Refresh()
			return m, nil
		}
		if len(m.filterTags) > 0 {
			m.filterTags = nil
			m.Refresh()
			return m, messages.Status("Tag filter cleared")
		}
		return m, nil

	case "n":
		return m, func() tea.Msg { return messages.EditNoteMsg{} }

	case "enter":
		if n := m.Selected(); n != nil {
			id := n.ID
			return m, func() tea.Msg { return messages.EditNoteMsg{NoteID: id} }
		}
		return m, nil

	case "p":
		if n := m.Selected(); n != nil {
			m.lib.TogglePin(n)
			m.Refresh()
		}
		return m, nil

	case "d":
		if n := m.Selected(); n != nil {
			m.confirm = shared.NewConfirmationModal(
				"Delete this note?",
				fmt.Sprintf("%q will be removed. The last deletion can be undone with u.", n.Title),
				min(60, m.width-4),
			)
		}
		return m, nil

	case "u":
		if m.lib.UndoDelete() {
			m.Refresh()
			return m, messages.Status("Restored deleted note")
		}
		return m, messages.Status("Nothing to undo")
	}

	return m, nil
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// visibleRows is the number of note lines that fit under the header.
func (m Model) visibleRows() int {
	return m.height - 4
}

func (m Model) View() string {
	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var s strings.Builder

	header := titleStyle.Render("Notes")
	if len(m.filterTags) > 0 {
		header += "  " + scopeStyle.Render("tag: "+strings.Join(m.filterTags, ", "))
	}
	s.WriteString(header + "\n")

	if m.searchActive {
		line := searchStyle.Render("/ ") + m.searchInput.View()
		line += "  " + scopeStyle.Render("["+m.scope.String()+"]")
		s.WriteString(line + "\n")
	} else {
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if len(m.display) == 0 {
		s.WriteString(shared.CenterContent(emptyStyle.Render("No notes. Press n to create one."), m.visibleRows()))
		return shared.FitToHeight(s.String(), m.height)
	}

	visible := m.visibleRows()
	end := m.scroll + visible
	if end > len(m.display) {
		end = len(m.display)
	}

	for i := m.scroll; i < end; i++ {
		s.WriteString(m.renderNote(i, m.display[i]) + "\n")
	}

	return shared.FitToHeight(s.String(), m.height)
}

func (m Model) renderNote(index int, n *notes.Note) string {
	cursor := "  "
	if index == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	pin := "  "
	if n.Pinned {
		pin = pinStyle.Render("* ")
	}

	title := n.Title
	style := noteTitleStyle
	if index == m.cursor {
		style = selectedStyle
	}

	line := cursor + pin + style.Render(title)

	var tagParts []string
	for _, t := range n.Tags {
		tagParts = append(tagParts, theme.TagStyle(m.mgr.TagColorFor(t.Name)).Render("#"+t.Name))
	}
	if len(tagParts) > 0 {
		line += "  " + strings.Join(tagParts, " ")
	}

	line += "  " + dateStyle.Render(n.LastModified.Format("Jan 2 15:04"))

	if snippet := firstLine(n.Content); snippet != "" && index == m.cursor {
		line += "\n      " + snippetStyle.Render(truncate(snippet, m.width-8))
	}

	return line
}

func firstLine(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content)
}

func truncate(s string, w int) string {
	if w <= 3 || len(s) <= w {
		return s
	}
	return s[:w-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
