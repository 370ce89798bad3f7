package editor

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"quicknotes/internal/notes"
)

// TagPickerModel is a fuzzy-searchable multi-select picker over the
// tags known to the library, with inline creation of new tags.
type TagPickerModel struct {
	allTags    []string
	selected   map[string]bool
	textInput  textinput.Model
	query      string
	filtered   []string
	cursorPos  int
	showCreate bool
	filterMode bool
}

// NewTagPicker creates a picker pre-seeded with the note's current tags.
func NewTagPicker(allTags []string, current []string) TagPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 50
	ti.Width = 40
	ti.Blur()

	selected := make(map[string]bool, len(current))
	for _, name := range current {
		selected[name] = true
	}

	all := append([]string{}, allTags...)
	for _, name := range current {
		if !containsFold(all, name) {
			all = append(all, name)
		}
	}
	sort.Strings(all)

	return TagPickerModel{
		allTags:   all,
		selected:  selected,
		textInput: ti,
		filtered:  all,
	}
}

// Update handles picker events.
// Returns (model, cmd, isDone)
func (m TagPickerModel) Update(msg tea.Msg) (TagPickerModel, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.filterMode {
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd, false
		}
		return m, nil, false
	}

	if m.filterMode {
		switch keyMsg.String() {
		case "esc":
			m.textInput.SetValue("")
			m.query = ""
			m.filterItems()
			m.textInput.Blur()
			m.filterMode = false
			m.cursorPos = 0
			return m, nil, false

		case "enter":
			m.textInput.Blur()
			m.filterMode = false
			return m, nil, false

		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(keyMsg)
			m.query = m.textInput.Value()
			m.filterItems()
			m.cursorPos = 0
			return m, cmd, false
		}
	}

	switch keyMsg.String() {
	case "/":
		m.textInput.Focus()
		m.filterMode = true
		return m, textinput.Blink, false

	case "enter":
		return m, nil, true

	case "esc":
		if m.query != "" {
			m.textInput.SetValue("")
			m.query = ""
			m.filterItems()
			m.cursorPos = 0
			return m, nil, false
		}
		return m, nil, true

	case "tab", " ":
		m.toggleItem()
		return m, nil, false

	case "j", "down":
		maxPos := len(m.filtered) - 1
		if m.showCreate {
			maxPos++
		}
		if m.cursorPos < maxPos {
			m.cursorPos++
		}
		return m, nil, false

	case "k", "up":
		if m.cursorPos > 0 {
			m.cursorPos--
		}
		return m, nil, false
	}

	return m, nil, false
}

// View renders the picker
func (m TagPickerModel) View() string {
	var s strings.Builder

	s.WriteString(pickerTitleStyle.Render("Edit Tags"))
	s.WriteString("\n\n")

	if m.filterMode {
		s.WriteString(pickerTitleStyle.Render("Filtering: "))
	}
	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")

	if len(m.allTags) == 0 && !m.showCreate {
		s.WriteString(pickerItemStyle.Render("No tags yet. Type / and a name to create one."))
		s.WriteString("\n")
	} else if len(m.filtered) == 0 && !m.showCreate {
		s.WriteString(pickerItemStyle.Render("No matching tags"))
		s.WriteString("\n")
	} else {
		for i, item := range m.filtered {
			s.WriteString(m.renderItem(i, item))
		}
		if m.showCreate && m.query != "" {
			s.WriteString(m.renderCreateNew(len(m.filtered)))
		}
	}

	s.WriteString("\n")

	var help string
	if m.filterMode {
		help = pickerHelpStyle.Render("enter: apply filter • esc: cancel")
	} else {
		help = pickerHelpStyle.Render("jk: navigate • tab: toggle • /: filter • enter: save • esc: cancel")
	}
	s.WriteString(help)

	return pickerBoxStyle.Render(s.String())
}

func (m TagPickerModel) renderItem(index int, item string) string {
	checkbox := "[ ]"
	if m.selected[item] {
		checkbox = "[x]"
	}
	text := checkbox + " " + item

	style := pickerItemStyle
	if index == m.cursorPos {
		style = pickerHighlightStyle
	} else if m.selected[item] {
		style = pickerSelectedStyle
	}

	return style.Render(text) + "\n"
}

func (m TagPickerModel) renderCreateNew(index int) string {
	name := notes.NormalizeTagName(m.query)
	checkbox := "[ ]"
	if m.selected[name] {
		checkbox = "[x]"
	}
	text := checkbox + " + Create new: \"" + strings.TrimSpace(m.query) + "\""

	style := pickerCreateStyle
	if index == m.cursorPos {
		style = pickerHighlightStyle
	}

	return style.Render(text) + "\n"
}

// toggleItem toggles the item at the current cursor position
func (m *TagPickerModel) toggleItem() {
	if m.showCreate && m.cursorPos == len(m.filtered) {
		name := strings.TrimSpace(m.query)
		if name == "" {
			return
		}
		if m.selected[name] {
			delete(m.selected, name)
			return
		}
		m.selected[name] = true
		if !containsFold(m.allTags, name) {
			m.allTags = append(m.allTags, name)
			sort.Strings(m.allTags)
		}
		return
	}

	if m.cursorPos >= 0 && m.cursorPos < len(m.filtered) {
		item := m.filtered[m.cursorPos]
		if m.selected[item] {
			delete(m.selected, item)
		} else {
			m.selected[item] = true
		}
	}
}

func (m *TagPickerModel) filterItems() {
	if m.query == "" {
		m.filtered = m.allTags
		m.showCreate = false
		return
	}

	matches := fuzzy.Find(m.query, m.allTags)
	filtered := make([]string, len(matches))
	for i, match := range matches {
		filtered[i] = match.Str
	}
	m.filtered = filtered

	m.showCreate = !containsFold(m.allTags, m.query)
}

// SelectedTags returns the final selection, sorted for stable display.
func (m TagPickerModel) SelectedTags() []string {
	items := make([]string, 0, len(m.selected))
	for item := range m.selected {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

func containsFold(items []string, target string) bool {
	key := notes.NormalizeTagName(target)
	for _, item := range items {
		if notes.NormalizeTagName(item) == key {
			return true
		}
	}
	return false
}
