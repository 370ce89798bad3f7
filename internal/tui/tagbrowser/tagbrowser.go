package tagbrowser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/tags"
	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/shared"
	"quicknotes/internal/tui/theme"
)

// FilterNotesMsg asks the note list to show only notes with the tag.
type FilterNotesMsg struct {
	TagName string
}

type mode int

const (
	modeBrowse mode = iota
	modeRename
	modeMerge
	modeColor
)

// Model lists every tag in use and applies rename, merge, delete and
// color changes through the tag coordinator.
type Model struct {
	mgr *tags.Manager

	names  []string
	counts map[string]int
	cursor int

	mode     mode
	input    textinput.Model
	mergeSel map[int]bool
	mergeCur int
	colorCur int
	confirm  *shared.ConfirmationModal

	width  int
	height int
}

// New creates the tag browser.
func New(mgr *tags.Manager) Model {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 30

	m := Model{mgr: mgr, input: ti}
	m.Refresh()
	return m
}

// SetSize updates the dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh rebuilds the tag list from the coordinator.
func (m *Model) Refresh() {
	m.names = m.mgr.AllTagNames()
	m.counts = make(map[string]int, len(m.names))
	for _, name := range m.names {
		m.counts[name] = len(m.mgr.FilterNotesByTags([]string{name}))
	}
	if m.cursor >= len(m.names) {
		m.cursor = len(m.names) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsInModalState reports whether a modal owns the keyboard.
func (m Model) IsInModalState() bool {
	return m.mode != modeBrowse || m.confirm != nil
}

func (m Model) selected() string {
	if m.cursor >= 0 && m.cursor < len(m.names) {
		return m.names[m.cursor]
	}
	return ""
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.ConfirmationResultMsg:
		modal := m.confirm
		m.confirm = nil
		if modal == nil || !msg.Confirmed {
			return m, nil
		}
		name := m.selected()
		if name == "" {
			return m, nil
		}
		m.mgr.DeleteTag(name)
		m.Refresh()
		return m, messages.Status(fmt.Sprintf("Deleted tag %q", name))

	case tea.KeyMsg:
		if m.confirm != nil {
			return m, m.confirm.Update(msg)
		}
		switch m.mode {
		case modeRename:
			return m.handleRename(msg)
		case modeMerge:
			return m.handleMerge(msg)
		case modeColor:
			return m.handleColor(msg)
		default:
			return m.handleBrowse(msg)
		}
	}

	if m.mode == modeRename {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		if name := m.selected(); name != "" {
			return m, tea.Batch(
				func() tea.Msg { return FilterNotesMsg{TagName: name} },
				messages.SwitchView(messages.ViewNotes),
			)
		}
		return m, nil

	case "r":
		if name := m.selected(); name != "" {
			m.mode = modeRename
			m.input.SetValue(name)
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "m":
		if m.selected() != "" && len(m.names) > 1 {
			m.mode = modeMerge
			m.mergeSel = make(map[int]bool)
			m.mergeCur = 0
		}
		return m, nil

	case "c":
		if m.selected() != "" {
			m.mode = modeColor
			m.colorCur = 0
			current := m.mgr.TagColorFor(m.selected())
			for i, opt := range m.mgr.AvailableColors() {
				if opt.Color == current {
					m.colorCur = i
					break
				}
			}
		}
		return m, nil

	case "d":
		if name := m.selected(); name != "" {
			m.confirm = shared.NewConfirmationModal(
				"Delete this tag?",
				fmt.Sprintf("%q will be removed from %d note(s).", name, m.counts[name]),
				min(60, m.width-4),
			)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleRename(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case "enter":
		oldName := m.selected()
		newName := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		if oldName == "" || newName == "" || strings.EqualFold(oldName, newName) {
			return m, nil
		}
		m.mgr.RenameTag(oldName, newName)
		m.Refresh()
		return m, messages.Status(fmt.Sprintf("Renamed %q to %q", oldName, newName))

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// mergeCandidates is every tag except the merge target.
func (m Model) mergeCandidates() []string {
	target := m.selected()
	out := make([]string, 0, len(m.names)-1)
	for _, name := range m.names {
		if name != target {
			out = append(out, name)
		}
	}
	return out
}

func (m Model) handleMerge(msg tea.KeyMsg) (Model, tea.Cmd) {
	candidates := m.mergeCandidates()
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil

	case "j", "down":
		if m.mergeCur < len(candidates)-1 {
			m.mergeCur++
		}
		return m, nil

	case "k", "up":
		if m.mergeCur > 0 {
			m.mergeCur--
		}
		return m, nil

	case "tab", " ":
		m.mergeSel[m.mergeCur] = !m.mergeSel[m.mergeCur]
		return m, nil

	case "enter":
		target := m.selected()
		var sources []string
		for i, name := range candidates {
			if m.mergeSel[i] {
				sources = append(sources, name)
			}
		}
		m.mode = modeBrowse
		if target == "" || len(sources) == 0 {
			return m, nil
		}
		m.mgr.MergeTags(sources, target)
		m.Refresh()
		return m, messages.Status(fmt.Sprintf("Merged %d tag(s) into %q", len(sources), target))
	}
	return m, nil
}

func (m Model) handleColor(msg tea.KeyMsg) (Model, tea.Cmd) {
	palette := m.mgr.AvailableColors()
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil

	case "j", "down":
		if m.colorCur < len(palette)-1 {
			m.colorCur++
		}
		return m, nil

	case "k", "up":
		if m.colorCur > 0 {
			m.colorCur--
		}
		return m, nil

	case "enter":
		name := m.selected()
		m.mode = modeBrowse
		if name == "" || m.colorCur >= len(palette) {
			return m, nil
		}
		opt := palette[m.colorCur]
		m.mgr.SetTagColor(name, opt.Color)
		return m, messages.Status(fmt.Sprintf("Set %q to %s", name, opt.Name))
	}
	return m, nil
}

func (m Model) View() string {
	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	switch m.mode {
	case modeRename:
		content := modalTitle.Render("Rename Tag") + "\n\n" +
			inputStyle.Render("New name: ") + m.input.View() + "\n\n" +
			helpStyle.Render("enter: rename • esc: cancel")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(content))

	case modeMerge:
		var s strings.Builder
		s.WriteString(modalTitle.Render(fmt.Sprintf("Merge into %q", m.selected())) + "\n\n")
		for i, name := range m.mergeCandidates() {
			checkbox := "[ ]"
			if m.mergeSel[i] {
				checkbox = "[x]"
			}
			line := checkbox + " " + name
			if i == m.mergeCur {
				line = cursorStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			if m.mergeSel[i] {
				line = checkStyle.Render(line)
			}
			s.WriteString(line + "\n")
		}
		s.WriteString("\n" + helpStyle.Render("jk: navigate • tab: toggle • enter: merge • esc: cancel"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(s.String()))

	case modeColor:
		var s strings.Builder
		s.WriteString(modalTitle.Render(fmt.Sprintf("Color for %q", m.selected())) + "\n\n")
		for i, opt := range m.mgr.AvailableColors() {
			line := theme.TagStyle(opt.Color).Render("## " + opt.Name)
			if i == m.colorCur {
				line = cursorStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			s.WriteString(line + "\n")
		}
		s.WriteString("\n" + helpStyle.Render("jk: navigate • enter: apply • esc: cancel"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(s.String()))
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Tags") + "\n\n")

	if len(m.names) == 0 {
		s.WriteString(shared.CenterContent(emptyStyle.Render("No tags in use."), m.height-3))
		return shared.FitToHeight(s.String(), m.height)
	}

	for i, name := range m.names {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		swatch := theme.TagStyle(m.mgr.TagColorFor(name)).Render("##")
		line := fmt.Sprintf("%s%s %s %s", cursor, swatch, name,
			countStyle.Render(fmt.Sprintf("(%d)", m.counts[name])))
		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("enter: filter notes  r: rename  m: merge  c: color  d: delete"))

	return shared.FitToHeight(s.String(), m.height)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
