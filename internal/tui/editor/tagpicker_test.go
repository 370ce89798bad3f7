package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTagPickerSeedsCurrentSelection(t *testing.T) {
	p := NewTagPicker([]string{"Work", "Home"}, []string{"Work"})

	assert.Equal(t, []string{"Work"}, p.SelectedTags())
}

func TestTagPickerToggleSelection(t *testing.T) {
	p := NewTagPicker([]string{"Home", "Work"}, nil)

	p, _, done := p.Update(keyMsg("tab"))
	assert.False(t, done)
	assert.Equal(t, []string{"Home"}, p.SelectedTags())

	p, _, _ = p.Update(keyMsg("tab"))
	assert.Empty(t, p.SelectedTags())
}

func TestTagPickerEnterFinishes(t *testing.T) {
	p := NewTagPicker([]string{"Home"}, nil)

	_, _, done := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
}

func TestTagPickerIncludesCurrentTagsMissingFromLibrary(t *testing.T) {
	// A tag only present on the note being edited still shows up.
	p := NewTagPicker([]string{"Work"}, []string{"Draft"})

	assert.Contains(t, p.allTags, "Draft")
	assert.Equal(t, []string{"Draft"}, p.SelectedTags())
}

func TestContainsFoldIgnoresCaseAndSpace(t *testing.T) {
	items := []string{"Work", "Home"}

	assert.True(t, containsFold(items, "  work "))
	assert.False(t, containsFold(items, "shopping"))
}
