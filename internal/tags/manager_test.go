package tags

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/notes"
)

type fakeSettings struct {
	aiMode bool
	limit  int
	model  string
}

func (s fakeSettings) IsAIMode() bool           { return s.aiMode }
func (s fakeSettings) AutoTagLimit() int        { return s.limit }
func (s fakeSettings) SelectedModelKey() string { return s.model }

type fakeSecrets struct{ key string }

func (s fakeSecrets) APIKey() string { return s.key }

func newTestManager(t *testing.T, lib *memLibrary, gen TextGenerator, settings fakeSettings, secrets fakeSecrets, dispatch Dispatcher) *Manager {
	t.Helper()
	if dispatch == nil {
		dispatch = SyncDispatcher
	}
	return NewManager(lib, newMemColorStore(), testPalette, gen, settings, secrets, dispatch)
}

func TestAutoTagUsesKeywordsWhenAIDisabled(t *testing.T) {
	lib := &memLibrary{}
	gen := &fakeGenerator{reply: "ShouldNotBeUsed"}
	m := newTestManager(t, lib, gen, fakeSettings{aiMode: false, limit: 3}, fakeSecrets{key: "sk-x"}, nil)

	n := notes.NewNote("meeting", "", nil)
	lib.add(n)
	m.AutoTag(n, 3)

	assert.True(t, n.HasTag("Work"))
	assert.Empty(t, gen.lastPrompt, "AI service must not be called")
}

func TestAutoTagFallsBackToKeywordsWithoutCredential(t *testing.T) {
	lib := &memLibrary{}
	gen := &fakeGenerator{reply: "ShouldNotBeUsed"}
	m := newTestManager(t, lib, gen, fakeSettings{aiMode: true, limit: 3}, fakeSecrets{key: "  "}, nil)

	n := notes.NewNote("meeting", "", nil)
	lib.add(n)
	m.AutoTag(n, 3)

	assert.True(t, n.HasTag("Work"))
	assert.Empty(t, gen.lastPrompt)
}

func TestAutoTagUsesAIWhenConfigured(t *testing.T) {
	lib := &memLibrary{}
	gen := &fakeGenerator{reply: "Travel"}
	dispatch, done := chanDispatcher()
	m := newTestManager(t, lib, gen, fakeSettings{aiMode: true, limit: 3, model: "gpt-4o-mini"}, fakeSecrets{key: "sk-x"}, dispatch)

	n := notes.NewNote("Oslo", "itinerary", nil)
	lib.add(n)
	m.AutoTag(n, 3)
	waitDelivery(t, done)

	assert.Equal(t, []string{"Travel"}, n.TagNames())
}

func TestAutoTagAIFailureSurfacesOneError(t *testing.T) {
	lib := &memLibrary{}
	gen := &fakeGenerator{err: errors.New("timeout")}
	dispatch, done := chanDispatcher()
	m := newTestManager(t, lib, gen, fakeSettings{aiMode: true, limit: 3}, fakeSecrets{key: "sk-x"}, dispatch)

	var errMsgs []string
	m.OnError = func(msg string) { errMsgs = append(errMsgs, msg) }

	n := notes.NewNote("a", "b", nil)
	lib.add(n)
	m.AutoTag(n, 3)
	waitDelivery(t, done)

	require.Len(t, errMsgs, 1)
	assert.Contains(t, errMsgs[0], "timeout")
	assert.Empty(t, n.Tags)
}

func TestSuggestTagsEmptyWhenAIUnconfigured(t *testing.T) {
	lib := &memLibrary{}
	m := newTestManager(t, lib, &fakeGenerator{reply: "x"}, fakeSettings{aiMode: false, limit: 3}, fakeSecrets{}, nil)

	called := false
	m.SuggestTags(notes.NewNote("a", "", nil), 3, func(s []string) {
		called = true
		assert.Empty(t, s)
	}, nil)

	assert.True(t, called)
}

func TestSuggestTagsDeliversCleanedList(t *testing.T) {
	lib := &memLibrary{}
	gen := &fakeGenerator{reply: "One, Two"}
	dispatch, done := chanDispatcher()
	m := newTestManager(t, lib, gen, fakeSettings{aiMode: true, limit: 3, model: "auto"}, fakeSecrets{key: "sk-x"}, dispatch)
	gen.models = []string{"gpt-4o"}

	var suggestions []string
	m.SuggestTags(notes.NewNote("a", "b", nil), 3, func(s []string) { suggestions = s }, nil)
	waitDelivery(t, done)

	assert.Equal(t, []string{"One", "Two"}, suggestions)
	assert.Equal(t, "gpt-4o", gen.lastModel)
}

func TestNewManagerPrimesExistingTagColors(t *testing.T) {
	lib := &memLibrary{}
	lib.add(notes.NewNote("a", "", []notes.Tag{{Name: "preexisting"}}))
	store := newMemColorStore()

	NewManager(lib, store, testPalette, nil, fakeSettings{limit: 3}, fakeSecrets{}, nil)

	assert.Contains(t, store.colors, "preexisting")
}

func TestManagerPassThroughs(t *testing.T) {
	lib := &memLibrary{}
	n := notes.NewNote("a", "", nil)
	lib.add(n)
	m := newTestManager(t, lib, nil, fakeSettings{limit: 3}, fakeSecrets{}, nil)

	m.SetTags(n, []string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, m.AllTagNames())

	m.RenameTag("x", "z")
	assert.True(t, n.HasTag("z"))

	m.DeleteTag("y")
	assert.False(t, n.HasTag("y"))

	m.MergeTags([]string{"z"}, "final")
	assert.Equal(t, []string{"final"}, n.TagNames())

	m.SetTagColor("final", "4")
	assert.Equal(t, "4", m.TagColorFor("final"))

	require.NotEmpty(t, m.AvailableColors())
	assert.Len(t, m.FilterNotesByTags([]string{"final"}), 1)
}

func TestAutoTagLimitComesFromSettings(t *testing.T) {
	m := newTestManager(t, &memLibrary{}, nil, fakeSettings{limit: 7}, fakeSecrets{}, nil)
	assert.Equal(t, 7, m.AutoTagLimit())
}
