package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(newTestStore(t))
}

// stubTagService records auto-tag calls and can stamp a fixed tag.
type stubTagService struct {
	limit      int
	autoTagged []string
	cleanups   int
	assign     string
}

func (s *stubTagService) AutoTag(n *Note, limit int) {
	s.autoTagged = append(s.autoTagged, n.Title)
	if s.assign != "" {
		n.AddTag(Tag{Name: s.assign, Color: "1"})
	}
	_ = limit
}

func (s *stubTagService) AutoTagLimit() int { return s.limit }

func (s *stubTagService) CleanupUnusedTags() { s.cleanups++ }

func TestAddNoteRejectsBlankTitle(t *testing.T) {
	lib := newTestLibrary(t)

	assert.False(t, lib.AddNote(NewNote("", "content", nil)))
	assert.False(t, lib.AddNote(NewNote("   ", "content", nil)))
	assert.Equal(t, 0, lib.Len())
}

func TestAddNoteRejectsDuplicateTitleCaseInsensitive(t *testing.T) {
	lib := newTestLibrary(t)

	assert.True(t, lib.AddNote(NewNote("Meeting", "discuss budget", nil)))
	assert.False(t, lib.AddNote(NewNote("meeting", "other", nil)))
	assert.Equal(t, 1, lib.Len())
}

func TestAddNoteAutoTagsBeforePersisting(t *testing.T) {
	store := newTestStore(t)
	lib := NewLibrary(store)
	lib.SetTagService(&stubTagService{limit: 3, assign: "auto"})

	require.True(t, lib.AddNote(NewNote("Shopping", "buy milk", nil)))

	persisted := store.LoadNotes()
	require.Len(t, persisted, 1)
	assert.Equal(t, []string{"auto"}, persisted[0].TagNames())
}

func TestNotesReturnsCopy(t *testing.T) {
	lib := newTestLibrary(t)
	require.True(t, lib.AddNote(NewNote("One", "", nil)))

	got := lib.Notes()
	got[0] = nil
	got = append(got, NewNote("ghost", "", nil))
	_ = got

	fresh := lib.Notes()
	require.Len(t, fresh, 1)
	assert.Equal(t, "One", fresh[0].Title)
}

func TestDeleteThenUndoRestoresNote(t *testing.T) {
	lib := newTestLibrary(t)
	n := NewNote("Keep", "body", []Tag{{Name: "work", Color: "4"}})
	require.True(t, lib.AddNote(n))

	removed := lib.DeleteNote(n)
	require.NotNil(t, removed)
	assert.Equal(t, 0, lib.Len())

	assert.True(t, lib.UndoDelete())
	require.Equal(t, 1, lib.Len())
	restored := lib.Notes()[0]
	assert.Equal(t, "Keep", restored.Title)
	assert.Equal(t, "body", restored.Content)
	assert.Equal(t, []string{"work"}, restored.TagNames())

	assert.False(t, lib.UndoDelete(), "second undo without a delete must fail")
}

func TestDeleteAbsentNoteReturnsNil(t *testing.T) {
	lib := newTestLibrary(t)
	require.True(t, lib.AddNote(NewNote("Present", "", nil)))

	assert.Nil(t, lib.DeleteNote(NewNote("Absent", "", nil)))
	assert.Equal(t, 1, lib.Len())
}

func TestDeleteOverwritesUndoSlot(t *testing.T) {
	lib := newTestLibrary(t)
	a := NewNote("A", "", nil)
	b := NewNote("B", "", nil)
	require.True(t, lib.AddNote(a))
	require.True(t, lib.AddNote(b))

	lib.DeleteNote(a)
	lib.DeleteNote(b)

	require.True(t, lib.UndoDelete())
	titles := []string{}
	for _, n := range lib.Notes() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"B"}, titles, "only the last deletion is restorable")
}

func TestSearchBlankQueryReturnsAllNotes(t *testing.T) {
	lib := newTestLibrary(t)
	require.True(t, lib.AddNote(NewNote("Alpha", "x", nil)))
	require.True(t, lib.AddNote(NewNote("Beta", "y", nil)))

	assert.Len(t, lib.Search("", false, false, false), 2)
	assert.Len(t, lib.Search("   ", true, true, true), 2)
}

func TestSearchByContentOnly(t *testing.T) {
	lib := newTestLibrary(t)
	require.True(t, lib.AddNote(NewNote("Alpha", "contains banana", nil)))
	require.True(t, lib.AddNote(NewNote("Beta", "contains apple", nil)))

	got := lib.Search("banana", false, true, false)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Title)
}

func TestSearchByTitleOnlyIgnoresContentHits(t *testing.T) {
	lib := newTestLibrary(t)
	require.True(t, lib.AddNote(NewNote("banana bread", "recipe", nil)))
	require.True(t, lib.AddNote(NewNote("Other", "banana content", nil)))

	got := lib.Search("BANANA", true, false, false)
	require.Len(t, got, 1)
	assert.Equal(t, "banana bread", got[0].Title)
}

func TestSearchDeduplicatesAcrossFields(t *testing.T) {
	lib := newTestLibrary(t)
	n := NewNote("banana", "banana", []Tag{{Name: "banana"}})
	require.True(t, lib.AddNote(n))

	got := lib.Search("banana", true, true, true)
	assert.Len(t, got, 1)
}

func TestSearchByTagSubstring(t *testing.T) {
	lib := newTestLibrary(t)
	require.True(t, lib.AddNote(NewNote("A", "", []Tag{{Name: "groceries"}})))
	require.True(t, lib.AddNote(NewNote("B", "", []Tag{{Name: "work"}})))

	got := lib.Search("grocer", false, false, true)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}

func TestTogglePinPersists(t *testing.T) {
	store := newTestStore(t)
	lib := NewLibrary(store)
	n := NewNote("Pin me", "", nil)
	require.True(t, lib.AddNote(n))

	lib.TogglePin(n)
	assert.True(t, store.LoadNotes()[0].Pinned)

	lib.TogglePin(n)
	assert.False(t, store.LoadNotes()[0].Pinned)
}

func TestDeleteAllNotesClearsUndoAndCleansTags(t *testing.T) {
	lib := newTestLibrary(t)
	ts := &stubTagService{limit: 3}
	lib.SetTagService(ts)
	n := NewNote("Gone", "", nil)
	require.True(t, lib.AddNote(n))
	lib.DeleteNote(n)
	require.True(t, lib.AddNote(NewNote("Also gone", "", nil)))

	lib.DeleteAllNotes()

	assert.Equal(t, 0, lib.Len())
	assert.False(t, lib.UndoDelete())
	assert.Equal(t, 1, ts.cleanups)
}

func TestUpdateNotificationSettings(t *testing.T) {
	store := newTestStore(t)
	lib := NewLibrary(store)
	n := NewNote("Remind", "", nil)
	require.True(t, lib.AddNote(n))

	when := time.Now().Add(2 * time.Hour).Round(time.Second)
	lib.UpdateNotificationSettings(n, true, &when)

	got := store.LoadNotes()[0]
	assert.True(t, got.NotificationsEnabled)
	require.NotNil(t, got.NotificationDate)
	assert.True(t, when.Equal(*got.NotificationDate))
}

func TestLibraryLoadsPersistedNotes(t *testing.T) {
	store := newTestStore(t)
	lib := NewLibrary(store)
	require.True(t, lib.AddNote(NewNote("Persisted", "body", nil)))

	reopened := NewLibrary(store)
	require.Equal(t, 1, reopened.Len())
	assert.Equal(t, "Persisted", reopened.Notes()[0].Title)
}

func TestEnsureIDsBackfillsMissingIDs(t *testing.T) {
	store := newTestStore(t)
	legacy := &Note{Title: "Old data", Content: "no id"}
	require.NoError(t, store.SaveNotes([]*Note{legacy}))

	lib := NewLibrary(store)
	require.Equal(t, 1, lib.Len())
	assert.NotEmpty(t, lib.Notes()[0].ID)
	assert.NotEmpty(t, store.LoadNotes()[0].ID)
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	store := newTestStore(t)
	lib := NewLibrary(store)
	require.True(t, lib.AddNote(NewNote("Mine", "", nil)))

	external := append(store.LoadNotes(), NewNote("Theirs", "", nil))
	require.NoError(t, store.SaveNotes(external))

	lib.Reload()
	assert.Equal(t, 2, lib.Len())
}
