package notes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStoreRoundTripsNotes(t *testing.T) {
	store := newTestStore(t)

	when := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	n := NewNote("Meeting", "discuss budget", []Tag{{Name: "work", Color: "4"}})
	n.Pinned = true
	n.NotificationsEnabled = true
	n.NotificationDate = &when

	require.NoError(t, store.SaveNotes([]*Note{n}))

	loaded := store.LoadNotes()
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, "Meeting", got.Title)
	assert.Equal(t, "discuss budget", got.Content)
	assert.Equal(t, []string{"work"}, got.TagNames())
	assert.True(t, got.Pinned)
	assert.True(t, got.NotificationsEnabled)
	require.NotNil(t, got.NotificationDate)
	assert.True(t, when.Equal(*got.NotificationDate))
}

func TestStoreLoadMissingFilesReturnsEmpty(t *testing.T) {
	store := newTestStore(t)

	assert.Empty(t, store.LoadNotes())
	assert.Empty(t, store.LoadTagColors())
}

func TestStoreLoadCorruptFileReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.NotesPath(), []byte("{ not json"), 0644))

	assert.Empty(t, store.LoadNotes())
}

func TestStoreRoundTripsTagColors(t *testing.T) {
	store := newTestStore(t)

	colors := map[string]string{"work": "4", "home": "2"}
	require.NoError(t, store.SaveTagColors(colors))

	assert.Equal(t, colors, store.LoadTagColors())
}

func TestStoreWriteLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveNotes([]*Note{NewNote("a", "b", nil)}))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), tempFilePrefix)
	}
	_, err = os.Stat(filepath.Join(store.Dir(), notesFileName))
	assert.NoError(t, err)
}
