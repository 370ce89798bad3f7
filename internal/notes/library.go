package notes

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"quicknotes/internal/logs"
)

// TagService is the slice of the tag subsystem the library needs: tagging a
// freshly added note and dropping color assignments when the collection is
// cleared. Wired after construction because the tag subsystem, in turn,
// operates on the library.
type TagService interface {
	AutoTag(n *Note, limit int)
	AutoTagLimit() int
	CleanupUnusedTags()
}

// Library is the single source of truth for the note collection. It loads
// notes from its Store at construction and re-persists the full list after
// every mutating operation. It is designed for a single owner; calls are
// expected to arrive from one goroutine.
type Library struct {
	store           *Store
	notes           []*Note
	recentlyDeleted *Note
	tags            TagService
}

// NewLibrary creates a library backed by store, loading any previously
// saved notes.
func NewLibrary(store *Store) *Library {
	lib := &Library{
		store: store,
		notes: store.LoadNotes(),
	}
	lib.ensureIDs()
	return lib
}

// SetTagService wires the tag subsystem used for auto-tagging on AddNote
// and for color cleanup on DeleteAllNotes.
func (l *Library) SetTagService(ts TagService) {
	l.tags = ts
}

// Notes returns a copy of the note list; mutating the returned slice never
// affects library state.
func (l *Library) Notes() []*Note {
	out := make([]*Note, len(l.notes))
	copy(out, l.notes)
	return out
}

// Len returns the number of notes in the library.
func (l *Library) Len() int {
	return len(l.notes)
}

// AddNote validates and appends a note. It returns false, leaving the
// collection unchanged, when the title is blank or another note already has
// the same case-insensitive title. On success the note is auto-tagged via
// the tag service, appended, and the list is persisted.
func (l *Library) AddNote(n *Note) bool {
	if n == nil {
		return false
	}
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return false
	}
	for _, existing := range l.notes {
		if strings.EqualFold(strings.TrimSpace(existing.Title), title) {
			return false
		}
	}
	n.LastModified = time.Now()
	if l.tags != nil {
		l.tags.AutoTag(n, l.tags.AutoTagLimit())
	}
	l.notes = append(l.notes, n)
	l.Save()
	return true
}

// DeleteNote removes a note by identity, keeping it in the single undo
// slot. Returns the removed note, or nil if it was not present.
func (l *Library) DeleteNote(n *Note) *Note {
	if n == nil {
		return nil
	}
	for i, existing := range l.notes {
		if existing.ID == n.ID {
			l.notes = append(l.notes[:i], l.notes[i+1:]...)
			l.recentlyDeleted = existing
			l.Save()
			return existing
		}
	}
	return nil
}

// UndoDelete restores the most recently deleted note. Returns false when
// there is nothing to restore.
func (l *Library) UndoDelete() bool {
	if l.recentlyDeleted == nil {
		return false
	}
	l.recentlyDeleted.LastModified = time.Now()
	l.notes = append(l.notes, l.recentlyDeleted)
	l.recentlyDeleted = nil
	l.Save()
	return true
}

// Search returns the notes matching query case-insensitively in any of the
// enabled fields. A blank query returns all notes. A note matching several
// fields appears once, in encounter order across the title pass, then
// content, then tags.
func (l *Library) Search(query string, byTitle, byContent, byTag bool) []*Note {
	if strings.TrimSpace(query) == "" {
		return l.Notes()
	}
	lower := strings.ToLower(query)

	var results []*Note
	seen := make(map[string]struct{})
	add := func(n *Note) {
		if _, ok := seen[n.ID]; ok {
			return
		}
		seen[n.ID] = struct{}{}
		results = append(results, n)
	}

	if byTitle {
		for _, n := range l.notes {
			if strings.Contains(strings.ToLower(n.Title), lower) {
				add(n)
			}
		}
	}
	if byContent {
		for _, n := range l.notes {
			if strings.Contains(strings.ToLower(n.Content), lower) {
				add(n)
			}
		}
	}
	if byTag {
		for _, n := range l.notes {
			for _, t := range n.Tags {
				if strings.Contains(strings.ToLower(t.Name), lower) {
					add(n)
					break
				}
			}
		}
	}
	return results
}

// TogglePin flips the note's pinned flag and persists.
func (l *Library) TogglePin(n *Note) {
	if n == nil {
		return
	}
	n.Pinned = !n.Pinned
	l.Save()
}

// DeleteAllNotes clears the collection and the undo slot. Irreversible.
func (l *Library) DeleteAllNotes() {
	l.notes = l.notes[:0]
	l.recentlyDeleted = nil
	if l.tags != nil {
		l.tags.CleanupUnusedTags()
	}
	l.Save()
}

// UpdateNotificationSettings sets the note's reminder fields and persists.
// Scheduling the actual reminder is the embedder's job.
func (l *Library) UpdateNotificationSettings(n *Note, enabled bool, date *time.Time) {
	if n == nil {
		return
	}
	n.NotificationsEnabled = enabled
	n.NotificationDate = date
	l.Save()
}

// Touch stamps the note's last-modified time and persists, for callers that
// edited title or content in place.
func (l *Library) Touch(n *Note) {
	if n == nil {
		return
	}
	n.LastModified = time.Now()
	l.Save()
}

// Save persists the full note list. Persistence failures are logged and the
// in-memory state stays authoritative for the rest of the session.
func (l *Library) Save() {
	if err := l.store.SaveNotes(l.notes); err != nil {
		logs.Logger.Errorw("failed to save notes", "err", err)
	}
}

// Reload replaces the in-memory collection with the stored one, used when
// the notes file changed on disk outside this process. The undo slot is
// kept only if its note is still absent from the stored list.
func (l *Library) Reload() {
	l.notes = l.store.LoadNotes()
	l.ensureIDs()
	if l.recentlyDeleted != nil {
		for _, n := range l.notes {
			if n.ID == l.recentlyDeleted.ID {
				l.recentlyDeleted = nil
				break
			}
		}
	}
}

// ensureIDs assigns an ID to any loaded note missing one and persists once
// if anything changed. Data written by older versions had no IDs.
func (l *Library) ensureIDs() {
	changed := false
	for _, n := range l.notes {
		if strings.TrimSpace(n.ID) == "" {
			n.ID = uuid.NewString()
			changed = true
		}
	}
	if changed {
		l.Save()
	}
}
