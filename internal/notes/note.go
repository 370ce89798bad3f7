package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag is a named label with an associated display color. Two tags are the
// same tag when their names match case-insensitively; the color is display
// metadata only.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NormalizeTagName produces the canonical key used for tag identity and for
// the persisted color map.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key returns the tag's case-insensitive identity key.
func (t Tag) Key() string {
	return NormalizeTagName(t.Name)
}

// Note is a single note. ID is assigned once at creation and is the
// identity used for equality; Title is the uniqueness key within a Library.
type Note struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Content              string     `json:"content"`
	Tags                 []Tag      `json:"tags"`
	Pinned               bool       `json:"pinned"`
	LastModified         time.Time  `json:"lastModified"`
	NotificationsEnabled bool       `json:"notificationsEnabled"`
	NotificationDate     *time.Time `json:"notificationDate,omitempty"`
}

// NewNote creates a note with a fresh ID and the given tags (deduplicated
// case-insensitively, insertion order preserved).
func NewNote(title, content string, tags []Tag) *Note {
	n := &Note{
		ID:           uuid.NewString(),
		Title:        title,
		Content:      content,
		LastModified: time.Now(),
	}
	for _, t := range tags {
		n.AddTag(t)
	}
	return n
}

// AddTag adds a tag to the note. Adding a tag whose name is already present
// (case-insensitively) is a no-op. Reports whether the tag set changed.
func (n *Note) AddTag(tag Tag) bool {
	if strings.TrimSpace(tag.Name) == "" {
		return false
	}
	if n.HasTag(tag.Name) {
		return false
	}
	n.Tags = append(n.Tags, tag)
	return true
}

// RemoveTag removes every tag matching name case-insensitively. Reports
// whether anything was removed.
func (n *Note) RemoveTag(name string) bool {
	key := NormalizeTagName(name)
	kept := n.Tags[:0]
	removed := false
	for _, t := range n.Tags {
		if t.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	n.Tags = kept
	return removed
}

// HasTag reports whether the note holds a tag with the given name,
// compared case-insensitively.
func (n *Note) HasTag(name string) bool {
	key := NormalizeTagName(name)
	for _, t := range n.Tags {
		if t.Key() == key {
			return true
		}
	}
	return false
}

// TagNames returns the note's tag names in insertion order.
func (n *Note) TagNames() []string {
	names := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		names = append(names, t.Name)
	}
	return names
}

func (n *Note) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Content)
}
