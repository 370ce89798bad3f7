package tags

import (
	"strings"

	"quicknotes/internal/notes"
)

// Library is the slice of the note library the tag subsystem operates on:
// the live notes and a way to persist them after a batch of tag mutations.
type Library interface {
	Notes() []*notes.Note
	Save()
}

// Operations keeps tag-to-note relationships consistent across the whole
// library. Every batch operation persists the note list at most once.
type Operations struct {
	library Library
	colors  *ColorAssigner
}

// NewOperations creates tag operations over the given library and color
// assigner.
func NewOperations(library Library, colors *ColorAssigner) *Operations {
	return &Operations{library: library, colors: colors}
}

// SetTag adds a single tag to the note, resolving its color, and persists.
// Blank names are ignored.
func (o *Operations) SetTag(n *notes.Note, name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	tag := notes.Tag{Name: trimmed, Color: o.colors.ColorFor(trimmed)}
	n.AddTag(tag)
	o.library.Save()
}

// SetTags adds multiple tags to the note in one batch, persisting once if
// anything changed.
func (o *Operations) SetTags(n *notes.Note, names []string) {
	changed := false
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		tag := notes.Tag{Name: trimmed, Color: o.colors.ColorFor(trimmed)}
		if n.AddTag(tag) {
			changed = true
		}
	}
	if changed {
		o.library.Save()
	}
}

// AllTagNames returns every tag name in use across the library, first-seen
// order, one entry per case-insensitive name.
func (o *Operations) AllTagNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, n := range o.library.Notes() {
		for _, t := range n.Tags {
			key := t.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, t.Name)
		}
	}
	return names
}

// AllTags returns every tag in use, materialized with its current color,
// first-seen order.
func (o *Operations) AllTags() []notes.Tag {
	names := o.AllTagNames()
	out := make([]notes.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, notes.Tag{Name: name, Color: o.colors.ColorFor(name)})
	}
	return out
}

// FilterByTags returns the notes holding at least one tag whose name is in
// activeNames (OR semantics). An empty filter returns all notes.
func (o *Operations) FilterByTags(activeNames []string) []*notes.Note {
	if len(activeNames) == 0 {
		return o.library.Notes()
	}
	active := normalizeSet(activeNames)
	var out []*notes.Note
	for _, n := range o.library.Notes() {
		for _, t := range n.Tags {
			if _, ok := active[t.Key()]; ok {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// CleanupUnused drops color assignments for tag names no longer used by any
// note.
func (o *Operations) CleanupUnused() {
	used := make(map[string]struct{})
	for _, n := range o.library.Notes() {
		for _, t := range n.Tags {
			used[t.Key()] = struct{}{}
		}
	}
	o.colors.CleanupUnused(used)
}

// Rename replaces oldName with newName on every note holding it. The new
// name inherits the old name's color. No-op when either name is blank or
// they differ only by case.
func (o *Operations) Rename(oldName, newName string) {
	from := strings.TrimSpace(oldName)
	to := strings.TrimSpace(newName)
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return
	}

	// Resolve the color once before touching notes so the new tag keeps it.
	color := o.colors.ColorFor(from)
	newTag := notes.Tag{Name: to, Color: color}

	changed := false
	for _, n := range o.library.Notes() {
		if n.RemoveTag(from) {
			n.AddTag(newTag)
			changed = true
		}
	}

	o.colors.SetColor(to, color)
	o.CleanupUnused()

	if changed {
		o.library.Save()
	}
}

// Delete removes the named tag from every note and drops its color mapping
// once unused.
func (o *Operations) Delete(name string) {
	key := strings.TrimSpace(name)
	if key == "" {
		return
	}

	changed := false
	for _, n := range o.library.Notes() {
		if n.RemoveTag(key) {
			changed = true
		}
	}

	o.CleanupUnused()

	if changed {
		o.library.Save()
	}
}

// Merge replaces every occurrence of the source tags with the single target
// tag. A note holding several sources ends up with exactly one target tag.
func (o *Operations) Merge(sourceNames []string, targetName string) {
	if len(sourceNames) == 0 {
		return
	}
	target := strings.TrimSpace(targetName)
	if target == "" {
		return
	}

	targetTag := notes.Tag{Name: target, Color: o.colors.ColorFor(target)}

	sources := make(map[string]struct{})
	for _, name := range sourceNames {
		key := notes.NormalizeTagName(name)
		if key == "" || key == notes.NormalizeTagName(target) {
			continue
		}
		sources[key] = struct{}{}
	}
	if len(sources) == 0 {
		return
	}

	changed := false
	for _, n := range o.library.Notes() {
		noteChanged := false
		for key := range sources {
			if n.RemoveTag(key) {
				noteChanged = true
			}
		}
		if noteChanged {
			n.AddTag(targetTag)
			changed = true
		}
	}

	o.CleanupUnused()

	if changed {
		o.library.Save()
	}
}
