package tags

import (
	"fmt"
	"strings"

	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
)

// Settings reports the tagging preferences the coordinator needs.
type Settings interface {
	IsAIMode() bool
	AutoTagLimit() int
	SelectedModelKey() string
}

// SecretStore reports whether an AI credential is configured.
type SecretStore interface {
	APIKey() string
}

// Manager is the facade the note library and presentation code use for all
// tag behavior. It composes the color assigner, the library-wide tag
// operations, the auto-tagger, and the settings ports.
type Manager struct {
	colors   *ColorAssigner
	ops      *Operations
	tagger   *AutoTagger
	settings Settings
	secrets  SecretStore

	// OnInfo and OnError surface user-facing signals (assigned tags, AI
	// failures). Both are optional and are invoked on the primary context.
	OnInfo  func(msg string)
	OnError func(msg string)
}

// NewManager wires the tag subsystem together and primes colors for every
// tag name already present in the library, so first render never races a
// color assignment.
func NewManager(library Library, store ColorStore, palette []ColorOption, ai TextGenerator, settings Settings, secrets SecretStore, dispatch Dispatcher) *Manager {
	colors := NewColorAssigner(palette, store)
	ops := NewOperations(library, colors)
	m := &Manager{
		colors:   colors,
		ops:      ops,
		tagger:   NewAutoTagger(ops, ai, dispatch),
		settings: settings,
		secrets:  secrets,
	}
	for _, name := range ops.AllTagNames() {
		colors.ColorFor(name)
	}
	return m
}

// AutoTag tags the note using the configured strategy. With AI mode on and
// a credential present, tags are requested in the background and merged in
// when the reply arrives; the note may render untagged until then. In every
// other case the keyword strategy runs synchronously, so AI being
// unavailable never leaves a keyword-taggable note untagged.
func (m *Manager) AutoTag(n *notes.Note, limit int) {
	if m.settings.IsAIMode() && m.aiConfigured() {
		m.aiAutoTag(n, limit)
		return
	}
	m.simpleAutoTag(n, limit)
}

// AutoTagLimit returns the configured per-note tag limit.
func (m *Manager) AutoTagLimit() int {
	return m.settings.AutoTagLimit()
}

func (m *Manager) simpleAutoTag(n *notes.Note, limit int) {
	assigned := m.tagger.AssignByKeyword(n, limit)
	if len(assigned) > 0 {
		m.info(fmt.Sprintf("Auto-tagged %s: %s", n.Title, strings.Join(assigned, ", ")))
	}
}

func (m *Manager) aiAutoTag(n *notes.Note, limit int) {
	var applied []string
	m.tagger.AssignByAI(n, limit, m.settings.SelectedModelKey(), m.ops.AllTagNames(),
		func(tagName string) {
			applied = append(applied, tagName)
			m.info(fmt.Sprintf("AI tagged %s: %s", n.Title, strings.Join(applied, ", ")))
		},
		func(err error) {
			logs.Logger.Errorw("ai auto-tag failed", "note", n.Title, "err", err)
			m.error(fmt.Sprintf("Auto-tag error: %v", err))
		})
}

// SuggestTags requests AI tag suggestions without applying them, for flows
// where the user confirms before tags are added. With AI unconfigured the
// suggestion list is empty.
func (m *Manager) SuggestTags(n *notes.Note, limit int, onSuggestions func([]string), onErr func(string)) {
	if !m.settings.IsAIMode() || !m.aiConfigured() {
		if onSuggestions != nil {
			onSuggestions(nil)
		}
		return
	}
	m.tagger.Suggest(n, limit, m.settings.SelectedModelKey(), m.ops.AllTagNames(),
		onSuggestions,
		func(err error) {
			if onErr != nil {
				onErr(err.Error())
			}
		})
}

func (m *Manager) aiConfigured() bool {
	return strings.TrimSpace(m.secrets.APIKey()) != ""
}

// ---------------------------------------------------------------------------
// Pass-throughs
// ---------------------------------------------------------------------------

// SetTag adds one tag to a note.
func (m *Manager) SetTag(n *notes.Note, name string) { m.ops.SetTag(n, name) }

// SetTags adds several tags to a note as one batch.
func (m *Manager) SetTags(n *notes.Note, names []string) { m.ops.SetTags(n, names) }

// AllTags returns every tag in use with its current color.
func (m *Manager) AllTags() []notes.Tag { return m.ops.AllTags() }

// AllTagNames returns every tag name in use.
func (m *Manager) AllTagNames() []string { return m.ops.AllTagNames() }

// FilterNotesByTags returns notes holding any of the active tag names.
func (m *Manager) FilterNotesByTags(activeNames []string) []*notes.Note {
	return m.ops.FilterByTags(activeNames)
}

// CleanupUnusedTags drops color assignments no note uses anymore.
func (m *Manager) CleanupUnusedTags() { m.ops.CleanupUnused() }

// RenameTag renames a tag library-wide.
func (m *Manager) RenameTag(oldName, newName string) { m.ops.Rename(oldName, newName) }

// DeleteTag removes a tag library-wide.
func (m *Manager) DeleteTag(name string) { m.ops.Delete(name) }

// MergeTags merges the source tags into target library-wide.
func (m *Manager) MergeTags(sources []string, target string) { m.ops.Merge(sources, target) }

// TagColorFor returns (and assigns, on first sight) the color for a name.
func (m *Manager) TagColorFor(name string) string { return m.colors.ColorFor(name) }

// SetTagColor overrides a tag's color.
func (m *Manager) SetTagColor(name, color string) { m.colors.SetColor(name, color) }

// AvailableColors returns the palette.
func (m *Manager) AvailableColors() []ColorOption { return m.colors.Palette() }

func (m *Manager) info(msg string) {
	if m.OnInfo != nil {
		m.OnInfo(msg)
	}
}

func (m *Manager) error(msg string) {
	if m.OnError != nil {
		m.OnError(msg)
	}
}
