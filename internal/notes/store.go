package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"quicknotes/internal/logs"
)

const (
	notesFileName     = "notes.json"
	tagColorsFileName = "tag_colors.json"

	tempFilePrefix = "quicknotes-tmp-"
)

// Store persists the note list and the tag color map as JSON files in a
// data directory. Loads of missing or unreadable files return empty values
// so a fresh or damaged data dir never blocks startup.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// NotesPath returns the path of the notes file.
func (s *Store) NotesPath() string {
	return filepath.Join(s.dir, notesFileName)
}

// LoadNotes returns the last successfully saved note list, or an empty list.
func (s *Store) LoadNotes() []*Note {
	var loaded []*Note
	if err := s.loadJSON(notesFileName, &loaded); err != nil {
		logs.Logger.Warnw("could not load notes, starting empty", "err", err)
		return []*Note{}
	}
	if loaded == nil {
		return []*Note{}
	}
	return loaded
}

// SaveNotes writes the full note list.
func (s *Store) SaveNotes(list []*Note) error {
	return s.saveJSON(notesFileName, list)
}

// LoadTagColors returns the persisted tag name to color map, or an empty map.
func (s *Store) LoadTagColors() map[string]string {
	var loaded map[string]string
	if err := s.loadJSON(tagColorsFileName, &loaded); err != nil {
		logs.Logger.Warnw("could not load tag colors, starting empty", "err", err)
		return map[string]string{}
	}
	if loaded == nil {
		return map[string]string{}
	}
	return loaded
}

// SaveTagColors writes the tag name to color map.
func (s *Store) SaveTagColors(m map[string]string) error {
	return s.saveJSON(tagColorsFileName, m)
}

func (s *Store) loadJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error parsing %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", name, err)
	}
	return writeFileAtomic(filepath.Join(s.dir, name), data, 0644)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash mid-write never corrupts the previous
// state.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
