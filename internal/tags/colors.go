package tags

import (
	"math/rand"

	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
)

// ColorOption is one palette entry: a human-readable name and the color
// value handed to the renderer.
type ColorOption struct {
	Name  string
	Color string
}

// ColorStore persists the tag name to color map.
type ColorStore interface {
	LoadTagColors() map[string]string
	SaveTagColors(map[string]string) error
}

// ColorAssigner owns the palette and the persisted name-to-color map. A tag
// name gets a uniformly random palette color the first time it is seen and
// keeps it afterwards.
type ColorAssigner struct {
	palette []ColorOption
	colors  map[string]string
	store   ColorStore
	rng     *rand.Rand
}

// NewColorAssigner creates an assigner over the given palette, loading any
// previously persisted assignments.
func NewColorAssigner(palette []ColorOption, store ColorStore) *ColorAssigner {
	return &ColorAssigner{
		palette: palette,
		colors:  store.LoadTagColors(),
		store:   store,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// Palette returns the available color options.
func (c *ColorAssigner) Palette() []ColorOption {
	out := make([]ColorOption, len(c.palette))
	copy(out, c.palette)
	return out
}

// ColorFor returns the color for a tag name, assigning and persisting a
// random one on first sight.
func (c *ColorAssigner) ColorFor(tagName string) string {
	key := notes.NormalizeTagName(tagName)
	if color, ok := c.colors[key]; ok && color != "" {
		return color
	}
	color := c.randomColor()
	c.colors[key] = color
	c.save()
	return color
}

// SetColor overrides the color for a tag name. Blank names are ignored.
func (c *ColorAssigner) SetColor(tagName, color string) {
	key := notes.NormalizeTagName(tagName)
	if key == "" {
		return
	}
	c.colors[key] = color
	c.save()
}

// CleanupUnused drops every assignment whose tag name is not in usedNames,
// persisting only when something was removed.
func (c *ColorAssigner) CleanupUnused(usedNames map[string]struct{}) {
	removed := false
	for key := range c.colors {
		if _, ok := usedNames[key]; !ok {
			delete(c.colors, key)
			removed = true
		}
	}
	if removed {
		c.save()
	}
}

func (c *ColorAssigner) randomColor() string {
	if len(c.palette) == 0 {
		return ""
	}
	return c.palette[c.rng.Intn(len(c.palette))].Color
}

func (c *ColorAssigner) save() {
	if err := c.store.SaveTagColors(c.colors); err != nil {
		logs.Logger.Errorw("failed to save tag colors", "err", err)
	}
}

// normalizeSet builds a normalized-name set from a list of tag names,
// skipping blanks.
func normalizeSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := notes.NormalizeTagName(name)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}
