package notelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchScopeCyclesThroughFields(t *testing.T) {
	scope := ScopeAll

	seen := []string{scope.String()}
	for i := 0; i < 3; i++ {
		scope = (scope + 1) % 4
		seen = append(seen, scope.String())
	}

	assert.Equal(t, []string{"all", "title", "content", "tag"}, seen)
}

func TestSearchScopeFieldSelection(t *testing.T) {
	byTitle, byContent, byTag := ScopeAll.fields()
	assert.True(t, byTitle && byContent && byTag)

	byTitle, byContent, byTag = ScopeTitle.fields()
	assert.True(t, byTitle)
	assert.False(t, byContent)
	assert.False(t, byTag)

	byTitle, byContent, byTag = ScopeTag.fields()
	assert.False(t, byTitle)
	assert.False(t, byContent)
	assert.True(t, byTag)
}

func TestFirstLineStripsBodyAndWhitespace(t *testing.T) {
	assert.Equal(t, "hello", firstLine("  hello\nworld"))
	assert.Equal(t, "", firstLine("   \n\n"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "long text...", truncate("long text that overflows", 12))
}
