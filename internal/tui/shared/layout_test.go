package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenterContentPadsEvenly(t *testing.T) {
	out := CenterContent("hello", 5)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 5)
	assert.Equal(t, "hello", lines[2])
}

func TestCenterContentTallContentUnchanged(t *testing.T) {
	content := "a\nb\nc"
	assert.Equal(t, content, CenterContent(content, 2))
}

func TestFitToHeightPadsAndTruncates(t *testing.T) {
	padded := FitToHeight("one", 3)
	assert.Len(t, strings.Split(padded, "\n"), 3)

	cut := FitToHeight("one\ntwo\nthree", 2)
	assert.Equal(t, "one\ntwo", cut)
}
