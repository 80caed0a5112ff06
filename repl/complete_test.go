// Copyright © 2024 The libadalang-go authors

package repl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completions renders the completer's suffixes back into full words for
// readable assertions.
func completions(c *commandCompleter, line string) []string {
	runes := []rune(line)
	suffixes, length := c.Do(runes, len(runes))
	prefix := string(runes[len(runes)-length:])
	var out []string
	for _, s := range suffixes {
		out = append(out, prefix+string(s))
	}
	return out
}

func TestCompleteCommandNames(t *testing.T) {
	s, _, _ := newTestSession(t)
	c := &commandCompleter{session: s}

	assert.Equal(t, []string{"find", "full"}, completions(c, "f"))
	assert.Equal(t, []string{"reload"}, completions(c, "rel"))
	assert.Empty(t, completions(c, "zz"))
}

func TestCompleteFindArguments(t *testing.T) {
	s, _, dir := newTestSession(t)
	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))
	c := &commandCompleter{session: s}

	assert.Equal(t, []string{"Item"}, completions(c, "find It"))
	assert.Contains(t, completions(c, "find "), "Op")
	assert.Empty(t, completions(c, "find Zz"))
}

func TestCompleteReloadArguments(t *testing.T) {
	s, _, dir := newTestSession(t)
	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))
	c := &commandCompleter{session: s}

	assert.Equal(t, []string{"tiny"}, completions(c, "reload ti"))
	assert.Equal(t, []string{"spec", "body"}, completions(c, "reload tiny "))
	assert.Equal(t, []string{"body"}, completions(c, "reload tiny b"))
}

func TestCompleteKeywordVersions(t *testing.T) {
	s, _, _ := newTestSession(t)
	c := &commandCompleter{session: s}

	// The version argument completes; the word itself does not.
	assert.Empty(t, completions(c, "keyword ta"))
	got := completions(c, "keyword tagged Ada_2")
	assert.Equal(t, []string{"Ada_2005", "Ada_2012", "Ada_2022"}, got)
}
