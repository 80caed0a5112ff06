// Copyright © 2024 The libadalang-go authors

package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntern(t *testing.T) {
	table := NewTable()
	a := table.Intern("Stack")
	b := table.Intern("STACK")
	c := table.Intern("stack")
	assert.Same(t, a, b)
	assert.Same(t, a, c)
	assert.Equal(t, "stack", a.String())
	assert.Equal(t, 1, table.Len())

	d := table.Intern("Stacks")
	assert.NotSame(t, a, d)
	assert.Equal(t, 2, table.Len())
}

func TestGet(t *testing.T) {
	table := NewTable()
	assert.Nil(t, table.Get("push"))
	sym := table.Intern("Push")
	require.NotNil(t, sym)
	assert.Same(t, sym, table.Get("PUSH"))
	// Get never interns.
	assert.Nil(t, table.Get("pop"))
	assert.Equal(t, 1, table.Len())
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "ada.text_io", Canonical("Ada.Text_IO"))
	assert.Equal(t, "x", Canonical("X"))
}
