// Copyright © 2024 The libadalang-go authors

package prologue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPackageSpec(t *testing.T) {
	info, err := Scan([]byte(`
--  Context clause first.
with Ada.Text_IO;
with Interfaces;
package Stacks.Bounded is
end Stacks.Bounded;
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"ada.text_io", "interfaces"}, info.Withs)
	assert.Equal(t, "stacks.bounded", info.Name)
	assert.Equal(t, Spec, info.Kind)
	assert.False(t, info.Generic)
}

func TestScanPackageBody(t *testing.T) {
	info, err := Scan([]byte("package body Stacks is\nend Stacks;\n"))
	require.NoError(t, err)
	assert.Equal(t, "stacks", info.Name)
	assert.Equal(t, Body, info.Kind)
}

func TestScanSubprogram(t *testing.T) {
	info, err := Scan([]byte("procedure Main (Count : Integer);\n"))
	require.NoError(t, err)
	assert.Equal(t, "main", info.Name)
	assert.Equal(t, Spec, info.Kind)

	info, err = Scan([]byte(`
with Stacks;
procedure Main is
begin
   null;
end Main;
`))
	require.NoError(t, err)
	assert.Equal(t, "main", info.Name)
	assert.Equal(t, Body, info.Kind)
}

func TestScanGeneric(t *testing.T) {
	info, err := Scan([]byte(`
generic
   type Element is private;
   with function Copy (E : Element) return Element;
package Queues is
end Queues;
`))
	require.NoError(t, err)
	assert.Equal(t, "queues", info.Name)
	assert.Equal(t, Spec, info.Kind)
	assert.True(t, info.Generic)
}

func TestScanPrivateChildUnit(t *testing.T) {
	info, err := Scan([]byte("private package Stacks.Impl is\nend Stacks.Impl;\n"))
	require.NoError(t, err)
	assert.Equal(t, "stacks.impl", info.Name)
	assert.Equal(t, Spec, info.Kind)
}

func TestScanErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"with Stacks;",
		"42",
	} {
		_, err := Scan([]byte(src))
		assert.Error(t, err, "source: %q", src)
	}
}
