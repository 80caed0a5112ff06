// Copyright © 2024 The libadalang-go authors

package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/sem"
)

const tinySpec = `package Tiny is
   type Item is private;
   procedure Op (X : Integer);
private
   type Item is record
      Value : Integer;
   end record;
end Tiny;
`

const tinyBody = `package body Tiny is
   procedure Op (X : Integer) is
   begin
      null;
   end Op;
end Tiny;
`

// newTestSession returns a session over a context with the tiny fixture
// on its source path, plus the fixture directory.
func newTestSession(t *testing.T) (*Session, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.ads"), []byte(tinySpec), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.adb"), []byte(tinyBody), 0600))
	var buf bytes.Buffer
	return NewSession(sem.NewContext(sem.WithSourceDirs(dir)), &buf), &buf, dir
}

func TestDispatchLoadAndUnits(t *testing.T) {
	s, buf, dir := newTestSession(t)

	require.NoError(t, s.Dispatch("units"))
	assert.Contains(t, buf.String(), "no units loaded")
	buf.Reset()

	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))
	assert.Contains(t, buf.String(), "loaded tiny (spec)")
	buf.Reset()

	require.NoError(t, s.Dispatch("units"))
	assert.Contains(t, buf.String(), "tiny (spec)")

	assert.Error(t, s.Dispatch("load no-such-file.ads"))
	assert.Error(t, s.Dispatch("load"))
}

func TestDispatchFindAndNavigate(t *testing.T) {
	s, buf, dir := newTestSession(t)
	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))
	buf.Reset()

	require.NoError(t, s.Dispatch("find Op"))
	require.NotNil(t, s.Selection())
	assert.Equal(t, ast.KindSubpDecl, s.Selection().Kind())
	assert.Contains(t, buf.String(), `<SubpDecl ["Op"]`)
	buf.Reset()

	// body loads the other unit on demand and reselects.
	require.NoError(t, s.Dispatch("body"))
	assert.Equal(t, ast.KindSubpBody, s.Selection().Kind())
	buf.Reset()

	require.NoError(t, s.Dispatch("spec"))
	assert.Equal(t, ast.KindSubpDecl, s.Selection().Kind())
	buf.Reset()

	require.NoError(t, s.Dispatch("image"))
	assert.Contains(t, buf.String(), `<SubpDecl ["Op"]`)

	assert.Error(t, s.Dispatch("find No_Such_Name"))
}

func TestDispatchFullView(t *testing.T) {
	s, buf, dir := newTestSession(t)
	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))

	require.NoError(t, s.Dispatch("find Item"))
	require.Equal(t, ast.KindPrivateTypeDecl, s.Selection().Kind())
	buf.Reset()

	require.NoError(t, s.Dispatch("full"))
	assert.Equal(t, ast.KindTypeDecl, s.Selection().Kind())
	buf.Reset()

	// A full view has nowhere further to go; the selection stays put.
	require.NoError(t, s.Dispatch("full"))
	assert.Contains(t, buf.String(), "no private_to_full correspondence")
	assert.Equal(t, ast.KindTypeDecl, s.Selection().Kind())
}

func TestDispatchParam(t *testing.T) {
	s, buf, dir := newTestSession(t)
	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))
	require.NoError(t, s.Dispatch("find Op"))
	buf.Reset()

	require.NoError(t, s.Dispatch("param 1"))
	assert.Contains(t, buf.String(), `<ParamSpec ["X"]`)

	assert.Error(t, s.Dispatch("param 0"))
	assert.Error(t, s.Dispatch("param two"))
	assert.Error(t, s.Dispatch("param 9"))
}

func TestDispatchKeyword(t *testing.T) {
	s, buf, _ := newTestSession(t)

	require.NoError(t, s.Dispatch("keyword tagged Ada_83"))
	assert.Contains(t, buf.String(), "tagged under Ada_83: false")
	buf.Reset()

	// The context dialect (Ada 2012) applies by default.
	require.NoError(t, s.Dispatch("keyword tagged"))
	assert.Contains(t, buf.String(), "tagged under Ada_2012: true")

	assert.Error(t, s.Dispatch("keyword tagged ada2038"))
	assert.Error(t, s.Dispatch("keyword"))
}

func TestDispatchReload(t *testing.T) {
	s, buf, dir := newTestSession(t)
	require.NoError(t, s.Dispatch("load "+filepath.Join(dir, "tiny.ads")))
	require.NoError(t, s.Dispatch("find Op"))
	require.NotNil(t, s.Selection())
	buf.Reset()

	require.NoError(t, s.Dispatch("reload tiny spec"))
	assert.Contains(t, buf.String(), "reloaded tiny (spec)")
	assert.Nil(t, s.Selection(), "reload drops the selection with the old tree")

	assert.Error(t, s.Dispatch("reload tiny body"))
	assert.Error(t, s.Dispatch("reload tiny neither"))
	assert.Error(t, s.Dispatch("reload tiny"))
}

func TestDispatchErrors(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.Error(t, s.Dispatch("frobnicate"))
	assert.Error(t, s.Dispatch("spec"), "navigation needs a selection")
	assert.Error(t, s.Dispatch("image"))
	assert.NoError(t, s.Dispatch(""))
	assert.NoError(t, s.Dispatch("   "))
}

func TestDispatchQuit(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.ErrorIs(t, s.Dispatch("quit"), errQuit)
}

func TestDispatchHelp(t *testing.T) {
	s, buf, _ := newTestSession(t)
	require.NoError(t, s.Dispatch("help"))
	for _, cmd := range commands {
		assert.Contains(t, buf.String(), cmd.name)
	}
}
