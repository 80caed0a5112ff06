// Copyright © 2024 The libadalang-go authors

package sem_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
	"github.com/Pateldisolution/libadalang/sem"
)

const stacksSpec = `package Stacks is
   type Stack is private;
   procedure Push (S : in out Stack; X : Integer);
   function Depth (S : Stack) return Integer;
   package Inner is
      procedure Ping;
   end Inner;
private
   type Stack is record
      Top : Integer;
   end record;
end Stacks;
`

const stacksBody = `package body Stacks is
   Count : Integer := 0;
   procedure Push (S : in out Stack; X : Integer) is
   begin
      null;
   end Push;
   function Depth (S : Stack) return Integer is
   begin
      return 0;
   end Depth;
   package body Inner is
      procedure Ping is
      begin
         null;
      end Ping;
      procedure Local is
      begin
         null;
      end Local;
   end Inner;
end Stacks;
`

const queuesSpec = `generic
   type Element is private;
package Queues is
   procedure Enqueue (E : Element);
end Queues;
`

const queuesBody = `package body Queues is
   procedure Enqueue (E : Element) is
   begin
      null;
   end Enqueue;
end Queues;
`

// writeSource writes one unit source under dir using GNAT file naming.
func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))
	return path
}

// newStacksContext writes the stacks spec and body fixtures and returns a
// context searching the fixture directory.
func newStacksContext(t *testing.T) (*sem.Context, string) {
	t.Helper()
	dir := t.TempDir()
	writeSource(t, dir, "stacks.ads", stacksSpec)
	writeSource(t, dir, "stacks.adb", stacksBody)
	return sem.NewContext(sem.WithSourceDirs(dir)), dir
}

// loadUnit parses and registers the unit declared by name under dir.
func loadUnit(t *testing.T, ctx *sem.Context, dir, name string) *sem.AnalysisUnit {
	t.Helper()
	u, err := ctx.GetUnitFromFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return u
}

// findDecl returns the first declaration of the given kind and name in
// the unit.
func findDecl(t *testing.T, u *sem.AnalysisUnit, kind ast.Kind, name string) *ast.Node {
	t.Helper()
	for _, d := range astutil.Collect(u.Root(), kind) {
		names := d.DefiningNames()
		if len(names) > 0 && strings.EqualFold(ast.NameText(ast.NameLeaf(names[0])), name) {
			return d
		}
	}
	t.Fatalf("no %s named %q in %s", kind, name, u)
	return nil
}
