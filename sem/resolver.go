// Copyright © 2024 The libadalang-go authors

package sem

import (
	"fmt"
	"os"
	"strings"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/parser/prologue"
	"github.com/Pateldisolution/libadalang/symbols"
)

// FetchUnit resolves targetName relative to ref's scope and returns the
// unit declaring it, or nil (NoUnit).
//
// An already loaded unit is returned as-is: loading is memoized by
// (name, kind), so every reference to one unit yields the same unit
// object.  When the unit is not loaded and loadIfNeeded is false,
// FetchUnit returns nil with no side effect.  Otherwise the unit's
// source is located through the context's provider, verified against its
// prologue, and parsed; any failure (unresolvable name, missing file,
// prologue mismatch, parse error, a load cycling back into itself)
// yields nil rather than an error.  Failed loads are remembered for the
// current context generation and retried once the generation moves.
func (c *Context) FetchUnit(ref *ast.Node, targetName string, kind UnitKind, loadIfNeeded bool) *AnalysisUnit {
	name := c.resolveUnitName(ref, targetName)
	if name == "" {
		return nil
	}
	key := unitKey{name: name, kind: kind}
	if u := c.units[key]; u != nil {
		return u
	}
	if c.loading[key] || !loadIfNeeded {
		return nil
	}
	if gen, ok := c.failed[key]; ok && gen == c.generation {
		return nil
	}
	u, err := c.loadUnit(key)
	if err != nil {
		c.failed[key] = c.generation
		return nil
	}
	return u
}

// resolveUnitName canonicalizes targetName, preferring a binding visible
// from ref's compilation unit scope (a with clause or the unit's own
// library item) over the literal text.
func (c *Context) resolveUnitName(ref *ast.Node, targetName string) string {
	name := symbols.Canonical(strings.TrimSpace(targetName))
	if name == "" {
		return ""
	}
	if ref == nil {
		return name
	}
	root := ref.FindEnclosing(ast.KindCompilationUnit)
	if root == nil {
		return name
	}
	env := c.EnvOf(root)
	sym := c.symbols.Get(name)
	if sym == nil {
		return name
	}
	if b, ok := c.LookupFirst(env, sym); ok && b.Name != nil {
		return symbols.Canonical(ast.NameText(b.Name))
	}
	return name
}

// loadUnit reads, verifies, and parses the source for key.  The loading
// set guards against a unit whose load re-enters a fetch of itself.
func (c *Context) loadUnit(key unitKey) (*AnalysisUnit, error) {
	c.loading[key] = true
	defer delete(c.loading, key)

	path, err := c.provider.Locate(key.name, key.kind)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := prologue.Scan(src)
	if err != nil {
		return nil, err
	}
	if info.Name != key.name {
		return nil, fmt.Errorf("sem: %s declares unit %s, want %s", path, info.Name, key.name)
	}
	if prologueKind(info.Kind) != key.kind {
		return nil, fmt.Errorf("sem: %s declares a %s of %s, want its %s",
			path, prologueKind(info.Kind), info.Name, key.kind)
	}
	return c.registerUnit(key, path, src)
}
