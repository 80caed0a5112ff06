// Copyright © 2024 The libadalang-go authors

package sem

import (
	"fmt"
	"os"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
	"github.com/Pateldisolution/libadalang/parser"
	"github.com/Pateldisolution/libadalang/parser/prologue"
	"github.com/Pateldisolution/libadalang/parser/token"
)

// AnalysisUnit is one parsed source file.  A unit exclusively owns its
// syntax tree, its environment arena, its query cache, and any registered
// destroyable resources; reloading the unit releases all of them and
// invalidates every cross-unit reference into it.
type AnalysisUnit struct {
	ctx      *Context
	filename string
	name     string // canonical dotted unit name
	kind     UnitKind
	root     *ast.Node
	tokens   []*token.Token

	// generation is the context generation at which this tree was
	// installed.  Environment handles carry it so a handle minted before
	// a reload dereferences to nothing afterwards.
	generation uint64

	envs     []*Environment
	envIndex map[uint32]int
	cache    map[queryKey]*cacheEntry
	destroy  []func()
}

func (u *AnalysisUnit) Name() string     { return u.name }
func (u *AnalysisUnit) Kind() UnitKind   { return u.kind }
func (u *AnalysisUnit) Filename() string { return u.filename }

// Root returns the unit's compilation unit node.
func (u *AnalysisUnit) Root() *ast.Node { return u.root }

// Tokens returns the unit's full token stream, trivia included.
func (u *AnalysisUnit) Tokens() []*token.Token { return u.tokens }

func (u *AnalysisUnit) String() string {
	return fmt.Sprintf("%s (%s)", u.name, u.kind)
}

// OnDestroy registers fn to run when the unit's state is torn down on
// reload.  Resources tied to the unit's tree (external handles, indexes)
// register here so teardown releases them with the tree.
func (u *AnalysisUnit) OnDestroy(fn func()) {
	u.destroy = append(u.destroy, fn)
}

// LibraryItem returns the unit's library-level declaration.
func (u *AnalysisUnit) LibraryItem() *ast.Node {
	return astutil.LibraryItem(u.root)
}

// Reload re-reads and re-parses the unit's file, replacing its tree.  On
// success every environment, cached result, and destroyable the unit
// owned is released, and the context generation advances so environment
// handles and cached failures referencing the old tree are stale.  On
// error the unit keeps its previous tree untouched.
func (u *AnalysisUnit) Reload() error {
	src, err := os.ReadFile(u.filename)
	if err != nil {
		return err
	}
	info, err := prologue.Scan(src)
	if err != nil {
		return err
	}
	if info.Name != u.name || prologueKind(info.Kind) != u.kind {
		return fmt.Errorf("sem: %s now declares unit %s (%s), want %s (%s)",
			u.filename, info.Name, prologueKind(info.Kind), u.name, u.kind)
	}
	res, err := parser.Parse(u.filename, src)
	if err != nil {
		return err
	}
	u.teardown()
	delete(u.ctx.byRoot, u.root)
	u.ctx.generation++
	u.generation = u.ctx.generation
	u.root = res.Root
	u.tokens = res.Tokens
	u.ctx.byRoot[res.Root] = u
	return nil
}

// teardown releases everything the unit owns.  Destroyables run in
// reverse registration order.
func (u *AnalysisUnit) teardown() {
	for i := len(u.destroy) - 1; i >= 0; i-- {
		u.destroy[i]()
	}
	u.destroy = nil
	u.envs = nil
	u.envIndex = nil
	u.cache = nil
}

// TokenAt returns the first non-trivia token at or after line, or nil.
func (u *AnalysisUnit) TokenAt(line int) *token.Token {
	for _, tok := range u.tokens {
		if tok.Type.IsTrivia() {
			continue
		}
		if tok.Source != nil && tok.Source.Line >= line {
			return tok
		}
	}
	return nil
}
