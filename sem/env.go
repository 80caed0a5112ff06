// Copyright © 2024 The libadalang-go authors

package sem

import (
	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
	"github.com/Pateldisolution/libadalang/symbols"
)

// Binding associates an interned name with the defining name node that
// introduces it and the declaration it belongs to.  With-clause bindings
// carry the referencing name node and a nil declaration.
type Binding struct {
	Name *ast.Node
	Decl *ast.Node
}

// Environment is a scope's symbol table.  Each environment is owned by
// exactly one node of one unit and lives in that unit's arena; parent
// links chain scopes for fallthrough lookup and may cross unit boundaries
// (a package body's scope falls through to its specification's).
type Environment struct {
	owner    uint32
	parent   EnvRef
	bindings map[*symbols.Symbol][]Binding
}

func (e *Environment) add(sym *symbols.Symbol, b Binding) {
	if e.bindings == nil {
		e.bindings = make(map[*symbols.Symbol][]Binding)
	}
	e.bindings[sym] = append(e.bindings[sym], b)
}

// EnvRef is a stable handle to an environment.  Cross-unit references
// hold no pointer into the target unit: the handle names the unit, the
// owning node, and the unit generation it was minted against, and a
// dereference after the unit reloads finds nothing rather than stale
// bindings.
type EnvRef struct {
	Unit     string
	UnitKind UnitKind
	Node     uint32
	Gen      uint64
}

// NoEnv is the absent environment handle.
var NoEnv EnvRef

// IsNoEnv reports whether ref is the absent handle.
func (ref EnvRef) IsNoEnv() bool { return ref == NoEnv }

// EnvOf returns the environment owned by n, building and populating it on
// first call.  The handle is stable: calling EnvOf twice on one node
// yields identical handles.  Population happens exactly once; there is no
// implicit rebuild.  Nodes outside a registered unit yield NoEnv.
func (c *Context) EnvOf(n *ast.Node) EnvRef {
	u := c.UnitOf(n)
	if u == nil {
		return NoEnv
	}
	v, err := c.eval(u, n, PropEnv, "", func() (interface{}, error) {
		env := &Environment{owner: n.ID()}
		if u.envIndex == nil {
			u.envIndex = make(map[uint32]int)
		}
		u.envIndex[n.ID()] = len(u.envs)
		u.envs = append(u.envs, env)
		ref := EnvRef{Unit: u.name, UnitKind: u.kind, Node: n.ID(), Gen: u.generation}
		// The arena slot is installed before population so the unit
		// tracks the environment even when population recurses into
		// further queries (parent environments, unit loads).
		c.populate(u, env, n)
		return ref, nil
	})
	if err != nil {
		return NoEnv
	}
	return v.(EnvRef)
}

// deref resolves a handle to its live environment, or nil when the
// handle's unit is unloaded, reloaded since the handle was minted, or the
// environment never existed.
func (c *Context) deref(ref EnvRef) *Environment {
	if ref.IsNoEnv() {
		return nil
	}
	u := c.units[unitKey{name: ref.Unit, kind: ref.UnitKind}]
	if u == nil || u.generation != ref.Gen {
		return nil
	}
	i, ok := u.envIndex[ref.Node]
	if !ok {
		return nil
	}
	return u.envs[i]
}

// populate installs n's bindings and parent link.  Each declaration kind
// has its own populator; bindings are added here once and never rebuilt.
func (c *Context) populate(u *AnalysisUnit, env *Environment, n *ast.Node) {
	switch n.Kind() {
	case ast.KindCompilationUnit:
		for _, name := range astutil.WithedNames(n) {
			env.add(c.sym(ast.NameText(name)), Binding{Name: name})
		}
		if item := astutil.LibraryItem(n); item != nil {
			c.addDeclNames(env, item)
		}
	case ast.KindPackageDecl:
		env.parent = c.enclosingEnv(n)
		for _, d := range n.DeclarativeItems() {
			c.addDeclNames(env, d)
		}
		for _, d := range n.PrivateItems() {
			c.addDeclNames(env, d)
		}
	case ast.KindPackageBody:
		// A body's scope falls through to its specification's, across
		// units for a library-level body.
		if spec := c.Correspond(BodyToSpec, n); spec != nil {
			env.parent = c.EnvOf(spec)
		} else {
			env.parent = c.enclosingEnv(n)
		}
		for _, d := range n.DeclarativeItems() {
			c.addDeclNames(env, d)
		}
	case ast.KindSubpBody:
		env.parent = c.enclosingEnv(n)
		c.addParamNames(env, n.SubpSpec())
		for _, d := range n.DeclarativeItems() {
			c.addDeclNames(env, d)
		}
	case ast.KindSubpDecl:
		env.parent = c.enclosingEnv(n)
		c.addParamNames(env, n.SubpSpec())
	case ast.KindGenericPackageDecl, ast.KindGenericSubpDecl:
		env.parent = c.enclosingEnv(n)
		if formals := n.FindChild(ast.KindGenericFormalPart); formals != nil {
			for _, d := range formals.Children() {
				if d.Kind().IsDecl() {
					c.addDeclNames(env, d)
				}
			}
		}
	default:
		env.parent = c.enclosingEnv(n)
	}
}

// enclosingEnv returns the environment of n's nearest enclosing scope.
func (c *Context) enclosingEnv(n *ast.Node) EnvRef {
	p := n.Parent()
	if p == nil {
		return NoEnv
	}
	scope := p.FindEnclosing(ast.KindPackageDecl, ast.KindPackageBody,
		ast.KindSubpBody, ast.KindSubpDecl, ast.KindGenericPackageDecl,
		ast.KindGenericSubpDecl, ast.KindCompilationUnit)
	if scope == nil {
		return NoEnv
	}
	return c.EnvOf(scope)
}

func (c *Context) addDeclNames(env *Environment, decl *ast.Node) {
	if decl == nil || !decl.Kind().IsDecl() {
		return
	}
	for _, name := range decl.DefiningNames() {
		if name == nil {
			continue
		}
		leaf := ast.NameLeaf(name)
		if leaf == nil || leaf.Token() == nil {
			continue
		}
		env.add(c.sym(leaf.Token().Text), Binding{Name: name, Decl: decl})
	}
}

func (c *Context) addParamNames(env *Environment, spec *ast.Node) {
	if spec == nil {
		return
	}
	for _, name := range spec.Params() {
		leaf := ast.NameLeaf(name)
		if leaf == nil || leaf.Token() == nil {
			continue
		}
		env.add(c.sym(leaf.Token().Text), Binding{Name: name, Decl: name.FindEnclosing(ast.KindParamSpec)})
	}
}

// BindingCursor is a lazy, finite, restartable sequence of bindings: the
// starting environment's own bindings first, then each parent's in chain
// order.  Shadowing is by name and realized by ordering; callers that
// want the visible binding take the first.  A stale starting handle (or a
// parent that went stale mid-walk) ends the sequence.
type BindingCursor struct {
	ctx   *Context
	sym   *symbols.Symbol
	start EnvRef

	cur    EnvRef
	queue  []Binding
	primed bool
	done   bool
}

// Lookup returns a cursor over the bindings of sym visible from ref.
func (c *Context) Lookup(ref EnvRef, sym *symbols.Symbol) *BindingCursor {
	it := &BindingCursor{ctx: c, sym: sym, start: ref}
	it.Restart()
	return it
}

// LookupFirst returns the visible binding of sym from ref, if any.
func (c *Context) LookupFirst(ref EnvRef, sym *symbols.Symbol) (Binding, bool) {
	return c.Lookup(ref, sym).Next()
}

// Next returns the next binding in the sequence.
func (it *BindingCursor) Next() (Binding, bool) {
	for {
		if it.done {
			return Binding{}, false
		}
		if !it.primed {
			env := it.ctx.deref(it.cur)
			if env == nil {
				it.done = true
				return Binding{}, false
			}
			it.queue = append(it.queue[:0], env.bindings[it.sym]...)
			it.cur = env.parent
			it.primed = true
		}
		if len(it.queue) > 0 {
			b := it.queue[0]
			it.queue = it.queue[1:]
			return b, true
		}
		if it.cur.IsNoEnv() {
			it.done = true
			return Binding{}, false
		}
		it.primed = false
	}
}

// Restart rewinds the cursor to the beginning of the sequence.
func (it *BindingCursor) Restart() {
	it.cur = it.start
	it.queue = nil
	it.primed = false
	it.done = it.sym == nil
}
