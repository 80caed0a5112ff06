// Copyright © 2024 The libadalang-go authors

package sem

import (
	"fmt"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
	"github.com/Pateldisolution/libadalang/symbols"
)

// CorrespondenceKind names a pairing between declarations that model one
// logical entity.
type CorrespondenceKind int

const (
	// SpecToBody pairs a declaration with its completing body.
	SpecToBody CorrespondenceKind = iota
	// BodyToSpec pairs a body with its separate declaration, when one
	// exists.
	BodyToSpec
	// GenericUnwrap pairs a generic wrapper with the defining name of
	// the wrapped declaration.
	GenericUnwrap
	// FormalParameter pairs a parameter defining name with the parameter
	// at the same ordinal position in the counterpart declaration.
	FormalParameter
	// PrivateToFull pairs an incomplete or private type view with the
	// defining name of its completing full view.
	PrivateToFull

	numCorrespondence
)

var correspondenceStrings = [numCorrespondence]string{
	SpecToBody:      "spec_to_body",
	BodyToSpec:      "body_to_spec",
	GenericUnwrap:   "generic_unwrap",
	FormalParameter: "formal_parameter",
	PrivateToFull:   "private_to_full",
}

func (k CorrespondenceKind) String() string {
	if k < 0 || k >= numCorrespondence {
		return "invalid"
	}
	return correspondenceStrings[k]
}

// ParseCorrespondence returns the kind named by s.
func ParseCorrespondence(s string) (CorrespondenceKind, error) {
	for k, name := range correspondenceStrings {
		if s == name {
			return CorrespondenceKind(k), nil
		}
	}
	return 0, fmt.Errorf("sem: unknown correspondence kind %q", s)
}

// correspondTable dispatches each kind to its resolver.  Every resolver
// is total: structural absence and any failure along the way (an
// unresolvable semantic parent, a unit that would not load) yield nil,
// never an error.  The table is populated in init because the resolvers
// recurse through Correspond, which reads it.
var correspondTable [numCorrespondence]func(*Context, *ast.Node) *ast.Node

func init() {
	correspondTable = [numCorrespondence]func(*Context, *ast.Node) *ast.Node{
		SpecToBody:      (*Context).specToBody,
		BodyToSpec:      (*Context).bodyToSpec,
		GenericUnwrap:   (*Context).genericUnwrap,
		FormalParameter: (*Context).formalParam,
		PrivateToFull:   (*Context).privateToFull,
	}
}

// Correspond resolves the correspondence of the given kind for n.  The
// result is memoized per (node, kind).  SpecToBody and BodyToSpec return
// the counterpart declaration node; GenericUnwrap, FormalParameter, and
// PrivateToFull return a defining name node.  Nil is the explicit
// no-correspondence sentinel.  When several candidates match, the
// lexically first wins.
func (c *Context) Correspond(kind CorrespondenceKind, n *ast.Node) *ast.Node {
	if n == nil || kind < 0 || kind >= numCorrespondence {
		return nil
	}
	u := c.UnitOf(n)
	compute := func() (interface{}, error) {
		return correspondTable[kind](c, n), nil
	}
	v, err := c.eval(u, n, PropCorrespond, kind.String(), compute)
	if err != nil {
		return nil
	}
	node, _ := v.(*ast.Node)
	if node == nil || c.UnitOf(node) != nil {
		return node
	}
	// The memoized counterpart lives in a unit that reloaded since the
	// result was cached; drop the entry and recompute against the live
	// tree instead of serving a node of the destroyed one.
	if u != nil {
		delete(u.cache, queryKey{node: n.ID(), prop: PropCorrespond, args: kind.String()})
	}
	v, err = c.eval(u, n, PropCorrespond, kind.String(), compute)
	if err != nil {
		return nil
	}
	node, _ = v.(*ast.Node)
	if node != nil && c.UnitOf(node) == nil {
		return nil
	}
	return node
}

// declSymbol returns the interned canonical leaf of decl's first defining
// name, or nil for anything that is not a named declaration.
func (c *Context) declSymbol(decl *ast.Node) *symbols.Symbol {
	if decl == nil || !decl.Kind().IsDecl() {
		return nil
	}
	names := decl.DefiningNames()
	if len(names) == 0 || names[0] == nil {
		return nil
	}
	leaf := ast.NameLeaf(names[0])
	if leaf == nil || leaf.Token() == nil {
		return nil
	}
	return c.sym(leaf.Token().Text)
}

// unwrapGeneric sees through a generic wrapper to the wrapped
// declaration.
func unwrapGeneric(d *ast.Node) *ast.Node {
	if d == nil {
		return nil
	}
	switch d.Kind() {
	case ast.KindGenericPackageDecl, ast.KindGenericSubpDecl:
		return d.WrappedDecl()
	}
	return d
}

// searchRegion returns the lexically first declaration among items with
// the wanted kind and name, seeing through generic wrappers and skipping
// the skip node.
func (c *Context) searchRegion(items []*ast.Node, want ast.Kind, sym *symbols.Symbol, skip *ast.Node) *ast.Node {
	for _, item := range items {
		if item == skip {
			continue
		}
		d := unwrapGeneric(item)
		if d == nil || d == skip || d.Kind() != want {
			continue
		}
		if c.declSymbol(d) == sym {
			return d
		}
	}
	return nil
}

// specRegionItems returns the declarations a spec-side search should
// cover: the visible part followed by the private part.
func specRegionItems(spec *ast.Node) []*ast.Node {
	items := append([]*ast.Node(nil), spec.DeclarativeItems()...)
	return append(items, spec.PrivateItems()...)
}

func (c *Context) specToBody(n *ast.Node) *ast.Node {
	pos := n // region position: the outermost wrapper for generics
	n = unwrapGeneric(n)
	if p := n.Parent(); p != nil {
		switch p.Kind() {
		case ast.KindGenericPackageDecl, ast.KindGenericSubpDecl:
			pos = p
		}
	}
	var want ast.Kind
	switch n.Kind() {
	case ast.KindPackageDecl:
		want = ast.KindPackageBody
	case ast.KindSubpDecl:
		want = ast.KindSubpBody
	default:
		return nil
	}
	sym := c.declSymbol(n)
	if sym == nil {
		return nil
	}
	if parent := pos.Parent(); parent != nil && parent.Kind() == ast.KindCompilationUnit {
		return c.libraryCounterpart(n, UnitBody, want, sym)
	}
	region := astutil.EnclosingDecl(pos)
	if region == nil {
		return nil
	}
	switch region.Kind() {
	case ast.KindPackageDecl:
		// The body lives in the enclosing package's body.
		body := c.Correspond(SpecToBody, region)
		if body == nil {
			return nil
		}
		return c.searchRegion(body.DeclarativeItems(), want, sym, nil)
	case ast.KindPackageBody, ast.KindSubpBody:
		// Declaration and body share one declarative region.
		return c.searchRegion(region.DeclarativeItems(), want, sym, pos)
	}
	return nil
}

func (c *Context) bodyToSpec(n *ast.Node) *ast.Node {
	var want ast.Kind
	switch n.Kind() {
	case ast.KindPackageBody:
		want = ast.KindPackageDecl
	case ast.KindSubpBody:
		want = ast.KindSubpDecl
	default:
		return nil
	}
	sym := c.declSymbol(n)
	if sym == nil {
		return nil
	}
	if parent := n.Parent(); parent != nil && parent.Kind() == ast.KindCompilationUnit {
		return c.libraryCounterpart(n, UnitSpec, want, sym)
	}
	region := astutil.EnclosingDecl(n)
	if region == nil {
		return nil
	}
	switch region.Kind() {
	case ast.KindPackageBody:
		// A separate declaration may sit earlier in the same body, or in
		// the corresponding package specification.
		if d := c.searchRegion(region.DeclarativeItems(), want, sym, n); d != nil {
			return d
		}
		spec := c.Correspond(BodyToSpec, region)
		if spec == nil {
			return nil
		}
		return c.searchRegion(specRegionItems(spec), want, sym, nil)
	case ast.KindSubpBody:
		return c.searchRegion(region.DeclarativeItems(), want, sym, n)
	case ast.KindPackageDecl:
		return c.searchRegion(specRegionItems(region), want, sym, n)
	}
	return nil
}

// libraryCounterpart fetches the other compilation unit of n's unit and
// returns its library item when kind and name line up.
func (c *Context) libraryCounterpart(n *ast.Node, kind UnitKind, want ast.Kind, sym *symbols.Symbol) *ast.Node {
	u := c.UnitOf(n)
	if u == nil {
		return nil
	}
	other := c.FetchUnit(n, u.name, kind, true)
	if other == nil {
		return nil
	}
	item := unwrapGeneric(other.LibraryItem())
	if item == nil || item.Kind() != want || c.declSymbol(item) != sym {
		return nil
	}
	return item
}

func (c *Context) genericUnwrap(n *ast.Node) *ast.Node {
	switch n.Kind() {
	case ast.KindGenericPackageDecl, ast.KindGenericSubpDecl:
	default:
		return nil
	}
	inner := n.WrappedDecl()
	if inner == nil || !inner.Kind().IsDecl() {
		return nil
	}
	names := inner.DefiningNames()
	if len(names) == 0 {
		return nil
	}
	return names[0]
}

// formalParam resolves a parameter defining name to the parameter at the
// same 1-based position in the counterpart declaration's parameter list.
func (c *Context) formalParam(n *ast.Node) *ast.Node {
	if n.Kind() != ast.KindDefiningName {
		return nil
	}
	spec := n.FindEnclosing(ast.KindSubpSpec)
	if spec == nil {
		return nil
	}
	holder := spec.Parent()
	if holder == nil {
		return nil
	}
	pos := -1
	for i, p := range spec.Params() {
		if p == n {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil
	}
	var other *ast.Node
	switch holder.Kind() {
	case ast.KindSubpBody:
		other = c.Correspond(BodyToSpec, holder)
	case ast.KindSubpDecl:
		other = c.Correspond(SpecToBody, holder)
	default:
		return nil
	}
	if other == nil {
		return nil
	}
	params := other.SubpSpec().Params()
	if pos >= len(params) {
		return nil
	}
	return params[pos]
}

// privateToFull resolves an incomplete or private type view to the
// defining name of its completing full view.  A declaration that already
// is a full view has no correspondence.
func (c *Context) privateToFull(n *ast.Node) *ast.Node {
	switch n.Kind() {
	case ast.KindIncompleteTypeDecl, ast.KindPrivateTypeDecl:
	default:
		return nil
	}
	sym := c.declSymbol(n)
	if sym == nil {
		return nil
	}
	region := astutil.EnclosingDecl(n)
	if region == nil {
		return nil
	}
	var items []*ast.Node
	switch region.Kind() {
	case ast.KindPackageDecl:
		items = specRegionItems(region)
	case ast.KindPackageBody, ast.KindSubpBody:
		items = region.DeclarativeItems()
	default:
		return nil
	}
	full := c.searchRegion(items, ast.KindTypeDecl, sym, n)
	if full == nil {
		return nil
	}
	names := full.DefiningNames()
	if len(names) == 0 {
		return nil
	}
	return names[0]
}
