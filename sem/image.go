// Copyright © 2024 The libadalang-go authors

package sem

import (
	"fmt"
	"strings"

	"github.com/Pateldisolution/libadalang/ast"
)

// anonymousName renders a defining name slot that has no usable name.
const anonymousName = "<anonymous>"

// ShortImage renders a compact summary of a declaration for diagnostics:
//
//	<SubpDecl ["Push"] stacks.ads:4:4>
//
// The walk is purely structural: it performs no query that could produce
// a contained failure, so it is always safe to call from error paths.
// Non-declaration nodes render without a name list.
func ShortImage(n *ast.Node) string {
	if n == nil {
		return "<null>"
	}
	loc := "?"
	if l := n.Loc(); l != nil {
		loc = l.String()
	}
	if !n.Kind().IsDecl() {
		return fmt.Sprintf("<%s %s>", n.Kind(), loc)
	}
	names := imageNames(n)
	if len(names) == 0 {
		names = []string{fmt.Sprintf("%q", anonymousName)}
	}
	return fmt.Sprintf("<%s [%s] %s>", n.Kind(), strings.Join(names, ", "), loc)
}

// imageNames collects a declaration's defining names without the typed
// accessors, so a malformed tree degrades to placeholders instead of
// aborting.
func imageNames(decl *ast.Node) []string {
	var rendered []string
	for _, name := range structuralNames(decl) {
		rendered = append(rendered, fmt.Sprintf("%q", nameImage(name)))
	}
	return rendered
}

func structuralNames(decl *ast.Node) []*ast.Node {
	switch decl.Kind() {
	case ast.KindPackageDecl, ast.KindPackageBody, ast.KindTypeDecl,
		ast.KindIncompleteTypeDecl, ast.KindPrivateTypeDecl:
		if name := decl.FindChild(ast.KindDefiningName); name != nil {
			return []*ast.Node{name}
		}
	case ast.KindSubpDecl, ast.KindSubpBody:
		if spec := decl.FindChild(ast.KindSubpSpec); spec != nil {
			if name := spec.FindChild(ast.KindDefiningName); name != nil {
				return []*ast.Node{name}
			}
		}
	case ast.KindGenericPackageDecl, ast.KindGenericSubpDecl:
		for _, c := range decl.Children() {
			if c.Kind() != ast.KindGenericFormalPart {
				return structuralNames(c)
			}
		}
	case ast.KindObjectDecl, ast.KindParamSpec:
		if list := decl.FindChild(ast.KindDefiningNameList); list != nil {
			return list.Children()
		}
	}
	return nil
}

// nameImage renders a name node, unwrapping qualified forms down to
// single-token leaves.
func nameImage(n *ast.Node) string {
	if n == nil {
		return anonymousName
	}
	switch n.Kind() {
	case ast.KindDefiningName:
		return nameImage(n.Child(0))
	case ast.KindDottedName:
		parts := make([]string, 0, n.NumChildren())
		for _, c := range n.Children() {
			parts = append(parts, nameImage(c))
		}
		return strings.Join(parts, ".")
	case ast.KindIdentifier:
		if n.Token() != nil {
			return n.Token().Text
		}
	}
	return anonymousName
}
