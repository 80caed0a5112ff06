// Copyright © 2024 The libadalang-go authors

package ast

import (
	"fmt"
	"strings"
)

// mustKind enforces a kind contract on typed accessors.  Passing a node of
// the wrong kind is a caller bug, not a recoverable condition, so it aborts
// the current call.
func mustKind(n *Node, kinds ...Kind) {
	for _, k := range kinds {
		if n.kind == k {
			return
		}
	}
	panic(fmt.Sprintf("ast: %s node passed to accessor expecting %v", n.kind, kinds))
}

// DefiningNames returns the defining name nodes introduced by a
// declaration, in lexical order.  Declarations with a single name return a
// one-element slice; multi-name declarations (objects, parameters) return
// every name.  Generic wrappers return the wrapped declaration's names.
// DefiningNames panics when decl is not a declaration kind.
func (n *Node) DefiningNames() []*Node {
	switch n.kind {
	case KindPackageDecl, KindPackageBody, KindTypeDecl,
		KindIncompleteTypeDecl, KindPrivateTypeDecl:
		return []*Node{n.FindChild(KindDefiningName)}
	case KindSubpDecl, KindSubpBody:
		return []*Node{n.SubpSpec().FindChild(KindDefiningName)}
	case KindGenericPackageDecl, KindGenericSubpDecl:
		return n.WrappedDecl().DefiningNames()
	case KindObjectDecl, KindParamSpec:
		list := n.FindChild(KindDefiningNameList)
		return append([]*Node(nil), list.children...)
	}
	mustKind(n, KindPackageDecl) // unreachable; reports the kind violation
	return nil
}

// SubpSpec returns the subprogram specification of a subprogram declaration
// or body.
func (n *Node) SubpSpec() *Node {
	mustKind(n, KindSubpDecl, KindSubpBody)
	return n.FindChild(KindSubpSpec)
}

// WrappedDecl returns the declaration wrapped by a generic declaration.
func (n *Node) WrappedDecl() *Node {
	mustKind(n, KindGenericPackageDecl, KindGenericSubpDecl)
	for _, c := range n.children {
		if c.kind != KindGenericFormalPart {
			return c
		}
	}
	panic("ast: generic declaration with no wrapped declaration")
}

// DeclarativeItems returns the declarations directly contained in a
// declarative region (package visible part, package body, or subprogram
// body declarative part).
func (n *Node) DeclarativeItems() []*Node {
	mustKind(n, KindPackageDecl, KindPackageBody, KindSubpBody)
	list := n.FindChild(KindDeclList)
	if list == nil {
		return nil
	}
	return list.children
}

// PrivateItems returns the declarations of a package's private part, if
// present.
func (n *Node) PrivateItems() []*Node {
	mustKind(n, KindPackageDecl)
	priv := n.FindChild(KindPrivatePart)
	if priv == nil {
		return nil
	}
	return priv.children
}

// Params returns the flattened parameter defining names of a subprogram
// specification, in lexical order across parameter specifications.
func (n *Node) Params() []*Node {
	mustKind(n, KindSubpSpec)
	list := n.FindChild(KindParamList)
	if list == nil {
		return nil
	}
	var names []*Node
	for _, spec := range list.children {
		names = append(names, spec.FindChild(KindDefiningNameList).children...)
	}
	return names
}

// NameLeaf returns the rightmost identifier of a name, unwrapping defining
// names and dotted prefixes.  NameLeaf panics when n is not a name kind.
func NameLeaf(n *Node) *Node {
	switch n.kind {
	case KindIdentifier:
		return n
	case KindDefiningName:
		return NameLeaf(n.Child(0))
	case KindDottedName:
		return NameLeaf(n.Child(len(n.children) - 1))
	}
	mustKind(n, KindIdentifier, KindDefiningName, KindDottedName)
	return nil
}

// NameText renders a name as its source text, joining dotted components.
// The result preserves the original casing; callers that need identity use
// the symbol table instead.
func NameText(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case KindIdentifier:
		return n.tok.Text
	case KindDefiningName:
		return NameText(n.Child(0))
	case KindDottedName:
		parts := make([]string, 0, len(n.children))
		for _, c := range n.children {
			parts = append(parts, NameText(c))
		}
		return strings.Join(parts, ".")
	}
	mustKind(n, KindIdentifier, KindDefiningName, KindDottedName)
	return ""
}

// DeclOf returns the declaration a defining name belongs to.  Every
// defining name belongs to exactly one declaration.
func DeclOf(name *Node) *Node {
	mustKind(name, KindDefiningName)
	for p := name.parent; p != nil; p = p.parent {
		if p.kind.IsDecl() {
			return p
		}
	}
	return nil
}
