// Copyright © 2024 The libadalang-go authors

// Package ast defines the Ada syntax tree consumed by the semantic layer.
//
// Nodes form an immutable tree with parent/child/sibling navigation and a
// per-unit stable identity.  Declaration variation is modeled as a closed
// Kind enumeration rather than interface hierarchies; semantic dispatch
// tables key off Kind.
package ast

import (
	"github.com/Pateldisolution/libadalang/parser/token"
)

type Kind uint8

const (
	KindInvalid Kind = iota

	KindCompilationUnit
	KindWithClause

	// Declarations
	KindPackageDecl
	KindPackageBody
	KindSubpDecl
	KindSubpBody
	KindGenericPackageDecl
	KindGenericSubpDecl
	KindTypeDecl
	KindIncompleteTypeDecl
	KindPrivateTypeDecl
	KindObjectDecl
	KindParamSpec

	// Declaration pieces
	KindSubpSpec
	KindGenericFormalPart
	KindParamList
	KindDefiningNameList
	KindDefiningName
	KindDeclList
	KindPrivatePart

	// Names and expressions
	KindIdentifier
	KindDottedName
	KindOpaqueExpr

	// Statements
	KindStmtList
	KindNullStmt
	KindCallStmt
	KindReturnStmt

	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		KindInvalid:            "Invalid",
		KindCompilationUnit:    "CompilationUnit",
		KindWithClause:         "WithClause",
		KindPackageDecl:        "PackageDecl",
		KindPackageBody:        "PackageBody",
		KindSubpDecl:           "SubpDecl",
		KindSubpBody:           "SubpBody",
		KindGenericPackageDecl: "GenericPackageDecl",
		KindGenericSubpDecl:    "GenericSubpDecl",
		KindTypeDecl:           "TypeDecl",
		KindIncompleteTypeDecl: "IncompleteTypeDecl",
		KindPrivateTypeDecl:    "PrivateTypeDecl",
		KindObjectDecl:         "ObjectDecl",
		KindParamSpec:          "ParamSpec",
		KindSubpSpec:           "SubpSpec",
		KindGenericFormalPart:  "GenericFormalPart",
		KindParamList:          "ParamList",
		KindDefiningNameList:   "DefiningNameList",
		KindDefiningName:       "DefiningName",
		KindDeclList:           "DeclList",
		KindPrivatePart:        "PrivatePart",
		KindIdentifier:         "Identifier",
		KindDottedName:         "DottedName",
		KindOpaqueExpr:         "OpaqueExpr",
		KindStmtList:           "StmtList",
		KindNullStmt:           "NullStmt",
		KindCallStmt:           "CallStmt",
		KindReturnStmt:         "ReturnStmt",
	}
	if k >= numKinds {
		return kindStrings[KindInvalid]
	}
	return kindStrings[k]
}

// IsDecl reports whether k is a declaration kind.  Declarations are the
// nodes that introduce defining names and participate in correspondence.
func (k Kind) IsDecl() bool {
	switch k {
	case KindPackageDecl, KindPackageBody, KindSubpDecl, KindSubpBody,
		KindGenericPackageDecl, KindGenericSubpDecl, KindTypeDecl,
		KindIncompleteTypeDecl, KindPrivateTypeDecl, KindObjectDecl,
		KindParamSpec:
		return true
	}
	return false
}

// IsBody reports whether k is a completing body kind.
func (k Kind) IsBody() bool {
	return k == KindPackageBody || k == KindSubpBody
}

// Node is an immutable syntax tree node.  A node belongs to exactly one
// analysis unit and its ID is unique within that unit.
type Node struct {
	kind     Kind
	id       uint32
	parent   *Node
	children []*Node
	tok      *token.Token // set on leaves (identifiers, literals)
}

// Builder allocates nodes with sequential identities for a single unit's
// tree.  A fresh Builder is used per parse so node IDs restart at 1.
type Builder struct {
	next uint32
}

// New allocates a node, attaching children.  Nil children are skipped so
// parse functions can pass optional pieces unconditionally.
func (b *Builder) New(kind Kind, tok *token.Token, children ...*Node) *Node {
	b.next++
	n := &Node{kind: kind, id: b.next, tok: tok}
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Count returns the number of nodes allocated so far.
func (b *Builder) Count() int {
	return int(b.next)
}

func (n *Node) Kind() Kind    { return n.kind }
func (n *Node) ID() uint32    { return n.id }
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children.  The returned slice must not be
// mutated.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Token returns the leaf token, nil for interior nodes.
func (n *Node) Token() *token.Token { return n.tok }

// NextSibling returns the following child of n's parent, or nil.
func (n *Node) NextSibling() *Node {
	return n.sibling(1)
}

// PrevSibling returns the preceding child of n's parent, or nil.
func (n *Node) PrevSibling() *Node {
	return n.sibling(-1)
}

func (n *Node) sibling(delta int) *Node {
	if n.parent == nil {
		return nil
	}
	sibs := n.parent.children
	for i, c := range sibs {
		if c == n {
			j := i + delta
			if j < 0 || j >= len(sibs) {
				return nil
			}
			return sibs[j]
		}
	}
	return nil
}

// Loc returns the source location of the node's first token.
func (n *Node) Loc() *token.Location {
	if n == nil {
		return nil
	}
	if n.tok != nil {
		return n.tok.Source
	}
	for _, c := range n.children {
		if loc := c.Loc(); loc != nil {
			return loc
		}
	}
	return nil
}

// FindEnclosing walks the parent chain (starting at n itself) and returns
// the first node whose kind is one of kinds, or nil.
func (n *Node) FindEnclosing(kinds ...Kind) *Node {
	for p := n; p != nil; p = p.parent {
		for _, k := range kinds {
			if p.kind == k {
				return p
			}
		}
	}
	return nil
}

// FindChild returns the first direct child with the given kind, or nil.
func (n *Node) FindChild(kind Kind) *Node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}
