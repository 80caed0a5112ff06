// Copyright © 2024 The libadalang-go authors

// Package astutil provides structural helpers shared by the semantic layer
// and the command line tools.
package astutil

import "github.com/Pateldisolution/libadalang/ast"

// Walk visits every node of the tree rooted at n in depth-first order.
// Returning false from fn prunes the subtree below the visited node.
func Walk(n *ast.Node, fn func(*ast.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Collect returns every node under root with the given kind, in lexical
// order.
func Collect(root *ast.Node, kind ast.Kind) []*ast.Node {
	var nodes []*ast.Node
	Walk(root, func(n *ast.Node) bool {
		if n.Kind() == kind {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Decls returns every declaration node under root, in lexical order.
func Decls(root *ast.Node) []*ast.Node {
	var nodes []*ast.Node
	Walk(root, func(n *ast.Node) bool {
		if n.Kind().IsDecl() {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// LibraryItem returns the library-level declaration of a compilation unit,
// or nil for an empty or malformed unit.
func LibraryItem(root *ast.Node) *ast.Node {
	if root == nil || root.Kind() != ast.KindCompilationUnit {
		return nil
	}
	for _, c := range root.Children() {
		if c.Kind().IsDecl() {
			return c
		}
	}
	return nil
}

// WithedNames returns the name node of every with clause of a compilation
// unit.
func WithedNames(root *ast.Node) []*ast.Node {
	if root == nil || root.Kind() != ast.KindCompilationUnit {
		return nil
	}
	var names []*ast.Node
	for _, c := range root.Children() {
		if c.Kind() == ast.KindWithClause {
			names = append(names, c.Child(0))
		}
	}
	return names
}

// EnclosingDecl returns the nearest enclosing declaration of n, excluding n
// itself, or nil at the library level.
func EnclosingDecl(n *ast.Node) *ast.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind().IsDecl() {
			return p
		}
	}
	return nil
}
