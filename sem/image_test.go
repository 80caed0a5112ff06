// Copyright © 2024 The libadalang-go authors

package sem_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/sem"
)

func TestShortImageDecls(t *testing.T) {
	ctx, dir := newStacksContext(t)
	spec := loadUnit(t, ctx, dir, "stacks.ads")

	push := findDecl(t, spec, ast.KindSubpDecl, "Push")
	assert.Equal(t, fmt.Sprintf(`<SubpDecl ["Push"] %s>`, push.Loc()), sem.ShortImage(push))

	stack := findDecl(t, spec, ast.KindPrivateTypeDecl, "Stack")
	assert.Equal(t, fmt.Sprintf(`<PrivateTypeDecl ["Stack"] %s>`, stack.Loc()), sem.ShortImage(stack))

	pkg := spec.LibraryItem()
	assert.Equal(t, fmt.Sprintf(`<PackageDecl ["Stacks"] %s>`, pkg.Loc()), sem.ShortImage(pkg))
}

func TestShortImageMultipleNames(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "pairs.ads", "package Pairs is\n   A, B : Integer := 0;\nend Pairs;\n")
	ctx := sem.NewContext(sem.WithSourceDirs(dir))
	u := loadUnit(t, ctx, dir, "pairs.ads")

	obj := findDecl(t, u, ast.KindObjectDecl, "A")
	assert.Equal(t, fmt.Sprintf(`<ObjectDecl ["A", "B"] %s>`, obj.Loc()), sem.ShortImage(obj))
}

func TestShortImageGeneric(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "queues.ads", queuesSpec)
	ctx := sem.NewContext(sem.WithSourceDirs(dir))
	u := loadUnit(t, ctx, dir, "queues.ads")

	gen := u.LibraryItem()
	require.Equal(t, ast.KindGenericPackageDecl, gen.Kind())
	// The wrapper renders with the wrapped declaration's name.
	assert.Equal(t, fmt.Sprintf(`<GenericPackageDecl ["Queues"] %s>`, gen.Loc()), sem.ShortImage(gen))
}

func TestShortImageAnonymous(t *testing.T) {
	var b ast.Builder
	// A malformed declaration with no name degrades to a placeholder, and
	// a synthetic node without tokens has no location.
	decl := b.New(ast.KindObjectDecl, nil)
	assert.Equal(t, `<ObjectDecl ["<anonymous>"] ?>`, sem.ShortImage(decl))
}

func TestShortImageNonDecl(t *testing.T) {
	var b ast.Builder
	stmt := b.New(ast.KindNullStmt, nil)
	assert.Equal(t, "<NullStmt ?>", sem.ShortImage(stmt))

	assert.Equal(t, "<null>", sem.ShortImage(nil))
}

func TestShortImageDottedName(t *testing.T) {
	ctx, dir := newStacksContext(t)
	writeSource(t, dir, "stacks-bounded.ads", `package Stacks.Bounded is
   procedure Clear;
end Stacks.Bounded;
`)
	u := loadUnit(t, ctx, dir, "stacks-bounded.ads")
	child := u.LibraryItem()
	require.NotNil(t, child)
	assert.Equal(t, fmt.Sprintf(`<PackageDecl ["Stacks.Bounded"] %s>`, child.Loc()), sem.ShortImage(child))
}
