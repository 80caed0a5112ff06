// Copyright © 2024 The libadalang-go authors

package sem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/sem"
)

func TestSpecToBodyEndToEnd(t *testing.T) {
	ctx, dir := newStacksContext(t)
	spec := loadUnit(t, ctx, dir, "stacks.ads")
	pushDecl := findDecl(t, spec, ast.KindSubpDecl, "Push")

	// The body unit loads on demand.
	pushBody := ctx.Correspond(sem.SpecToBody, pushDecl)
	require.NotNil(t, pushBody)
	assert.Equal(t, ast.KindSubpBody, pushBody.Kind())
	require.NotNil(t, ctx.Unit("stacks", sem.UnitBody))

	// The inverse direction returns the original declaration.
	back := ctx.Correspond(sem.BodyToSpec, pushBody)
	assert.Same(t, pushDecl, back)

	// Package-level correspondence.
	pkg := spec.LibraryItem()
	pkgBody := ctx.Correspond(sem.SpecToBody, pkg)
	require.NotNil(t, pkgBody)
	assert.Equal(t, ast.KindPackageBody, pkgBody.Kind())
	assert.Same(t, pkg, ctx.Correspond(sem.BodyToSpec, pkgBody))
}

func TestNestedPackageCorrespondence(t *testing.T) {
	ctx, dir := newStacksContext(t)
	spec := loadUnit(t, ctx, dir, "stacks.ads")

	inner := findDecl(t, spec, ast.KindPackageDecl, "Inner")
	innerBody := ctx.Correspond(sem.SpecToBody, inner)
	require.NotNil(t, innerBody)
	assert.Equal(t, ast.KindPackageBody, innerBody.Kind())

	ping := findDecl(t, spec, ast.KindSubpDecl, "Ping")
	pingBody := ctx.Correspond(sem.SpecToBody, ping)
	require.NotNil(t, pingBody)
	assert.Equal(t, ast.KindSubpBody, pingBody.Kind())
	assert.Same(t, ping, ctx.Correspond(sem.BodyToSpec, pingBody))
}

func TestBodyWithoutSeparateDecl(t *testing.T) {
	ctx, dir := newStacksContext(t)
	body := loadUnit(t, ctx, dir, "stacks.adb")

	// Local has no separate declaration anywhere.
	local := findDecl(t, body, ast.KindSubpBody, "Local")
	assert.Nil(t, ctx.Correspond(sem.BodyToSpec, local))
}

func TestSpecToBodyNoBodyUnit(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lone.ads", "package Lone is\n   procedure Op;\nend Lone;\n")
	ctx := sem.NewContext(sem.WithSourceDirs(dir))
	spec := loadUnit(t, ctx, dir, "lone.ads")

	// No body file on disk: contained absence, not an error.
	op := findDecl(t, spec, ast.KindSubpDecl, "Op")
	assert.Nil(t, ctx.Correspond(sem.SpecToBody, op))
	assert.Nil(t, ctx.Correspond(sem.SpecToBody, spec.LibraryItem()))
}

func TestFormalParameterRoundTrip(t *testing.T) {
	ctx, dir := newStacksContext(t)
	body := loadUnit(t, ctx, dir, "stacks.adb")
	spec := loadUnit(t, ctx, dir, "stacks.ads")

	pushBody := findDecl(t, body, ast.KindSubpBody, "Push")
	pushDecl := findDecl(t, spec, ast.KindSubpDecl, "Push")
	bodyParams := pushBody.SubpSpec().Params()
	declParams := pushDecl.SubpSpec().Params()
	require.Len(t, bodyParams, 2)
	require.Len(t, declParams, 2)

	// Body parameter X resolves to the declaration's X at the same
	// position, and the inverse round-trips.
	bodyX := bodyParams[1]
	specX := ctx.Correspond(sem.FormalParameter, bodyX)
	require.NotNil(t, specX)
	assert.Same(t, declParams[1], specX)
	assert.Same(t, bodyX, ctx.Correspond(sem.FormalParameter, specX))

	// Non-parameter defining names have no correspondence.
	assert.Nil(t, ctx.Correspond(sem.FormalParameter, pushDecl))
}

func TestFormalParameterPositionOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "p.ads", "package P is\n   procedure Op (X : Integer);\nend P;\n")
	writeSource(t, dir, "p.adb", `package body P is
   procedure Op (X : Integer; Extra : Integer) is
   begin
      null;
   end Op;
end P;
`)
	ctx := sem.NewContext(sem.WithSourceDirs(dir))
	body := loadUnit(t, ctx, dir, "p.adb")

	op := findDecl(t, body, ast.KindSubpBody, "Op")
	params := op.SubpSpec().Params()
	require.Len(t, params, 2)
	assert.NotNil(t, ctx.Correspond(sem.FormalParameter, params[0]))
	assert.Nil(t, ctx.Correspond(sem.FormalParameter, params[1]))
}

func TestPrivateToFullView(t *testing.T) {
	ctx, dir := newStacksContext(t)
	spec := loadUnit(t, ctx, dir, "stacks.ads")

	private := findDecl(t, spec, ast.KindPrivateTypeDecl, "Stack")
	fullName := ctx.Correspond(sem.PrivateToFull, private)
	require.NotNil(t, fullName)
	assert.Equal(t, ast.KindDefiningName, fullName.Kind())
	full := ast.DeclOf(fullName)
	assert.Equal(t, ast.KindTypeDecl, full.Kind())

	// A full view has no further correspondence.
	assert.Nil(t, ctx.Correspond(sem.PrivateToFull, full))
}

func TestIncompleteToFullView(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "shapes.ads", `package Shapes is
   type Node;
   type Node_Ref is private;
   type Node is record
      Value : Integer;
   end record;
private
   type Node_Ref is record
      Ref : Integer;
   end record;
end Shapes;
`)
	ctx := sem.NewContext(sem.WithSourceDirs(dir))
	spec := loadUnit(t, ctx, dir, "shapes.ads")

	incomplete := findDecl(t, spec, ast.KindIncompleteTypeDecl, "Node")
	fullName := ctx.Correspond(sem.PrivateToFull, incomplete)
	require.NotNil(t, fullName)
	assert.Equal(t, "Node", ast.NameText(fullName))

	// The private view completes in the private part.
	private := findDecl(t, spec, ast.KindPrivateTypeDecl, "Node_Ref")
	privFull := ctx.Correspond(sem.PrivateToFull, private)
	require.NotNil(t, privFull)
	assert.Equal(t, ast.KindTypeDecl, ast.DeclOf(privFull).Kind())
}

func TestGenericCorrespondence(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "queues.ads", queuesSpec)
	writeSource(t, dir, "queues.adb", queuesBody)
	ctx := sem.NewContext(sem.WithSourceDirs(dir))
	spec := loadUnit(t, ctx, dir, "queues.ads")

	gen := spec.LibraryItem()
	require.Equal(t, ast.KindGenericPackageDecl, gen.Kind())

	// Unwrap yields the wrapped declaration's defining name.
	inner := ctx.Correspond(sem.GenericUnwrap, gen)
	require.NotNil(t, inner)
	assert.Equal(t, ast.KindDefiningName, inner.Kind())
	assert.Equal(t, "Queues", ast.NameText(inner))

	// Non-generic declarations do not unwrap.
	assert.Nil(t, ctx.Correspond(sem.GenericUnwrap, ast.DeclOf(inner)))

	// The generic's body pairs through the wrapper.
	body := ctx.Correspond(sem.SpecToBody, gen)
	require.NotNil(t, body)
	assert.Equal(t, ast.KindPackageBody, body.Kind())

	enq := findDecl(t, spec, ast.KindSubpDecl, "Enqueue")
	enqBody := ctx.Correspond(sem.SpecToBody, enq)
	require.NotNil(t, enqBody)
	assert.Equal(t, ast.KindSubpBody, enqBody.Kind())
}

func TestCorrespondenceNotServedFromDestroyedTree(t *testing.T) {
	ctx, dir := newStacksContext(t)
	spec := loadUnit(t, ctx, dir, "stacks.ads")
	pushDecl := findDecl(t, spec, ast.KindSubpDecl, "Push")

	old := ctx.Correspond(sem.SpecToBody, pushDecl)
	require.NotNil(t, old)
	body := ctx.Unit("stacks", sem.UnitBody)
	require.NotNil(t, body)

	// Reloading the body destroys the tree the memoized result points
	// into; the next resolution must return the live counterpart.
	require.NoError(t, body.Reload())
	fresh := ctx.Correspond(sem.SpecToBody, pushDecl)
	require.NotNil(t, fresh)
	assert.NotSame(t, old, fresh)
	assert.Same(t, body, ctx.UnitOf(fresh))
	assert.Equal(t, ast.KindSubpBody, fresh.Kind())

	// The recomputed result is memoized in turn.
	assert.Same(t, fresh, ctx.Correspond(sem.SpecToBody, pushDecl))
}

func TestCorrespondenceMemoized(t *testing.T) {
	ctx, dir := newStacksContext(t)
	spec := loadUnit(t, ctx, dir, "stacks.ads")
	pushDecl := findDecl(t, spec, ast.KindSubpDecl, "Push")

	first := ctx.Correspond(sem.SpecToBody, pushDecl)
	second := ctx.Correspond(sem.SpecToBody, pushDecl)
	require.NotNil(t, first)
	assert.Same(t, first, second)

	assert.Nil(t, ctx.Correspond(sem.SpecToBody, nil))
}
