package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKindStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "ClassDeclaration", NodeClassDeclaration.String())
	assert.Equal(t, "Unknown", NodeKind(9999).String())
}

func TestDeclarationNodeCarriesEntity(t *testing.T) {
	f := newSourceFile("f.cpp", []byte("void foo();"))
	rg := SourceRange{Start: SourcePosition{File: f}, End: SourcePosition{File: f}}
	fn := NewFunction("foo", nil, nil, nil, 0)
	n := NewDeclarationNode(NodeFunctionDeclaration, rg, fn)
	assert.Same(t, Entity(fn), n.Entity())
	assert.Equal(t, NodeFunctionDeclaration, n.Kind())
}

func TestAddChildSetsParentAndOrder(t *testing.T) {
	f := newSourceFile("f.cpp", []byte("int x;"))
	rg := SourceRange{Start: SourcePosition{File: f}, End: SourcePosition{File: f}}
	root := NewGenericNode(NodeRoot, rg)
	a := NewGenericNode(NodeUnexposed, rg)
	b := NewGenericNode(NodeUnexposed, rg)
	root.AddChild(a)
	root.AddChild(b)

	require.Len(t, root.Children(), 2)
	assert.Same(t, AstNode(root), root.Children()[0].Parent())
	assert.Same(t, a, root.Children()[0])
	assert.Same(t, b, root.Children()[1])
}

func TestDumpFormatMatchesScenario(t *testing.T) {
	root, err := ParseSource("int x;", nil)
	require.NoError(t, err)

	out := Dump(root)
	assert.Contains(t, out, "[Root]")
	assert.Contains(t, out, "[VariableDeclaration] x")
}

func TestCSTContainmentInvariant(t *testing.T) {
	root, err := ParseSource("namespace n { int x; }", nil)
	require.NoError(t, err)
	require.Len(t, root.Children(), 1)
	ns := root.Children()[0]
	require.Len(t, ns.Children(), 1)
	child := ns.Children()[0]
	assert.True(t, ns.Range().Contains(child.Range()))
	assert.True(t, root.Range().Contains(ns.Range()))
}
