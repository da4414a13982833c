package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQualifiedNameIsLeftAssociative grounds spec.md §4.3's requirement
// that a chain of `::`-separated segments folds left-associatively:
// `n::Foo::bar` groups as `(n::Foo)::bar`, not `n::(Foo::bar)`.
func TestQualifiedNameIsLeftAssociative(t *testing.T) {
	p, err := newScratchParser("n::Foo::bar")
	require.NoError(t, err)
	name, err := p.parseName()
	require.NoError(t, err)

	qn, ok := name.(*QualifiedName)
	require.True(t, ok)
	assert.Equal(t, "bar", qn.Right.String())

	left, ok := qn.Left.(*QualifiedName)
	require.True(t, ok)
	assert.Equal(t, "n", left.Left.String())
	assert.Equal(t, "Foo", left.Right.String())

	assert.Equal(t, "n::Foo::bar", name.String())
}

func TestFlattenQualifiedMatchesParseOrder(t *testing.T) {
	p, err := newScratchParser("a::b::c::d")
	require.NoError(t, err)
	name, err := p.parseName()
	require.NoError(t, err)

	segs := flattenQualified(name)
	require.Len(t, segs, 4)
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, segs[i].String())
	}
}

func TestDestructorName(t *testing.T) {
	p, err := newScratchParser("~Foo")
	require.NoError(t, err)
	name, err := p.parseName()
	require.NoError(t, err)
	assert.Equal(t, "~Foo", name.String())
	_, ok := name.(*DestructorName)
	assert.True(t, ok)
}

func TestTemplateNameQualified(t *testing.T) {
	p, err := newScratchParser("std::vector<int>")
	require.NoError(t, err)
	name, err := p.parseName()
	require.NoError(t, err)
	assert.Equal(t, "std::vector<int>", name.String())
}
