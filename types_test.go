package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesEqual(t *testing.T) {
	intType := &SimpleType{Name: &IdentifierName{Value: "int"}}
	otherInt := &SimpleType{Name: &IdentifierName{Value: "int"}}
	boolType := &SimpleType{Name: &IdentifierName{Value: "bool"}}

	assert.True(t, TypesEqual(intType, otherInt))
	assert.False(t, TypesEqual(intType, boolType))
	assert.True(t, TypesEqual(nil, nil))
	assert.False(t, TypesEqual(intType, nil))
}

func TestTypeRoundTrip(t *testing.T) {
	tests := []string{
		"int",
		"const int*",
		"int const",
		"int&",
		"int&&",
		"void(int,char)",
		"vector<vector<int>>",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			typ, err := ParseType(src)
			require.NoError(t, err)
			reparsed, err := ParseType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ.String(), reparsed.String())
		})
	}
}

func TestPointerType(t *testing.T) {
	typ, err := ParseType("const int*")
	require.NoError(t, err)
	require.True(t, IsPointer(typ))
	ptr := typ.(*PointerType)
	require.True(t, IsCVQualified(ptr.Under))
	cv := ptr.Under.(*CVQualifiedType)
	assert.Equal(t, Const, cv.CV)
}

// TestNestedTemplateAngleSplitting grounds spec.md §8's "angle splitting"
// property: a `>>` that closes two nested template-argument lists at once
// must be split so each level sees its own `>`, producing a nested
// TemplateName rather than an unmatched-delimiter error.
func TestNestedTemplateAngleSplitting(t *testing.T) {
	typ, err := ParseType("vector<vector<int>>")
	require.NoError(t, err)
	assert.Equal(t, "vector<vector<int>>", typ.String())

	outer, ok := typ.(*SimpleType)
	require.True(t, ok)
	outerName, ok := outer.Name.(*TemplateName)
	require.True(t, ok)
	assert.Equal(t, "vector", outerName.Base.String())
	require.Len(t, outerName.Args, 1)

	innerType, ok := outerName.Args[0].Type.(*SimpleType)
	require.True(t, ok, "inner argument must parse as a Type, not fall back to verbatim text")
	innerName, ok := innerType.Name.(*TemplateName)
	require.True(t, ok)
	assert.Equal(t, "vector", innerName.Base.String())
	require.Len(t, innerName.Args, 1)
	assert.Equal(t, "int", innerName.Args[0].Type.String())
}

func TestFunctionTypeShape(t *testing.T) {
	typ, err := ParseType("void(int,char)")
	require.NoError(t, err)
	require.True(t, IsFunction(typ))
	fn := typ.(*FunctionType)
	assert.Equal(t, "void", fn.Result.String())
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Params[0].String())
	assert.Equal(t, "char", fn.Params[1].String())
}
