package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intType() Type { return &SimpleType{Name: &IdentifierName{Value: "int"}} }

func TestFunctionSameSignature(t *testing.T) {
	f := NewFunction("foo", nil, intType(), []Parameter{{Name: "n", Type: intType()}}, 0)
	assert.True(t, f.SameSignature("foo", intType(), []Parameter{{Name: "m", Type: intType()}}))
	assert.False(t, f.SameSignature("bar", intType(), []Parameter{{Type: intType()}}))
	assert.False(t, f.SameSignature("foo", intType(), nil))
}

// TestFunctionMergeDefaultArgumentPromotion grounds spec.md §4.5: a later
// re-declaration's parameter default fills in one the first declaration
// omitted.
func TestFunctionMergeDefaultArgumentPromotion(t *testing.T) {
	f := NewFunction("foo", nil, intType(), []Parameter{{Name: "n", Type: intType()}}, 0)
	redecl := NewFunction("foo", nil, intType(), []Parameter{{Name: "n", Type: intType(), Default: "0"}}, 0)

	f.Merge(redecl)
	require.Len(t, f.Params, 1)
	assert.Equal(t, "0", f.Params[0].Default)
}

// TestFunctionMergeBodyPromotion grounds spec.md §4.5: merging a
// definition into a bare declaration promotes HasBody/Body.
func TestFunctionMergeBodyPromotion(t *testing.T) {
	f := NewFunction("foo", nil, intType(), nil, 0)
	require.False(t, f.HasBody)

	def := NewFunction("foo", nil, intType(), nil, 0)
	def.HasBody = true
	def.Body = "{ return 0; }"

	f.Merge(def)
	assert.True(t, f.HasBody)
	assert.Equal(t, "{ return 0; }", f.Body)
}

// TestFunctionMergeSpecifierUnion grounds spec.md §4.5: specifiers from
// either declaration survive the merge.
func TestFunctionMergeSpecifierUnion(t *testing.T) {
	f := NewFunction("foo", nil, intType(), nil, SpecInline)
	other := NewFunction("foo", nil, intType(), nil, SpecConstexpr)
	f.Merge(other)
	assert.True(t, f.Specifiers.Has(SpecInline))
	assert.True(t, f.Specifiers.Has(SpecConstexpr))
}

// TestFunctionMergeIdempotent grounds spec.md §4.5's merge-idempotence
// invariant: merging an identical re-declaration twice leaves the same
// observable state as merging it once.
func TestFunctionMergeIdempotent(t *testing.T) {
	f := NewFunction("foo", nil, intType(), []Parameter{{Name: "n", Type: intType(), Default: "0"}}, SpecInline)
	redecl := NewFunction("foo", nil, intType(), []Parameter{{Name: "n", Type: intType(), Default: "0"}}, SpecInline)

	f.Merge(redecl)
	after1 := *f
	f.Merge(redecl)
	after2 := *f

	assert.Equal(t, after1.Specifiers, after2.Specifiers)
	assert.Equal(t, after1.HasBody, after2.HasBody)
	assert.Equal(t, after1.Params, after2.Params)
}

func TestNamespaceFindMember(t *testing.T) {
	ns := NewNamespace("n", nil, false)
	cls := NewClass("Foo", ns, "struct")
	ns.AddMember(cls)

	assert.Same(t, cls, ns.FindMember("Foo"))
	assert.Nil(t, ns.FindMember("Bar"))
}

func TestClassAddAndFindMember(t *testing.T) {
	cls := NewClass("Foo", nil, "struct")
	fn := NewFunction("bar", cls, intType(), nil, SpecConst)
	cls.AddMember(Public, fn)

	found := cls.FindMember("bar")
	require.NotNil(t, found)
	assert.Same(t, fn, found)
	assert.Equal(t, Public, cls.Members[0].Access)
}

func TestVariableSpecifiersExcludeStatic(t *testing.T) {
	v := NewVariable("text", nil, &SimpleType{Name: &IdentifierName{Value: "std::string"}})
	v.Specifiers = SpecInline | SpecConstexpr
	v.Init = `"Hello World!"`

	assert.True(t, v.Specifiers.Has(SpecInline))
	assert.True(t, v.Specifiers.Has(SpecConstexpr))
	assert.False(t, v.Specifiers.Has(SpecStatic))
}

func TestFunctionKindString(t *testing.T) {
	assert.Equal(t, "none", FunctionNone.String())
	assert.Equal(t, "constructor", FunctionConstructor.String())
	assert.Equal(t, "destructor", FunctionDestructor.String())
	assert.Equal(t, "operator-overload", FunctionOperatorOverload.String())
	assert.Equal(t, "conversion", FunctionConversion.String())
}
