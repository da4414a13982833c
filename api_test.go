package cxxast

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 (spec.md §8): a free function signature with a defaulted
// second parameter.
func TestScenarioFunctionSignatureWithDefault(t *testing.T) {
	fn, err := ParseFunctionSignature("int foo(int n, int = 0);")
	require.NoError(t, err)
	assert.Equal(t, "foo", fn.Name())
	assert.Equal(t, "int", fn.ReturnType.String())
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Params[0].Type.String())
	assert.Equal(t, "int", fn.Params[1].Type.String())
	assert.Equal(t, "0", fn.Params[1].Default)
}

// Scenario 2 (spec.md §8): a const, zero-parameter member-style signature
// with a qualified return type.
func TestScenarioConstZeroArityFunction(t *testing.T) {
	fn, err := ParseFunctionSignature("std::vector<bool> vec_of_bool() const;")
	require.NoError(t, err)
	assert.Equal(t, "vec_of_bool", fn.Name())
	assert.Equal(t, "std::vector<bool>", fn.ReturnType.String())
	assert.Len(t, fn.Params, 0)
	assert.True(t, fn.Specifiers.Has(SpecConst))
}

// Scenario 3 (spec.md §8): `const int*` is a pointer to a const int.
func TestScenarioConstIntPointer(t *testing.T) {
	typ, err := ParseType("const int*")
	require.NoError(t, err)
	require.True(t, IsPointer(typ))
	ptr := typ.(*PointerType)
	require.True(t, IsCVQualified(ptr.Under))
	assert.Equal(t, Const, ptr.Under.(*CVQualifiedType).CV)
}

// Scenario 4 (spec.md §8): a function type used as a type.
func TestScenarioFunctionTypeValue(t *testing.T) {
	typ, err := ParseType("void(int,char)")
	require.NoError(t, err)
	require.True(t, IsFunction(typ))
	fn := typ.(*FunctionType)
	assert.Equal(t, "void", fn.Result.String())
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Params[0].String())
	assert.Equal(t, "char", fn.Params[1].String())
}

// Scenario 5 (spec.md §8): an inline constexpr variable with a string
// initializer; the specifier set excludes Static.
func TestScenarioInlineConstexprVariable(t *testing.T) {
	v, err := ParseVariable(`inline constexpr std::string text = "Hello World!";`)
	require.NoError(t, err)
	assert.Equal(t, "text", v.Name())
	assert.Equal(t, "std::string", v.Type.String())
	assert.Equal(t, `"Hello World!"`, v.Init)
	assert.True(t, v.Specifiers.Has(SpecInline))
	assert.True(t, v.Specifiers.Has(SpecConstexpr))
	assert.False(t, v.Specifiers.Has(SpecStatic))
}

// Scenario 6 (spec.md §8): an out-of-line member-function definition,
// qualified through a namespace whose name duplicates the class's first
// qualifier segment, must merge into the class's pre-declared member
// rather than create a spurious top-level entity.
func TestScenarioQualifiedOutOfLineDefinitionMerges(t *testing.T) {
	src := `namespace n { struct Foo { int bar() const; }; int n::Foo::bar() const { return -1; } }`
	program := NewProgram()
	cfg := NewConfig()
	file := newSourceFile("", []byte(src))
	parser, err := NewParser(file, program, cfg)
	require.NoError(t, err)
	_, err = parser.ParseTranslationUnit()
	require.NoError(t, err)

	require.Len(t, program.Global.Members, 1)
	ns, ok := program.Global.Members[0].(*Namespace)
	require.True(t, ok)
	assert.Equal(t, "n", ns.Name())

	fooEntity := ns.FindMember("Foo")
	require.NotNil(t, fooEntity)
	foo, ok := fooEntity.(*Class)
	require.True(t, ok)
	assert.Equal(t, "struct", foo.Kind)

	require.Len(t, foo.Members, 1)
	bar, ok := foo.Members[0].Entity.(*Function)
	require.True(t, ok)
	assert.Equal(t, "bar", bar.Name())
	assert.True(t, bar.Specifiers.Has(SpecConst))
	assert.Equal(t, "int", bar.ReturnType.String())
	require.True(t, bar.HasBody)
	assert.Contains(t, bar.Body, "return -1;")
}

func TestParseMacroObjectLike(t *testing.T) {
	m, err := ParseMacro("#define MAX_SIZE 128")
	require.NoError(t, err)
	assert.Equal(t, "MAX_SIZE", m.Name())
	assert.False(t, m.IsFunction)
	assert.Equal(t, "128", m.Body)
}

func TestParseMacroFunctionLike(t *testing.T) {
	m, err := ParseMacro("#define MAX(a, b) ((a) > (b) ? (a) : (b))")
	require.NoError(t, err)
	assert.Equal(t, "MAX", m.Name())
	assert.True(t, m.IsFunction)
	assert.Equal(t, []string{"a", "b"}, m.Params)
	assert.Equal(t, "((a) > (b) ? (a) : (b))", m.Body)
}

func TestParseTypedefBothForms(t *testing.T) {
	td, err := ParseTypedef("typedef int MyInt;")
	require.NoError(t, err)
	assert.Equal(t, "MyInt", td.Name())
	assert.Equal(t, "int", td.Aliased.String())

	td2, err := ParseTypedef("using MyInt2 = int;")
	require.NoError(t, err)
	assert.Equal(t, "MyInt2", td2.Name())
	assert.Equal(t, "int", td2.Aliased.String())
}

func TestParseFileCachesByPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/a.cpp"
	require.NoError(t, os.WriteFile(path, []byte("int x;"), 0o644))

	cache := NewFileCache()
	cfg := NewConfig()
	_, _, err := ParseFile(path, cache, cfg)
	require.NoError(t, err)

	f := cache.Lookup(path)
	require.NotNil(t, f)
	assert.Equal(t, path, f.Path)
}
