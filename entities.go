package cxxast

// AccessSpecifier is a class member's access level.
type AccessSpecifier int

const (
	Public AccessSpecifier = iota
	Protected
	Private
)

func (a AccessSpecifier) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	default:
		return "private"
	}
}

// Entity is the sum type of spec.md §3's semantic graph: every declared
// thing a Program can hold, distinguished by its concrete type. The CST
// node(s) that declared an entity are recorded in the Program's AstMap,
// not on the entity itself.
type Entity interface {
	Name() string
	Parent() Entity
	isEntity()
}

// Namespace owns a set of child entities and may be reopened: multiple
// NamespaceDeclaration CST nodes across (or within) files merge into one
// Namespace entity keyed by qualified name (spec.md §4.5).
type Namespace struct {
	name     string
	parent   Entity
	Members  []Entity
	Inline   bool
}

func NewNamespace(name string, parent Entity, inlineNs bool) *Namespace {
	return &Namespace{name: name, parent: parent, Inline: inlineNs}
}

func (n *Namespace) Name() string   { return n.name }
func (n *Namespace) Parent() Entity { return n.parent }
func (*Namespace) isEntity()        {}

func (n *Namespace) AddMember(e Entity) { n.Members = append(n.Members, e) }

// FindMember looks up a direct child by its unqualified name, the
// lookup a re-declaration merge needs before creating a duplicate.
func (n *Namespace) FindMember(name string) Entity {
	for _, m := range n.Members {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Class is a class/struct/union declaration. DefaultAccess follows the
// class-keyword rule (spec.md §3): `class` defaults to Private, `struct`
// and `union` default to Public.
type Class struct {
	name          string
	parent        Entity
	Kind          string // "class", "struct", or "union"
	DefaultAccess AccessSpecifier
	Bases         []BaseClass
	Members       []Member
	IsDefinition  bool
}

type BaseClass struct {
	Access AccessSpecifier
	Type   Type
	Virtual bool
}

// Member pairs a class member entity with the access under which it was
// declared.
type Member struct {
	Access AccessSpecifier
	Entity Entity
}

func NewClass(name string, parent Entity, kind string) *Class {
	def := Public
	if kind == "class" {
		def = Private
	}
	return &Class{name: name, parent: parent, Kind: kind, DefaultAccess: def}
}

func (c *Class) Name() string   { return c.name }
func (c *Class) Parent() Entity { return c.parent }
func (*Class) isEntity()        {}

func (c *Class) AddMember(access AccessSpecifier, e Entity) {
	c.Members = append(c.Members, Member{Access: access, Entity: e})
}

func (c *Class) FindMember(name string) Entity {
	for _, m := range c.Members {
		if m.Entity.Name() == name {
			return m.Entity
		}
	}
	return nil
}

// ClassTemplate is a class declaration parameterized over template
// parameters; its Class holds the member list as if fully instantiated
// generically (spec.md §3 keeps template bodies unevaluated).
type ClassTemplate struct {
	*Class
	Params []TemplateParameter
}

func NewClassTemplate(name string, parent Entity, kind string, params []TemplateParameter) *ClassTemplate {
	return &ClassTemplate{Class: NewClass(name, parent, kind), Params: params}
}

// Enum is an (optionally scoped) enumeration.
type Enum struct {
	name       string
	parent     Entity
	Scoped     bool // true for `enum class`/`enum struct`
	Underlying Type // nil if not specified
	Values     []*EnumValue
}

func NewEnum(name string, parent Entity, scoped bool, underlying Type) *Enum {
	return &Enum{name: name, parent: parent, Scoped: scoped, Underlying: underlying}
}

func (e *Enum) Name() string   { return e.name }
func (e *Enum) Parent() Entity { return e.parent }
func (*Enum) isEntity()        {}

func (e *Enum) AddValue(v *EnumValue) { e.Values = append(e.Values, v) }

// EnumValue is one enumerator. Expr holds the verbatim initializer
// expression text when present (spec.md §3: expressions are unevaluated).
type EnumValue struct {
	name   string
	parent Entity
	Expr   string
}

func NewEnumValue(name string, parent Entity, expr string) *EnumValue {
	return &EnumValue{name: name, parent: parent, Expr: expr}
}

func (v *EnumValue) Name() string   { return v.name }
func (v *EnumValue) Parent() Entity { return v.parent }
func (*EnumValue) isEntity()        {}

// FunctionSpecifier is a bit-flag set of the specifiers a function
// declaration may carry. This extends the original project's specifier
// set with Explicit/Noexcept/Pure, named directly by spec.md §3.
type FunctionSpecifier uint16

const (
	SpecInline FunctionSpecifier = 1 << iota
	SpecStatic
	SpecConstexpr
	SpecVirtual
	SpecOverride
	SpecFinal
	SpecConst
	SpecExplicit
	SpecNoexcept
	SpecPure
)

func (s FunctionSpecifier) Has(f FunctionSpecifier) bool { return s&f != 0 }

// FunctionKind distinguishes the special member/operator shapes a
// Function declaration may take (spec.md §3).
type FunctionKind int

const (
	FunctionNone FunctionKind = iota
	FunctionConstructor
	FunctionDestructor
	FunctionOperatorOverload
	FunctionConversion
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionConstructor:
		return "constructor"
	case FunctionDestructor:
		return "destructor"
	case FunctionOperatorOverload:
		return "operator-overload"
	case FunctionConversion:
		return "conversion"
	default:
		return "none"
	}
}

// Parameter is one function parameter.
type Parameter struct {
	Name    string
	Type    Type
	Default string // verbatim default-argument expression, "" if absent
}

// Function is a free function, member function, or constructor/destructor.
// Re-declarations of the same signature (spec.md §4.5's merge rule) update
// this same Function rather than creating a duplicate: a later definition
// supplies Body, and a later declaration may add parameter defaults that an
// earlier one omitted.
type Function struct {
	name          string
	parent        Entity
	ReturnType    Type // nil for constructors/destructors
	Params        []Parameter
	TemplateParams []TemplateParameter
	Specifiers    FunctionSpecifier
	Kind          FunctionKind
	HasBody       bool
	Body          string // verbatim compound-statement text, "" if undefined
}

func NewFunction(name string, parent Entity, ret Type, params []Parameter, spec FunctionSpecifier) *Function {
	return &Function{name: name, parent: parent, ReturnType: ret, Params: params, Specifiers: spec}
}

func (f *Function) Name() string   { return f.name }
func (f *Function) Parent() Entity { return f.parent }
func (*Function) isEntity()        {}

// SameSignature reports whether a declaration with the given name, return
// type, and parameters is a re-declaration of f: same name, same arity,
// pairwise-equal parameter types, and equal return type.
func (f *Function) SameSignature(name string, ret Type, params []Parameter) bool {
	if f.name != name || len(f.Params) != len(params) {
		return false
	}
	if !TypesEqual(f.ReturnType, ret) {
		return false
	}
	for i := range params {
		if !TypesEqual(f.Params[i].Type, params[i].Type) {
			return false
		}
	}
	return true
}

// Merge folds a re-declaration into f per spec.md §4.5: parameter
// defaults present on either declaration are kept, and a body supplied by
// either promotes f to a definition.
func (f *Function) Merge(other *Function) {
	for i := range f.Params {
		if f.Params[i].Default == "" && i < len(other.Params) && other.Params[i].Default != "" {
			f.Params[i].Default = other.Params[i].Default
		}
	}
	f.Specifiers |= other.Specifiers
	if other.HasBody {
		f.HasBody = true
		f.Body = other.Body
	}
}

// Variable is a namespace-scope or local variable/field declaration.
// Specifiers reuses FunctionSpecifier's bit flags, of which only
// Inline/Static/Constexpr apply to a variable (spec.md §3).
type Variable struct {
	name       string
	parent     Entity
	Type       Type
	Init       string // verbatim initializer expression, "" if absent
	Specifiers FunctionSpecifier
}

func NewVariable(name string, parent Entity, typ Type) *Variable {
	return &Variable{name: name, parent: parent, Type: typ}
}

func (v *Variable) Name() string   { return v.name }
func (v *Variable) Parent() Entity { return v.parent }
func (*Variable) isEntity()        {}

// Typedef is a `typedef`/`using` type alias.
type Typedef struct {
	name    string
	parent  Entity
	Aliased Type
}

func NewTypedef(name string, parent Entity, aliased Type) *Typedef {
	return &Typedef{name: name, parent: parent, Aliased: aliased}
}

func (t *Typedef) Name() string   { return t.name }
func (t *Typedef) Parent() Entity { return t.parent }
func (*Typedef) isEntity()        {}

// Macro is a preprocessor object-like or function-like macro definition.
type Macro struct {
	name       string
	parent     Entity
	Params     []string // nil for an object-like macro
	IsFunction bool
	Body       string // verbatim replacement text
}

func NewMacro(name string, parent Entity, params []string, isFunc bool, body string) *Macro {
	return &Macro{name: name, parent: parent, Params: params, IsFunction: isFunc, Body: body}
}

func (m *Macro) Name() string   { return m.name }
func (m *Macro) Parent() Entity { return m.parent }
func (*Macro) isEntity()        {}

// TemplateParameterEntity exposes a class/function template's own
// parameter list as lookups inside the template's body can resolve
// against (e.g. a parameter named as a return type).
type TemplateParameterEntity struct {
	name   string
	parent Entity
	Param  TemplateParameter
}

func NewTemplateParameterEntity(parent Entity, p TemplateParameter) *TemplateParameterEntity {
	return &TemplateParameterEntity{name: p.Name, parent: parent, Param: p}
}

func (t *TemplateParameterEntity) Name() string   { return t.name }
func (t *TemplateParameterEntity) Parent() Entity { return t.parent }
func (*TemplateParameterEntity) isEntity()        {}
