package cxxast

// CVQualifier is a cv-qualification kind.
type CVQualifier int

const (
	Const CVQualifier = iota
	Volatile
	ConstVolatile
)

func (cv CVQualifier) String() string {
	switch cv {
	case Const:
		return "const"
	case Volatile:
		return "volatile"
	case ConstVolatile:
		return "const volatile"
	default:
		return "?"
	}
}

// ReferenceKind distinguishes `&` from `&&`.
type ReferenceKind int

const (
	LValueRef ReferenceKind = iota
	RValueRef
)

func (k ReferenceKind) symbol() string {
	if k == RValueRef {
		return "&&"
	}
	return "&"
}

// Type is the sum type of spec.md §3: Simple, Auto, DecltypeAuto,
// CVQualified, Reference, Pointer, Function. Types are immutable once
// built and compare structurally via their canonical String().
type Type interface {
	String() string
	isType()
}

func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// SimpleType names a declared or built-in type by Name, e.g. `int` or
// `std::vector<bool>`.
type SimpleType struct{ Name Name }

func (t *SimpleType) String() string { return t.Name.String() }
func (*SimpleType) isType()          {}

type autoType struct{}

func (*autoType) String() string { return "auto" }
func (*autoType) isType()        {}

type decltypeAutoType struct{}

func (*decltypeAutoType) String() string { return "decltype(auto)" }
func (*decltypeAutoType) isType()        {}

// AutoType and DecltypeAutoType are singletons: every `auto`/`decltype(auto)`
// type shares one immutable instance, since they carry no data.
var (
	AutoType         Type = &autoType{}
	DecltypeAutoType Type = &decltypeAutoType{}
)

// CVQualifiedType wraps Under with a const/volatile/const-volatile
// qualifier, rendered as a trailing qualifier (`int const`) to match the
// restricted grammar's own trailing-cv reading order (spec.md §4.3).
type CVQualifiedType struct {
	CV    CVQualifier
	Under Type
}

func (t *CVQualifiedType) String() string { return t.Under.String() + " " + t.CV.String() }
func (*CVQualifiedType) isType()          {}

// ReferenceType is `Under&` or `Under&&`.
type ReferenceType struct {
	Kind  ReferenceKind
	Under Type
}

func (t *ReferenceType) String() string { return t.Under.String() + t.Kind.symbol() }
func (*ReferenceType) isType()          {}

// PointerType is `Under*`.
type PointerType struct{ Under Type }

func (t *PointerType) String() string { return t.Under.String() + "*" }
func (*PointerType) isType()          {}

// FunctionType is a function signature used as a type, e.g. `void(int,char)`.
type FunctionType struct {
	Result Type
	Params []Type
}

func (t *FunctionType) String() string {
	s := t.Result.String() + "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}
func (*FunctionType) isType() {}

func IsPointer(t Type) bool {
	_, ok := t.(*PointerType)
	return ok
}

func IsFunction(t Type) bool {
	_, ok := t.(*FunctionType)
	return ok
}

func IsReference(t Type) bool {
	_, ok := t.(*ReferenceType)
	return ok
}

func IsCVQualified(t Type) bool {
	_, ok := t.(*CVQualifiedType)
	return ok
}
