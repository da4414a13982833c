package cxxast

import "strings"

// Name is the sum type of spec.md §3: Identifier, Operator, Conversion,
// LiteralOperator, Template, Destructor, and (left-associative) Qualified.
// Every variant renders to a total, canonical string.
type Name interface {
	String() string
	isName()
}

// IdentifierName is a plain identifier, e.g. `foo`.
type IdentifierName struct{ Value string }

func (n *IdentifierName) String() string { return n.Value }
func (*IdentifierName) isName()          {}

// OperatorName is `operator` followed by an operator symbol, e.g.
// `operator==`, `operator()`, `operator[]`.
type OperatorName struct{ Symbol string }

func (n *OperatorName) String() string { return "operator" + n.Symbol }
func (*OperatorName) isName()          {}

// ConversionName is a user-defined conversion function name, e.g.
// `operator bool`.
type ConversionName struct{ Target Type }

func (n *ConversionName) String() string { return "operator " + n.Target.String() }
func (*ConversionName) isName()          {}

// LiteralOperatorName is `operator""` followed by a suffix, e.g.
// `operator""_kg`.
type LiteralOperatorName struct{ Suffix string }

func (n *LiteralOperatorName) String() string { return `operator""` + n.Suffix }
func (*LiteralOperatorName) isName()          {}

// TemplateName is a name followed by a bracketed template-argument list,
// e.g. `vector<int>`.
type TemplateName struct {
	Base Name
	Args []TemplateArgument
}

func (n *TemplateName) String() string {
	var b strings.Builder
	b.WriteString(n.Base.String())
	b.WriteByte('<')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}
func (*TemplateName) isName() {}

// DestructorName is `~` followed by the class name, e.g. `~Foo`.
type DestructorName struct{ Of Name }

func (n *DestructorName) String() string { return "~" + n.Of.String() }
func (*DestructorName) isName()          {}

// QualifiedName is a left-associative `::`-nesting: `Left::Right`.
type QualifiedName struct {
	Left  Name
	Right Name
}

func (n *QualifiedName) String() string { return n.Left.String() + "::" + n.Right.String() }
func (*QualifiedName) isName()          {}

// TemplateArgument is either a Type argument or a raw textual expression
// argument (spec.md §3: full expression evaluation is out of scope).
type TemplateArgument struct {
	Type Type   // non-nil when this argument is a type
	Expr string // set when Type is nil
}

func (a TemplateArgument) String() string {
	if a.Type != nil {
		return a.Type.String()
	}
	return a.Expr
}

// TemplateParameter is either a type parameter (optionally defaulted) or a
// non-type parameter (a typed value with an optional default expression).
type TemplateParameter struct {
	IsType  bool
	Name    string
	Type    Type   // set when !IsType
	Default *Type  // set when IsType and a default type was given
	DefExpr string // set when !IsType and a default expression was given
}

func (p TemplateParameter) String() string {
	if p.IsType {
		s := "typename " + p.Name
		if p.Default != nil {
			s += " = " + (*p.Default).String()
		}
		return s
	}
	s := p.Type.String() + " " + p.Name
	if p.DefExpr != "" {
		s += " = " + p.DefExpr
	}
	return s
}
