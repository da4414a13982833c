package cxxast

// Program is the root of a parse: the global Namespace, the set of
// SourceFiles contributing to it, and the AstMap linking CST nodes back to
// the entities they declared (spec.md §3/§6).
type Program struct {
	Global *Namespace
	Files  []*SourceFile
	astMap *AstMap
	roots  map[*SourceFile]*GenericNode
}

// NewProgram creates an empty Program with a fresh global namespace, ready
// to accept one or more ParseFile/ParseSource calls against it.
func NewProgram() *Program {
	return &Program{
		Global: NewNamespace("", nil, false),
		astMap: newAstMap(),
		roots:  make(map[*SourceFile]*GenericNode),
	}
}

// Root returns the CST root node produced for file, or nil if file was
// never parsed into this Program.
func (p *Program) Root(file *SourceFile) AstNode {
	if n, ok := p.roots[file]; ok {
		return n
	}
	return nil
}

func (p *Program) addFile(file *SourceFile, root *GenericNode) {
	p.Files = append(p.Files, file)
	p.roots[file] = root
}

// EntityFor looks up the entity a given CST node declared, following
// AstMap's node-to-entity association (spec.md §6).
func (p *Program) EntityFor(n AstNode) Entity {
	if e := n.Entity(); e != nil {
		return e
	}
	return p.astMap.entityOf(n)
}

// DeclarationsOf returns every CST node that declared or re-declared e,
// in the order they were parsed.
func (p *Program) DeclarationsOf(e Entity) []AstNode {
	return p.astMap.nodesOf(e)
}
