package cxxast

// ParserState names the scope kind the parser driver currently sits in;
// it gates which statement forms detect_statement may fall back to
// (spec.md §4.5's state machine).
type ParserState int

const (
	StateTopLevel ParserState = iota
	StateInNamespace
	StateInClass
	StateInEnum
	StateInFunctionBody
)

// Parser is the recursive-descent driver: it consumes a TokenCursor,
// appends CST nodes to a CST-ancestor stack, and grows a Program's entity
// graph along a parallel scope stack (spec.md §4.5's dual-tree protocol).
type Parser struct {
	cursor *TokenCursor
	file   *SourceFile
	config *Config

	program *Program

	cstStack   []AstNode
	scopeStack []Entity
	stateStack []ParserState

	// access is the access specifier currently in force inside the
	// innermost class body (spec.md §4.4's access-specifier statement).
	access AccessSpecifier
}

// NewParser builds a parser over file's already-lexed token stream,
// targeting program's entity graph, configured by cfg (a nil cfg falls
// back to defaults).
func NewParser(file *SourceFile, program *Program, cfg *Config) (*Parser, error) {
	cursor, err := NewTokenCursor(file)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Parser{
		cursor:     cursor,
		file:       file,
		config:     cfg,
		program:    program,
		cstStack:   []AstNode{},
		scopeStack: []Entity{program.Global},
		stateStack: []ParserState{StateTopLevel},
	}, nil
}

func (p *Parser) state() ParserState { return p.stateStack[len(p.stateStack)-1] }

func (p *Parser) topScope() Entity { return p.scopeStack[len(p.scopeStack)-1] }

func (p *Parser) topCST() AstNode {
	if len(p.cstStack) == 0 {
		return nil
	}
	return p.cstStack[len(p.cstStack)-1]
}

// pushCST appends node to the current CST ancestor's children (if any)
// and makes it the new ancestor; the returned func pops it. Every caller
// calls the returned func on each of its exit paths, including error
// returns (spec.md §4.5).
func (p *Parser) pushCST(node AstNode) func() {
	if parent := p.topCST(); parent != nil {
		switch pn := parent.(type) {
		case *GenericNode:
			pn.AddChild(node)
		case *DeclarationNode:
			pn.AddChild(node)
		}
	}
	p.cstStack = append(p.cstStack, node)
	return func() {
		p.cstStack = p.cstStack[:len(p.cstStack)-1]
	}
}

// pushScope makes entity the current semantic scope; the returned func
// pops it.
func (p *Parser) pushScope(entity Entity) func() {
	p.scopeStack = append(p.scopeStack, entity)
	return func() {
		p.scopeStack = p.scopeStack[:len(p.scopeStack)-1]
	}
}

func (p *Parser) pushState(s ParserState) func() {
	p.stateStack = append(p.stateStack, s)
	prevAccess := p.access
	return func() {
		p.stateStack = p.stateStack[:len(p.stateStack)-1]
		p.access = prevAccess
	}
}

func (p *Parser) bind(node AstNode, entity Entity) {
	p.program.astMap.Bind(node, entity)
}

// ParseTranslationUnit parses file's whole token stream as a sequence of
// top-level statements/declarations, attaching a Root CST node to
// program and returning it. This is the body of the public ParseFile and
// ParseSource entry points (api.go).
func (p *Parser) ParseTranslationUnit() (AstNode, error) {
	m := p.cursor.Mark()
	root := NewGenericNode(NodeRoot, SourceRange{})
	pop := p.pushCST(root)
	defer pop()

	for !p.cursor.AtEnd() {
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}
	root.rg = p.cursor.RangeFrom(m)
	p.program.addFile(p.file, root)
	return root, nil
}
