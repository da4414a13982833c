package cxxast

// isDeclSpecifier reports whether k is one of the specifier keywords
// detect_statement skips over while looking ahead for a Type+Name
// (spec.md §4.4 step 2), plus the extra specifiers the dedicated
// declaration parsers themselves consume.
func isDeclSpecifier(k TokenKind) bool {
	switch k {
	case TokenInline, TokenStatic, TokenMutable, TokenConstexpr, TokenVirtual, TokenExplicit:
		return true
	}
	return false
}

func (p *Parser) attachLeaf(node AstNode) {
	if parent := p.topCST(); parent != nil {
		switch pn := parent.(type) {
		case *GenericNode:
			pn.AddChild(node)
		case *DeclarationNode:
			pn.AddChild(node)
		}
	}
}

func entityChildByName(scope Entity, name string) Entity {
	switch s := scope.(type) {
	case *Namespace:
		return s.FindMember(name)
	case *Class:
		return s.FindMember(name)
	case *ClassTemplate:
		return s.FindMember(name)
	}
	return nil
}

func addEntityTo(scope Entity, access AccessSpecifier, e Entity) {
	switch s := scope.(type) {
	case *Namespace:
		s.AddMember(e)
	case *Class:
		s.AddMember(access, e)
	case *ClassTemplate:
		s.AddMember(access, e)
	}
}

// asClass unwraps either a *Class or a *ClassTemplate to its underlying
// *Class, or returns nil if e is neither.
func asClass(e Entity) *Class {
	switch c := e.(type) {
	case *Class:
		return c
	case *ClassTemplate:
		return c.Class
	}
	return nil
}

// withBraceBody opens a brace view, repeatedly calls parseStatement
// until the view is exhausted, then requires the closing `}`. Every
// brace-bodied construct (namespace, class, compound statement) shares
// this shape (spec.md §4.4/§4.5).
func (p *Parser) withBraceBody() error {
	view, err := p.cursor.OpenBraceView()
	if err != nil {
		return err
	}
	for !view.cursor.AtEnd() {
		if err := p.parseStatement(); err != nil {
			view.Release()
			return err
		}
	}
	view.Release()
	_, err = p.cursor.Expect(TokenRightBrace)
	return err
}

// parseNamespace implements spec.md §4.4's namespace declaration: reuse
// or create a namespace with the given name inside the enclosing
// namespace, then push it on both stacks for the brace view.
func (p *Parser) parseNamespace() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenNamespace); err != nil {
		return err
	}
	nameTok, err := p.cursor.Expect(TokenIdentifier)
	if err != nil {
		return err
	}
	parentScope := p.topScope()
	var entity *Namespace
	if existing := entityChildByName(parentScope, nameTok.Text); existing != nil {
		ns, ok := existing.(*Namespace)
		if !ok {
			return &UnsupportedConstructError{Pos: p.cursor.tokenPos(nameTok), Detail: "redeclaration of " + nameTok.Text + " as a different kind of entity"}
		}
		entity = ns
	} else {
		entity = NewNamespace(nameTok.Text, parentScope, false)
		addEntityTo(parentScope, p.access, entity)
	}

	declNode := NewDeclarationNode(NodeNamespaceDeclaration, SourceRange{}, entity)
	popCST := p.pushCST(declNode)
	popScope := p.pushScope(entity)
	popState := p.pushState(StateInNamespace)

	if err := p.withBraceBody(); err != nil {
		popState()
		popScope()
		popCST()
		return err
	}
	popState()
	popScope()
	declNode.rg = p.cursor.RangeFrom(m)
	p.bind(declNode, entity)
	popCST()
	return nil
}

// parseClass implements spec.md §4.4's class/struct declaration.
func (p *Parser) parseClass() error {
	return p.parseClassImpl(nil, nil)
}

func (p *Parser) parseClassImpl(templateParams []TemplateParameter, templateParamNodes []AstNode) error {
	m := p.cursor.Mark()
	var kind string
	switch p.cursor.Peek().Kind {
	case TokenClass:
		kind = "class"
	case TokenStruct:
		kind = "struct"
	default:
		tok := p.cursor.Peek()
		return &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "class or struct"}
	}
	p.cursor.Read()

	nameTok, err := p.cursor.Expect(TokenIdentifier)
	if err != nil {
		return err
	}
	name := nameTok.Text

	var bases []BaseClass
	if p.cursor.Peek().Kind == TokenColon {
		p.cursor.Read()
		for {
			access := Public
			if kind == "class" {
				access = Private
			}
			switch p.cursor.Peek().Kind {
			case TokenPublic:
				access = Public
				p.cursor.Read()
			case TokenProtected:
				access = Protected
				p.cursor.Read()
			case TokenPrivate:
				access = Private
				p.cursor.Read()
			}
			virtual := false
			if p.cursor.Peek().Kind == TokenVirtual {
				virtual = true
				p.cursor.Read()
			}
			baseType, err := p.parseType()
			if err != nil {
				return err
			}
			bases = append(bases, BaseClass{Access: access, Type: baseType, Virtual: virtual})
			if p.cursor.Peek().Kind == TokenComma {
				p.cursor.Read()
				continue
			}
			break
		}
	}

	parentScope := p.topScope()
	isForwardDecl := p.cursor.Peek().Kind != TokenLeftBrace

	var classEntity *Class
	var rootEntity Entity
	if existing := entityChildByName(parentScope, name); existing != nil {
		classEntity = asClass(existing)
		if classEntity == nil {
			return &UnsupportedConstructError{Pos: p.cursor.tokenPos(nameTok), Detail: "redeclaration of " + name + " as a different kind of entity"}
		}
		rootEntity = existing
	} else if len(templateParams) > 0 {
		ct := NewClassTemplate(name, parentScope, kind, templateParams)
		classEntity = ct.Class
		rootEntity = ct
		addEntityTo(parentScope, p.access, ct)
	} else {
		classEntity = NewClass(name, parentScope, kind)
		rootEntity = classEntity
		addEntityTo(parentScope, p.access, classEntity)
	}
	if len(bases) > 0 {
		classEntity.Bases = bases
	}

	declNode := NewDeclarationNode(NodeClassDeclaration, SourceRange{}, rootEntity)
	popCST := p.pushCST(declNode)
	for _, tn := range templateParamNodes {
		declNode.AddChild(tn)
	}

	if !isForwardDecl {
		classEntity.IsDefinition = true
		popScope := p.pushScope(rootEntity)
		popState := p.pushState(StateInClass)
		p.access = classEntity.DefaultAccess
		if err := p.withBraceBody(); err != nil {
			popState()
			popScope()
			popCST()
			return err
		}
		popState()
		popScope()
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		popCST()
		return err
	}
	declNode.rg = p.cursor.RangeFrom(m)
	p.bind(declNode, rootEntity)
	popCST()
	return nil
}

// parseEnum implements spec.md §4.4's enum declaration.
func (p *Parser) parseEnum() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenEnum); err != nil {
		return err
	}
	scoped := false
	if k := p.cursor.Peek().Kind; k == TokenClass || k == TokenStruct {
		scoped = true
		p.cursor.Read()
	}
	nameTok, err := p.cursor.Expect(TokenIdentifier)
	if err != nil {
		return err
	}
	var underlying Type
	if p.cursor.Peek().Kind == TokenColon {
		p.cursor.Read()
		t, err := p.parseType()
		if err != nil {
			return err
		}
		underlying = t
	}

	entity := NewEnum(nameTok.Text, p.topScope(), scoped, underlying)
	addEntityTo(p.topScope(), p.access, entity)

	declNode := NewDeclarationNode(NodeEnumDeclaration, SourceRange{}, entity)
	popCST := p.pushCST(declNode)

	view, err := p.cursor.OpenBraceView()
	if err != nil {
		popCST()
		return err
	}
	for !view.cursor.AtEnd() {
		vm := p.cursor.Mark()
		valNameTok, err := p.cursor.Expect(TokenIdentifier)
		if err != nil {
			view.Release()
			popCST()
			return err
		}
		expr := ""
		if view.cursor.Peek().Kind == TokenEq {
			view.cursor.Read()
			expr = p.captureVerbatimUntil(TokenComma)
		}
		val := NewEnumValue(valNameTok.Text, entity, expr)
		entity.AddValue(val)
		valNode := NewDeclarationNode(NodeEnumeratorDeclaration, p.cursor.RangeFrom(vm), val)
		declNode.AddChild(valNode)
		p.bind(valNode, val)
		if view.cursor.Peek().Kind == TokenComma {
			view.cursor.Read()
			continue
		}
		break
	}
	view.Release()
	if _, err := p.cursor.Expect(TokenRightBrace); err != nil {
		popCST()
		return err
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		popCST()
		return err
	}

	declNode.rg = p.cursor.RangeFrom(m)
	p.bind(declNode, entity)
	popCST()
	return nil
}

// parseTypedef implements spec.md §4.4's typedef/using-alias forms.
func (p *Parser) parseTypedef() error {
	m := p.cursor.Mark()
	if p.cursor.Peek().Kind == TokenUsing {
		p.cursor.Read()
		nameTok, err := p.cursor.Expect(TokenIdentifier)
		if err != nil {
			return err
		}
		if _, err := p.cursor.Expect(TokenEq); err != nil {
			return err
		}
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
			return err
		}
		return p.finishTypedef(m, nameTok.Text, typ)
	}

	if _, err := p.cursor.Expect(TokenTypedef); err != nil {
		return err
	}
	typ, err := p.parseType()
	if err != nil {
		return err
	}
	nameTok, err := p.cursor.Expect(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		return err
	}
	return p.finishTypedef(m, nameTok.Text, typ)
}

func (p *Parser) finishTypedef(m CursorMark, name string, aliased Type) error {
	entity := NewTypedef(name, p.topScope(), aliased)
	addEntityTo(p.topScope(), p.access, entity)
	declNode := NewDeclarationNode(NodeTypedefDeclaration, p.cursor.RangeFrom(m), entity)
	p.bind(declNode, entity)
	p.attachLeaf(declNode)
	return nil
}

// parseAccessSpecifier implements spec.md §4.4's `public|protected|private:`
// member statement: it updates the parser's current access state, applied
// to class members added afterwards.
func (p *Parser) parseAccessSpecifier() error {
	m := p.cursor.Mark()
	tok := p.cursor.Read()
	switch tok.Kind {
	case TokenPublic:
		p.access = Public
	case TokenProtected:
		p.access = Protected
	case TokenPrivate:
		p.access = Private
	}
	if _, err := p.cursor.Expect(TokenColon); err != nil {
		return err
	}
	declNode := NewDeclarationNode(NodeAccessSpecifier, p.cursor.RangeFrom(m), nil)
	p.attachLeaf(declNode)
	return nil
}

// parseVariableDeclaration implements spec.md §4.4: specifiers, a Type, a
// Name, and an optional `= expression` initializer.
func (p *Parser) parseVariableDeclaration() error {
	m := p.cursor.Mark()
	var specs FunctionSpecifier
specLoop:
	for {
		switch p.cursor.Peek().Kind {
		case TokenStatic:
			specs |= SpecStatic
			p.cursor.Read()
		case TokenInline:
			specs |= SpecInline
			p.cursor.Read()
		case TokenConstexpr:
			specs |= SpecConstexpr
			p.cursor.Read()
		case TokenMutable:
			p.cursor.Read()
		default:
			break specLoop
		}
	}
	typ, err := p.parseType()
	if err != nil {
		return err
	}
	nameTok, err := p.cursor.Expect(TokenIdentifier)
	if err != nil {
		return err
	}
	init := ""
	if p.cursor.Peek().Kind == TokenEq {
		p.cursor.Read()
		init = p.captureVerbatimUntil(TokenSemicolon)
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		return err
	}

	entity := NewVariable(nameTok.Text, p.topScope(), typ)
	entity.Specifiers = specs
	entity.Init = init
	addEntityTo(p.topScope(), p.access, entity)

	declNode := NewDeclarationNode(NodeVariableDeclaration, p.cursor.RangeFrom(m), entity)
	p.bind(declNode, entity)
	p.attachLeaf(declNode)
	return nil
}

// parseTemplateDeclaration parses a `template<...>` prefix followed by
// either a class or a function declaration.
func (p *Parser) parseTemplateDeclaration() error {
	params, nodes, err := p.parseTemplateParameterList()
	if err != nil {
		return err
	}
	switch p.cursor.Peek().Kind {
	case TokenClass, TokenStruct:
		return p.parseClassImpl(params, nodes)
	default:
		return p.parseFunctionDeclaration(params, nodes)
	}
}

// parseParameterList implements spec.md §4.4's parameter declaration: a
// comma-separated, paren-bounded list of (Type, optional Name, optional
// `= expression`) triples.
func (p *Parser) parseParameterList() ([]Parameter, []AstNode, error) {
	if p.cursor.Peek().Kind == TokenLeftRightPar {
		// The lexer reads an adjacent `()` as one token: an empty list.
		p.cursor.Read()
		return nil, nil, nil
	}
	view, err := p.cursor.OpenParenView()
	if err != nil {
		return nil, nil, err
	}
	var params []Parameter
	var nodes []AstNode
	for !view.cursor.AtEnd() {
		m := p.cursor.Mark()
		listView := p.cursor.OpenListView(true)
		param, perr := p.parseParameter()
		if perr != nil {
			listView.Release()
			view.Release()
			return nil, nil, perr
		}
		listView.Release()
		params = append(params, param)
		nodes = append(nodes, NewDeclarationNode(NodeFunctionParameter, p.cursor.RangeFrom(m), nil))
		if view.cursor.Peek().Kind == TokenComma {
			view.cursor.Read()
			continue
		}
		break
	}
	view.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		return nil, nil, err
	}
	return params, nodes, nil
}

func (p *Parser) parseParameter() (Parameter, error) {
	typ, err := p.parseType()
	if err != nil {
		return Parameter{}, err
	}
	name := ""
	if p.cursor.Peek().Kind == TokenIdentifier {
		name = p.cursor.Read().Text
	}
	def := ""
	if p.cursor.Peek().Kind == TokenEq {
		p.cursor.Read()
		def = p.captureVerbatimToEnd()
	}
	return Parameter{Name: name, Type: typ, Default: def}, nil
}

// flattenQualified decomposes a left-associative QualifiedName chain into
// its ordered segments.
func flattenQualified(name Name) []Name {
	if qn, ok := name.(*QualifiedName); ok {
		return append(flattenQualified(qn.Left), qn.Right)
	}
	return []Name{name}
}

// resolveQualifiedScope resolves every segment but the last of a
// (possibly qualified) declarator name against the program's global
// namespace, returning the simple terminal name and the entity it
// should be declared in. An unqualified name resolves against the
// parser's current scope (spec.md §4.4's out-of-line member-function
// definitions, e.g. `int n::Foo::bar() { ... }`).
func (p *Parser) resolveQualifiedScope(name Name) (string, Entity) {
	segs := flattenQualified(name)
	if len(segs) == 1 {
		return segs[0].String(), p.topScope()
	}
	var scope Entity = p.program.Global
	for i := 0; i < len(segs)-1; i++ {
		seg := segs[i].String()
		if child := entityChildByName(scope, seg); child != nil {
			scope = child
		}
	}
	return segs[len(segs)-1].String(), scope
}

// functionKindOf classifies the terminal segment of a declarator name
// into spec.md §3's Function.Kind, unwrapping a template-argument
// wrapper first (an operator can itself be named via `operator<`, which
// parseNameSegment sees as a TemplateName over an OperatorName).
func functionKindOf(isCtor bool, seg Name) FunctionKind {
	if isCtor {
		return FunctionConstructor
	}
	for {
		if tn, ok := seg.(*TemplateName); ok {
			seg = tn.Base
			continue
		}
		break
	}
	switch seg.(type) {
	case *DestructorName:
		return FunctionDestructor
	case *OperatorName, *LiteralOperatorName:
		return FunctionOperatorOverload
	case *ConversionName:
		return FunctionConversion
	default:
		return FunctionNone
	}
}

func (p *Parser) findExistingFunction(scope Entity, simpleName string, ret Type, params []Parameter) *Function {
	var members []Member
	switch s := scope.(type) {
	case *Namespace:
		for _, m := range s.Members {
			if f, ok := m.(*Function); ok && f.SameSignature(simpleName, ret, params) {
				return f
			}
		}
		return nil
	case *Class:
		members = s.Members
	case *ClassTemplate:
		members = s.Members
	default:
		return nil
	}
	for _, m := range members {
		if f, ok := m.Entity.(*Function); ok && f.SameSignature(simpleName, ret, params) {
			return f
		}
	}
	return nil
}

// parseFunctionDeclaration implements spec.md §4.4's function
// declaration: specifiers, return type (absent for constructors and
// destructors), name, parameter list, post-signature qualifiers, then
// either `;` or a body. It also performs the re-declaration merge
// (spec.md §4.4/§4.5/§9).
func (p *Parser) parseFunctionDeclaration(templateParams []TemplateParameter, templateParamNodes []AstNode) error {
	m := p.cursor.Mark()
	var specs FunctionSpecifier
specLoop:
	for {
		switch p.cursor.Peek().Kind {
		case TokenInline:
			specs |= SpecInline
			p.cursor.Read()
		case TokenStatic:
			specs |= SpecStatic
			p.cursor.Read()
		case TokenConstexpr:
			specs |= SpecConstexpr
			p.cursor.Read()
		case TokenVirtual:
			specs |= SpecVirtual
			p.cursor.Read()
		case TokenExplicit:
			specs |= SpecExplicit
			p.cursor.Read()
		default:
			break specLoop
		}
	}

	var retType Type
	var name Name
	isCtor := false

	if p.cursor.Peek().Kind == TokenBitwiseNot {
		n, err := p.parseName()
		if err != nil {
			return err
		}
		name = n
	} else if cls, ok := p.topScope().(*Class); ok && p.cursor.Peek().Kind == TokenIdentifier &&
		p.cursor.Peek().Text == cls.Name() && p.cursor.PeekAt(1).Kind == TokenLeftPar {
		name = &IdentifierName{Value: p.cursor.Read().Text}
		isCtor = true
	} else {
		t, err := p.parseType()
		if err != nil {
			return err
		}
		retType = t
		n, err := p.parseName()
		if err != nil {
			return err
		}
		name = n
	}

	segs := flattenQualified(name)
	kind := functionKindOf(isCtor, segs[len(segs)-1])
	simpleName, scope := p.resolveQualifiedScope(name)

	params, paramNodes, err := p.parseParameterList()
	if err != nil {
		return err
	}

postLoop:
	for {
		switch p.cursor.Peek().Kind {
		case TokenConst:
			specs |= SpecConst
			p.cursor.Read()
		case TokenNoexcept:
			specs |= SpecNoexcept
			p.cursor.Read()
			if p.cursor.Peek().Kind == TokenLeftPar {
				view, verr := p.cursor.OpenParenView()
				if verr == nil {
					p.captureVerbatimToEnd()
					view.Release()
					if _, err := p.cursor.Expect(TokenRightPar); err != nil {
						return err
					}
				}
			}
		case TokenOverride:
			specs |= SpecOverride
			p.cursor.Read()
		case TokenFinal:
			specs |= SpecFinal
			p.cursor.Read()
		case TokenEq:
			p.cursor.Read()
			tok := p.cursor.Peek()
			if tok.Kind == TokenIntegerLiteral && tok.Text == "0" {
				specs |= SpecPure
				p.cursor.Read()
			} else if tok.Kind == TokenDefault || tok.Kind == TokenDelete {
				p.cursor.Read()
			}
		default:
			break postLoop
		}
	}

	declNode := NewDeclarationNode(NodeFunctionDeclaration, SourceRange{}, nil)
	popCST := p.pushCST(declNode)
	for _, tn := range templateParamNodes {
		declNode.AddChild(tn)
	}
	for _, pn := range paramNodes {
		declNode.AddChild(pn)
	}

	hasBody := false
	body := ""
	if p.cursor.Peek().Kind == TokenLeftBrace {
		hasBody = true
		if p.config.GetBool("parser.skip_function_bodies") {
			bm := p.cursor.Mark()
			view, err := p.cursor.OpenBraceView()
			if err != nil {
				popCST()
				return err
			}
			view.Release()
			if _, err := p.cursor.Expect(TokenRightBrace); err != nil {
				popCST()
				return err
			}
			body = p.cursor.RangeFrom(bm).Text()
		} else {
			popBody := p.pushState(StateInFunctionBody)
			_, text, err := p.parseCompoundStatement()
			popBody()
			if err != nil {
				popCST()
				return err
			}
			body = text
		}
	} else {
		if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
			popCST()
			return err
		}
	}
	popCST()

	fn := NewFunction(simpleName, scope, retType, params, specs)
	fn.TemplateParams = templateParams
	fn.Kind = kind
	fn.HasBody = hasBody
	fn.Body = body

	var resultEntity *Function
	if existing := p.findExistingFunction(scope, simpleName, retType, params); existing != nil {
		existing.Merge(fn)
		resultEntity = existing
	} else {
		addEntityTo(scope, p.access, fn)
		resultEntity = fn
	}

	declNode.entity = resultEntity
	declNode.rg = p.cursor.RangeFrom(m)
	p.bind(declNode, resultEntity)
	return nil
}
