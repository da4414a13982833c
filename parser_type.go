package cxxast

// builtinTypeNameTokens are keywords that also name a built-in type, plus
// `this` (spec.md §4.3).
var builtinTypeNameTokens = map[TokenKind]bool{
	TokenVoid: true, TokenBool: true, TokenChar: true,
	TokenInt: true, TokenFloat: true, TokenDouble: true,
	TokenAuto: true, TokenThis: true,
}

// parseName implements spec.md §4.3's parse_name(): a sequence of
// `::`-separated segments folded left-associatively, so `n::Foo::bar`
// parses as QualifiedName{QualifiedName{n, Foo}, bar} rather than
// nesting on the right.
func (p *Parser) parseName() (Name, error) {
	name, err := p.parseNameSegment()
	if err != nil {
		return nil, err
	}
	for p.cursor.Peek().Kind == TokenColonColon {
		p.cursor.Read()
		right, err := p.parseNameSegment()
		if err != nil {
			return nil, err
		}
		name = &QualifiedName{Left: name, Right: right}
	}
	return name, nil
}

// parseNameSegment parses one `::`-delimited component of a name: built-in
// type keywords, `operator…` forms, plain identifiers, a destructor mark,
// and an optional bracketed template-argument list. It never consumes a
// `::` itself; parseName folds segments together.
func (p *Parser) parseNameSegment() (Name, error) {
	var name Name
	tok := p.cursor.Peek()

	switch {
	case tok.Kind == TokenOperator:
		n, err := p.parseOperatorName()
		if err != nil {
			return nil, err
		}
		name = n
	case builtinTypeNameTokens[tok.Kind] || tok.Kind == TokenIdentifier:
		p.cursor.Read()
		name = &IdentifierName{Value: tok.Text}
	case tok.Kind == TokenBitwiseNot:
		p.cursor.Read()
		inner, err := p.parseNameSegment()
		if err != nil {
			return nil, err
		}
		name = &DestructorName{Of: inner}
	default:
		return nil, &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "name"}
	}

	if p.cursor.Peek().Kind == TokenLess {
		args, err := p.parseTemplateArgumentList()
		if err != nil {
			return nil, err
		}
		name = &TemplateName{Base: name, Args: args}
	}

	return name, nil
}

func (p *Parser) parseOperatorName() (Name, error) {
	if _, err := p.cursor.Expect(TokenOperator); err != nil {
		return nil, err
	}
	tok := p.cursor.Peek()

	switch tok.Kind {
	case TokenLeftPar:
		// operator()
		p.cursor.Read()
		if _, err := p.cursor.Expect(TokenRightPar); err != nil {
			return nil, err
		}
		return &OperatorName{Symbol: "()"}, nil
	case TokenLeftRightPar:
		p.cursor.Read()
		return &OperatorName{Symbol: "()"}, nil
	case TokenLeftBracket:
		p.cursor.Read()
		if _, err := p.cursor.Expect(TokenRightBracket); err != nil {
			return nil, err
		}
		return &OperatorName{Symbol: "[]"}, nil
	case TokenLeftRightBracket:
		p.cursor.Read()
		return &OperatorName{Symbol: "[]"}, nil
	case TokenStringLiteral:
		// operator""suffix, or operator"" suffix
		p.cursor.Read()
		suffixTok := p.cursor.Peek()
		suffix := ""
		if suffixTok.Kind == TokenIdentifier {
			p.cursor.Read()
			suffix = suffixTok.Text
		}
		return &LiteralOperatorName{Suffix: suffix}, nil
	case TokenUserDefinedLiteral:
		p.cursor.Read()
		return &LiteralOperatorName{Suffix: tok.Text}, nil
	}

	if builtinTypeNameTokens[tok.Kind] {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ConversionName{Target: typ}, nil
	}
	if tok.Kind == TokenIdentifier {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ConversionName{Target: typ}, nil
	}
	if tok.IsOperator() || tok.IsPunctuator() {
		p.cursor.Read()
		return &OperatorName{Symbol: tok.Text}, nil
	}
	return nil, &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "operator symbol"}
}

// parseTemplateArgumentList parses a `<...>` template-argument list. Each
// argument is tried first as a Type; if that fails the cursor is restored
// and the argument's verbatim text (up to the list separator) is captured
// instead (spec.md §3's TemplateArgument sum).
func (p *Parser) parseTemplateArgumentList() ([]TemplateArgument, error) {
	view, err := p.cursor.OpenAngleView()
	if err != nil {
		return nil, err
	}
	var args []TemplateArgument
	for !view.cursor.AtEnd() {
		arg, err := p.parseTemplateArgument()
		if err != nil {
			view.Release()
			return nil, err
		}
		args = append(args, arg)
		if view.cursor.Peek().Kind == TokenComma {
			view.cursor.Read()
			continue
		}
		break
	}
	view.Release()
	if _, err := p.cursor.CloseAngle(); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseTemplateArgument() (TemplateArgument, error) {
	listView := p.cursor.OpenListView(true)
	mark := p.cursor.Mark()
	typ, err := p.parseType()
	if err == nil && listView.cursor.AtEnd() {
		listView.Release()
		return TemplateArgument{Type: typ}, nil
	}
	p.cursor.Reset(mark)
	text := p.captureVerbatimToEnd()
	listView.Release()
	return TemplateArgument{Expr: text}, nil
}

// parseType implements spec.md §4.3's parse_type(): an optional leading
// const, a Name, any order of trailing const/volatile and a reference
// mark, then a speculative attempt at a function-type suffix or a
// pointer chain.
func (p *Parser) parseType() (Type, error) {
	leadingConst := false
	if p.cursor.Peek().Kind == TokenConst {
		p.cursor.Read()
		leadingConst = true
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var base Type
	if id, ok := name.(*IdentifierName); ok && id.Value == "auto" {
		base = AutoType
	} else {
		base = &SimpleType{Name: name}
	}

	haveCV := false
	cv := Const
	if leadingConst {
		haveCV = true
	}
	haveRef := false
	refKind := LValueRef
loop:
	for {
		switch p.cursor.Peek().Kind {
		case TokenConst:
			p.cursor.Read()
			if haveCV && cv == Volatile {
				cv = ConstVolatile
			} else {
				cv = Const
			}
			haveCV = true
		case TokenVolatile:
			p.cursor.Read()
			if haveCV && cv == Const {
				cv = ConstVolatile
			} else {
				cv = Volatile
			}
			haveCV = true
		case TokenAmpersand, TokenAmpAmp:
			if haveRef {
				break loop
			}
			haveRef = true
			if p.cursor.Read().Kind == TokenAmpAmp {
				refKind = RValueRef
			}
		default:
			break loop
		}
	}
	if haveCV {
		base = &CVQualifiedType{CV: cv, Under: base}
	}
	if haveRef {
		base = &ReferenceType{Kind: refKind, Under: base}
	}

	// Speculative function-type suffix: `(params)`.
	if p.cursor.Peek().Kind == TokenLeftPar {
		mark := p.cursor.Mark()
		if fn, ok := p.tryParseFunctionTypeSuffix(base); ok {
			return fn, nil
		}
		p.cursor.Reset(mark)
	}

	// Pointer chain: `*` (optional per-star `const`)*.
	for p.cursor.Peek().Kind == TokenStar {
		p.cursor.Read()
		base = &PointerType{Under: base}
		if p.cursor.Peek().Kind == TokenConst {
			p.cursor.Read()
			base = &CVQualifiedType{CV: Const, Under: base}
		}
	}

	return base, nil
}

func (p *Parser) tryParseFunctionTypeSuffix(result Type) (Type, bool) {
	view, err := p.cursor.OpenParenView()
	if err != nil {
		return nil, false
	}
	var params []Type
	ok := true
	for !view.cursor.AtEnd() {
		t, err := p.parseType()
		if err != nil {
			ok = false
			break
		}
		params = append(params, t)
		if view.cursor.Peek().Kind == TokenComma {
			view.cursor.Read()
			continue
		}
		break
	}
	if ok && !view.cursor.AtEnd() {
		ok = false
	}
	view.Release()
	if !ok {
		return nil, false
	}
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		return nil, false
	}
	return &FunctionType{Result: result, Params: params}, true
}

// parseTemplateParameterList parses the `template<...>` parameter list
// preceding a class or function template declaration, returning both the
// parsed parameters and a CST node per parameter for the caller to attach
// under its declaration node.
func (p *Parser) parseTemplateParameterList() ([]TemplateParameter, []AstNode, error) {
	if _, err := p.cursor.Expect(TokenTemplate); err != nil {
		return nil, nil, err
	}
	view, err := p.cursor.OpenAngleView()
	if err != nil {
		return nil, nil, err
	}
	var params []TemplateParameter
	var nodes []AstNode
	for !view.cursor.AtEnd() {
		m := p.cursor.Mark()
		param, err := p.parseTemplateParameter()
		if err != nil {
			view.Release()
			return nil, nil, err
		}
		params = append(params, param)
		nodes = append(nodes, NewDeclarationNode(NodeTemplateParameterDeclaration, p.cursor.RangeFrom(m), nil))
		if view.cursor.Peek().Kind == TokenComma {
			view.cursor.Read()
			continue
		}
		break
	}
	view.Release()
	if _, err := p.cursor.CloseAngle(); err != nil {
		return nil, nil, err
	}
	return params, nodes, nil
}

func (p *Parser) parseTemplateParameter() (TemplateParameter, error) {
	tok := p.cursor.Peek()
	if tok.Kind == TokenTypename || tok.Kind == TokenClass {
		p.cursor.Read()
		name := ""
		if p.cursor.Peek().Kind == TokenIdentifier {
			name = p.cursor.Read().Text
		}
		param := TemplateParameter{IsType: true, Name: name}
		if p.cursor.Peek().Kind == TokenEq {
			p.cursor.Read()
			def, err := p.parseType()
			if err != nil {
				return param, err
			}
			param.Default = &def
		}
		return param, nil
	}
	typ, err := p.parseType()
	if err != nil {
		return TemplateParameter{}, err
	}
	name := ""
	if p.cursor.Peek().Kind == TokenIdentifier {
		name = p.cursor.Read().Text
	}
	param := TemplateParameter{IsType: false, Name: name, Type: typ}
	if p.cursor.Peek().Kind == TokenEq {
		p.cursor.Read()
		param.DefExpr = p.captureVerbatimUntil(TokenComma)
	}
	return param, nil
}
