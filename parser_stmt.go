package cxxast

// parseStatement is the central dispatcher spec.md §4.4 drives the whole
// parser from: keyword-led statements each get a dedicated parser; any
// other token falls to detectStatement's expression/variable/function
// disambiguation.
func (p *Parser) parseStatement() error {
	switch p.cursor.Peek().Kind {
	case TokenLeftBrace:
		_, _, err := p.parseCompoundStatement()
		return err
	case TokenSemicolon:
		return p.parseNullStatement()
	case TokenBreak:
		return p.parseKeywordStatement(NodeBreakStatement, TokenBreak)
	case TokenContinue:
		return p.parseKeywordStatement(NodeContinueStatement, TokenContinue)
	case TokenDo:
		return p.parseDoWhile()
	case TokenFor:
		return p.parseFor()
	case TokenIf:
		return p.parseIf()
	case TokenReturn:
		return p.parseReturn()
	case TokenSwitch:
		return p.parseSwitch()
	case TokenTry:
		return p.parseTry()
	case TokenWhile:
		return p.parseWhile()
	case TokenCase:
		return p.parseCaseLabel()
	case TokenDefault:
		return p.parseDefaultLabel()
	case TokenTypedef, TokenUsing:
		return p.parseTypedef()
	case TokenNamespace:
		return p.parseNamespace()
	case TokenEnum:
		return p.parseEnum()
	case TokenClass, TokenStruct:
		return p.parseClass()
	case TokenPublic, TokenProtected, TokenPrivate:
		return p.parseAccessSpecifier()
	case TokenTemplate:
		return p.parseTemplateDeclaration()
	case TokenVirtual:
		return p.parseFunctionDeclaration(nil, nil)
	default:
		return p.detectStatement()
	}
}

// parseCompoundStatement parses a `{ statement* }` block as its own CST
// node, returning both the node and its exact verbatim source text (the
// text a Function entity stores as its body).
func (p *Parser) parseCompoundStatement() (AstNode, string, error) {
	m := p.cursor.Mark()
	node := NewGenericNode(NodeCompoundStatement, SourceRange{})
	pop := p.pushCST(node)

	view, err := p.cursor.OpenBraceView()
	if err != nil {
		pop()
		return nil, "", err
	}
	for !view.cursor.AtEnd() {
		if err := p.parseStatement(); err != nil {
			view.Release()
			pop()
			return nil, "", err
		}
	}
	view.Release()
	if _, err := p.cursor.Expect(TokenRightBrace); err != nil {
		pop()
		return nil, "", err
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return node, node.rg.Text(), nil
}

func (p *Parser) parseNullStatement() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		return err
	}
	p.attachLeaf(NewGenericNode(NodeNullStatement, p.cursor.RangeFrom(m)))
	return nil
}

// parseKeywordStatement handles the `keyword ;` shape shared by break and
// continue.
func (p *Parser) parseKeywordStatement(kind NodeKind, kw TokenKind) error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(kw); err != nil {
		return err
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		return err
	}
	p.attachLeaf(NewGenericNode(kind, p.cursor.RangeFrom(m)))
	return nil
}

func (p *Parser) parseReturn() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenReturn); err != nil {
		return err
	}
	node := NewGenericNode(NodeReturnStatement, SourceRange{})
	if p.cursor.Peek().Kind != TokenSemicolon {
		node.Text = p.captureVerbatimUntil(TokenSemicolon)
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		return err
	}
	node.rg = p.cursor.RangeFrom(m)
	p.attachLeaf(node)
	return nil
}

func (p *Parser) parseExpressionStatement() error {
	m := p.cursor.Mark()
	view, err := p.cursor.OpenSentinelView(TokenSemicolon)
	if err != nil {
		return err
	}
	text := p.captureVerbatimToEnd()
	view.Release()
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		return err
	}
	node := NewGenericNode(NodeExpressionStatement, p.cursor.RangeFrom(m))
	node.Text = text
	p.attachLeaf(node)
	return nil
}

func (p *Parser) parseIf() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenIf); err != nil {
		return err
	}
	node := NewGenericNode(NodeIfStatement, SourceRange{})
	pop := p.pushCST(node)

	condView, err := p.cursor.OpenParenView()
	if err != nil {
		pop()
		return err
	}
	condText := p.captureVerbatimToEnd()
	condView.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		pop()
		return err
	}
	node.Text = condText

	if err := p.parseStatement(); err != nil {
		pop()
		return err
	}
	if p.cursor.Peek().Kind == TokenElse {
		p.cursor.Read()
		if err := p.parseStatement(); err != nil {
			pop()
			return err
		}
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

func (p *Parser) parseWhile() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenWhile); err != nil {
		return err
	}
	node := NewGenericNode(NodeWhileLoop, SourceRange{})
	pop := p.pushCST(node)

	condView, err := p.cursor.OpenParenView()
	if err != nil {
		pop()
		return err
	}
	node.Text = p.captureVerbatimToEnd()
	condView.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		pop()
		return err
	}
	if err := p.parseStatement(); err != nil {
		pop()
		return err
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

func (p *Parser) parseDoWhile() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenDo); err != nil {
		return err
	}
	node := NewGenericNode(NodeDoWhileLoop, SourceRange{})
	pop := p.pushCST(node)

	if err := p.parseStatement(); err != nil {
		pop()
		return err
	}
	if _, err := p.cursor.Expect(TokenWhile); err != nil {
		pop()
		return err
	}
	condView, err := p.cursor.OpenParenView()
	if err != nil {
		pop()
		return err
	}
	node.Text = p.captureVerbatimToEnd()
	condView.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		pop()
		return err
	}
	if _, err := p.cursor.Expect(TokenSemicolon); err != nil {
		pop()
		return err
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

// parseFor implements both the classical three-clause `for` and the
// range-based `for (Type Name : range)` form, distinguished by scanning
// the parenthesized header for a top-level `:` before any `;`.
func (p *Parser) parseFor() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenFor); err != nil {
		return err
	}
	headerView, err := p.cursor.OpenParenView()
	if err != nil {
		return err
	}
	isRange := p.headerLooksLikeForRange(headerView)

	kind := NodeForLoop
	if isRange {
		kind = NodeForRange
	}
	node := NewGenericNode(kind, SourceRange{})
	pop := p.pushCST(node)

	node.Text = p.captureVerbatimToEnd()
	headerView.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		pop()
		return err
	}
	if err := p.parseStatement(); err != nil {
		pop()
		return err
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

// headerLooksLikeForRange scans the for-header view for a top-level `:`
// before any top-level `;`, the shape that distinguishes `for(T x : r)`
// from the classical three-clause form, without consuming any tokens.
func (p *Parser) headerLooksLikeForRange(view *View) bool {
	c := view.cursor
	depth := 0
	limit := c.top().end
	for i := c.index; i < limit; i++ {
		switch c.filtered[i].Kind {
		case TokenLeftPar, TokenLeftBracket, TokenLeftBrace, TokenLess:
			depth++
		case TokenRightPar, TokenRightBracket, TokenRightBrace, TokenGreater:
			if depth > 0 {
				depth--
			}
		case TokenSemicolon:
			if depth == 0 {
				return false
			}
		case TokenColon:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func (p *Parser) parseSwitch() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenSwitch); err != nil {
		return err
	}
	node := NewGenericNode(NodeSwitchStatement, SourceRange{})
	pop := p.pushCST(node)

	condView, err := p.cursor.OpenParenView()
	if err != nil {
		pop()
		return err
	}
	node.Text = p.captureVerbatimToEnd()
	condView.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		pop()
		return err
	}
	if err := p.parseStatement(); err != nil {
		pop()
		return err
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

func (p *Parser) parseCaseLabel() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenCase); err != nil {
		return err
	}
	node := NewGenericNode(NodeCaseStatement, SourceRange{})
	node.Text = p.captureVerbatimUntil(TokenColon)
	if _, err := p.cursor.Expect(TokenColon); err != nil {
		return err
	}
	node.rg = p.cursor.RangeFrom(m)
	p.attachLeaf(node)
	return nil
}

func (p *Parser) parseDefaultLabel() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenDefault); err != nil {
		return err
	}
	if _, err := p.cursor.Expect(TokenColon); err != nil {
		return err
	}
	p.attachLeaf(NewGenericNode(NodeDefaultStatement, p.cursor.RangeFrom(m)))
	return nil
}

func (p *Parser) parseTry() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenTry); err != nil {
		return err
	}
	node := NewGenericNode(NodeTryBlock, SourceRange{})
	pop := p.pushCST(node)

	if _, _, err := p.parseCompoundStatement(); err != nil {
		pop()
		return err
	}
	for p.cursor.Peek().Kind == TokenCatch {
		if err := p.parseCatch(); err != nil {
			pop()
			return err
		}
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

func (p *Parser) parseCatch() error {
	m := p.cursor.Mark()
	if _, err := p.cursor.Expect(TokenCatch); err != nil {
		return err
	}
	node := NewGenericNode(NodeCatchStatement, SourceRange{})
	pop := p.pushCST(node)

	paramView, err := p.cursor.OpenParenView()
	if err != nil {
		pop()
		return err
	}
	node.Text = p.captureVerbatimToEnd()
	paramView.Release()
	if _, err := p.cursor.Expect(TokenRightPar); err != nil {
		pop()
		return err
	}
	if _, _, err := p.parseCompoundStatement(); err != nil {
		pop()
		return err
	}
	pop()
	node.rg = p.cursor.RangeFrom(m)
	return nil
}

// detectStatement implements spec.md §4.4's six-step disambiguation
// between ExpressionStatement, VariableDeclaration, and
// FunctionDeclaration.
func (p *Parser) detectStatement() error {
	if tok := p.cursor.Peek(); tok.Kind == TokenVirtual || tok.Kind == TokenOverride || tok.Kind == TokenExplicit {
		return p.parseFunctionDeclaration(nil, nil)
	}

	mark := p.cursor.Mark()
	for isDeclSpecifier(p.cursor.Peek().Kind) {
		p.cursor.Read()
	}

	typeErr := func() error {
		if _, err := p.parseType(); err != nil {
			return err
		}
		if _, err := p.parseName(); err != nil {
			return err
		}
		return nil
	}()

	if typeErr == nil {
		switch p.cursor.Peek().Kind {
		case TokenLeftBrace, TokenSemicolon, TokenEq:
			p.cursor.Reset(mark)
			return p.parseVariableDeclaration()
		case TokenLeftPar, TokenLeftRightPar:
			p.cursor.Reset(mark)
			return p.parseFunctionDeclaration(nil, nil)
		}
	}

	p.cursor.Reset(mark)
	if p.state() != StateInFunctionBody {
		tok := p.cursor.Peek()
		return &UnsupportedConstructError{Pos: p.cursor.tokenPos(tok), Detail: "ambiguous statement outside a function body"}
	}
	return p.parseExpressionStatement()
}
