package cxxast

// The parser never builds an expression tree; an expression is captured as
// the verbatim source text spanning from the cursor's current position to
// the boundary of its enclosing view (spec.md §4.4's "Expressions").

// captureVerbatimToEnd consumes every remaining token in the current view
// and returns the exact source text they span.
func (p *Parser) captureVerbatimToEnd() string {
	if p.cursor.AtEnd() {
		return ""
	}
	startTok := p.cursor.Peek()
	start := p.cursor.tokenPos(startTok)
	var end SourcePosition
	for !p.cursor.AtEnd() {
		tok := p.cursor.Read()
		end = p.cursor.tokenPos(tok)
		end.Offset += len(tok.Text)
		end.Column += len(tok.Text)
	}
	return SourceRange{Start: start, End: end}.Text()
}

// captureVerbatimUntil consumes tokens up to (but not including) the next
// occurrence of sentinel at the current nesting depth, returning their
// verbatim source text. If sentinel never occurs before the view ends, it
// consumes to the view's end instead.
func (p *Parser) captureVerbatimUntil(sentinel TokenKind) string {
	if p.cursor.Peek().Kind == sentinel || p.cursor.AtEnd() {
		return ""
	}
	startTok := p.cursor.Peek()
	start := p.cursor.tokenPos(startTok)
	depth := 0
	var end SourcePosition
	for !p.cursor.AtEnd() {
		tok := p.cursor.Peek()
		if depth == 0 && tok.Kind == sentinel {
			break
		}
		switch tok.Kind {
		case TokenLeftPar, TokenLeftBracket, TokenLeftBrace, TokenLess:
			depth++
		case TokenRightPar, TokenRightBracket, TokenRightBrace, TokenGreater:
			if depth > 0 {
				depth--
			}
		}
		p.cursor.Read()
		end = p.cursor.tokenPos(tok)
		end.Offset += len(tok.Text)
		end.Column += len(tok.Text)
	}
	return SourceRange{Start: start, End: end}.Text()
}
