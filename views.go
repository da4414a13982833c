package cxxast

// View is a scoped narrowing of the TokenCursor's readable range. Acquiring
// one pushes a new (begin, end) frame; Release pops it, restoring the
// previous range. Every acquisition in this package is followed by an
// explicit Release on each exit path, including error returns, so no frame
// outlives the sub-parse that opened it (spec.md §4.2/§4.5).
type View struct {
	cursor  *TokenCursor
	released bool
}

// Release pops this view's frame, restoring the range that was active
// before the view was opened, and moves the cursor forward to the view's
// end if it has not reached it; the split state of a `>>` token is left as
// it is. Calling Release more than once
// is a no-op, so `defer view.Release()` composes safely with an explicit
// early Release on a fast path.
func (v *View) Release() {
	if v.released {
		return
	}
	v.released = true
	closeIdx := v.cursor.top().end
	v.cursor.frames = v.cursor.frames[:len(v.cursor.frames)-1]
	if v.cursor.index < closeIdx {
		// The sub-parser did not consume its whole view; jump the
		// cursor to the close so the caller resumes right after the
		// sub-phrase regardless of how much of it was read.
		v.cursor.index = closeIdx
	}
}

func (c *TokenCursor) pushFrame(begin, end int) *View {
	c.frames = append(c.frames, cursorFrame{begin: begin, end: end})
	if c.index < begin {
		c.index = begin
	}
	return &View{cursor: c}
}

// scanMatching scans forward from `from` counting nesting of (open, close)
// token kinds and returns the index of the matching close, or -1 if the
// view's current range runs out first.
func (c *TokenCursor) scanMatching(from int, open, close TokenKind) int {
	depth := 1
	limit := c.top().end
	for i := from; i < limit; i++ {
		switch c.filtered[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (c *TokenCursor) openBalanced(open, close TokenKind, openName string) (*View, error) {
	start := c.PosHere()
	if _, err := c.Expect(open); err != nil {
		return nil, err
	}
	closeIdx := c.scanMatching(c.index, open, close)
	if closeIdx < 0 {
		return nil, &UnmatchedDelimiterError{Pos: start, Open: open}
	}
	return c.pushFrame(c.index, closeIdx), nil
}

// OpenParenView opens a view over a balanced `(...)` range. The matching
// `)` is left outside the view for the caller to Expect after Release.
func (c *TokenCursor) OpenParenView() (*View, error) {
	return c.openBalanced(TokenLeftPar, TokenRightPar, "(")
}

// OpenBracketView opens a view over a balanced `[...]` range.
func (c *TokenCursor) OpenBracketView() (*View, error) {
	return c.openBalanced(TokenLeftBracket, TokenRightBracket, "[")
}

// OpenBraceView opens a view over a balanced `{...}` range.
func (c *TokenCursor) OpenBraceView() (*View, error) {
	return c.openBalanced(TokenLeftBrace, TokenRightBrace, "{")
}

// OpenAngleView opens a view over a balanced `<...>` range, honoring the
// `>>` splitting rule of spec.md §4.2/§9: a RightShift token that closes
// this level is virtually split into two RightAngle tokens, one consumed
// by this view's close, the other left for the next enclosing context to
// consume via CloseAngle.
func (c *TokenCursor) OpenAngleView() (*View, error) {
	start := c.PosHere()
	if _, err := c.Expect(TokenLess); err != nil {
		return nil, err
	}
	closeIdx := c.scanAngleMatching(c.index)
	if closeIdx < 0 {
		return nil, &UnmatchedDelimiterError{Pos: start, Open: TokenLess}
	}
	return c.pushFrame(c.index, closeIdx), nil
}

func (c *TokenCursor) scanAngleMatching(from int) int {
	depth := 1
	limit := c.top().end
	for i := from; i < limit; i++ {
		switch c.filtered[i].Kind {
		case TokenLess:
			depth++
		case TokenGreater:
			depth--
			if depth == 0 {
				return i
			}
		case TokenRightShift:
			if depth == 1 {
				depth = 0
			} else {
				depth -= 2
			}
			if depth <= 0 {
				return i
			}
		}
	}
	// The view's own end hides a `>>` that closes an enclosing angle level:
	// half of it belongs to this level too. Let this scan see that shared
	// token so CloseAngle can split it instead of reporting an unmatched `<`.
	if depth == 1 && limit < len(c.filtered) && c.filtered[limit].Kind == TokenRightShift {
		return limit
	}
	return -1
}

// CloseAngle consumes exactly one `>` worth of closing, splitting a
// RightShift token the first time it is encountered at the cursor and
// leaving the other half available at the same position for whichever
// enclosing angle context closes next. It is the counterpart a caller
// invokes after releasing an OpenAngleView to actually consume the `>`.
func (c *TokenCursor) CloseAngle() (Token, error) {
	if c.splitIndex == c.index && c.splitHalfUsed {
		tok := c.filtered[c.index]
		c.splitIndex = -1
		c.splitHalfUsed = false
		c.index++
		return Token{Kind: TokenGreater, Text: ">", Line: tok.Line, Column: tok.Column + 1, Offset: tok.Offset + 1}, nil
	}
	if c.AtEndOfBuffer() {
		return Token{}, &UnexpectedEndOfInputError{Pos: c.PosHere(), While: "expecting >"}
	}
	tok := c.filtered[c.index]
	switch tok.Kind {
	case TokenGreater:
		c.index++
		return tok, nil
	case TokenRightShift:
		c.splitIndex = c.index
		c.splitHalfUsed = true
		return Token{Kind: TokenGreater, Text: ">", Line: tok.Line, Column: tok.Column, Offset: tok.Offset}, nil
	default:
		return Token{}, &UnexpectedTokenError{Pos: c.tokenPos(tok), Got: tok.Kind, Want: ">"}
	}
}

// AtEndOfBuffer reports whether the cursor index has run past the whole
// filtered buffer (distinct from AtEnd, which is relative to the current
// view). CloseAngle needs the whole-buffer check because the physical
// index backing a split RightShift can sit exactly at a view's `end`.
func (c *TokenCursor) AtEndOfBuffer() bool { return c.index >= len(c.filtered)-1 }

// OpenListView opens a view up to the next top-level comma relative to the
// enclosing view (or to the enclosing view's end if no comma remains). If
// nestAngles is true, a `<...>` run is treated as nestable so that commas
// inside a template-argument list do not end the outer list prematurely
// (spec.md §4.2: "optionally treats <…> as nestable for template-argument
// lists").
func (c *TokenCursor) OpenListView(nestAngles bool) *View {
	limit := c.top().end
	depth := 0
	end := limit

scan:
	for i := c.index; i < limit; i++ {
		switch c.filtered[i].Kind {
		case TokenComma:
			if depth == 0 {
				end = i
				break scan
			}
		case TokenLess:
			if nestAngles {
				depth++
			}
		case TokenGreater:
			if nestAngles && depth > 0 {
				depth--
			}
		case TokenRightShift:
			if nestAngles && depth > 0 {
				depth -= 2
				if depth < 0 {
					depth = 0
				}
			}
		case TokenLeftPar:
			depth++
		case TokenRightPar:
			if depth > 0 {
				depth--
			}
		}
	}
	return c.pushFrame(c.index, end)
}

// OpenSentinelView opens a view up to (but not including) the next
// occurrence of `sentinel` at the current nesting level.
func (c *TokenCursor) OpenSentinelView(sentinel TokenKind) (*View, error) {
	limit := c.top().end
	depth := 0
	for i := c.index; i < limit; i++ {
		switch c.filtered[i].Kind {
		case TokenLeftBrace, TokenLeftPar, TokenLeftBracket:
			depth++
		case TokenRightBrace, TokenRightPar, TokenRightBracket:
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && c.filtered[i].Kind == sentinel {
				return c.pushFrame(c.index, i), nil
			}
		}
	}
	return nil, &UnmatchedDelimiterError{Pos: c.PosHere(), Open: sentinel}
}
