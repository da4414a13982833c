package cxxast

// TokenCursor is a seekable cursor over a pre-lexed token buffer. It keeps
// two buffers per spec.md §4.1: the raw buffer, which retains discardable
// tokens (comments), and the filtered buffer the parser actually reads.
// A stack of (begin, end) frames — pushed and popped by Views (views.go) —
// restricts the readable slice of the filtered buffer at any given moment.
type TokenCursor struct {
	file     *SourceFile
	raw      []Token
	filtered []Token

	index  int
	frames []cursorFrame

	// splitIndex/splitHalfUsed track a RightShift token currently being
	// treated as two virtual RightAngle tokens (see views.go CloseAngle).
	splitIndex    int
	splitHalfUsed bool
}

type cursorFrame struct {
	begin, end int
}

// NewTokenCursor lexes file fully and builds both buffers. Lexing is
// eager (not streamed) because Views need random access within bounded
// sub-ranges.
func NewTokenCursor(file *SourceFile) (*TokenCursor, error) {
	lex := NewLexer(file)
	c := &TokenCursor{file: file}
	for {
		tok, err := lex.Read()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			c.raw = append(c.raw, tok)
			break
		}
		c.raw = append(c.raw, tok)
		if tok.Kind != TokenSingleLineComment && tok.Kind != TokenMultiLineComment {
			c.filtered = append(c.filtered, tok)
		}
	}
	c.filtered = append(c.filtered, Token{Kind: TokenEOF})
	c.frames = []cursorFrame{{begin: 0, end: len(c.filtered) - 1}}
	c.splitIndex = -1
	return c, nil
}

func (c *TokenCursor) top() cursorFrame { return c.frames[len(c.frames)-1] }

// Begin/End report the current view's bounds within the filtered buffer.
func (c *TokenCursor) Begin() int { return c.top().begin }
func (c *TokenCursor) End() int   { return c.top().end }

// AtEnd reports whether the cursor has consumed the whole current view.
func (c *TokenCursor) AtEnd() bool { return c.index >= c.top().end }

// Peek returns the token under the cursor without advancing, or the EOF
// sentinel token if the view has been exhausted.
func (c *TokenCursor) Peek() Token {
	if c.AtEnd() {
		return Token{Kind: TokenEOF}
	}
	return c.filtered[c.index]
}

// PeekAt looks ahead n tokens (0 == Peek()) within the current view.
func (c *TokenCursor) PeekAt(n int) Token {
	i := c.index + n
	if i < c.top().begin || i >= c.top().end {
		return Token{Kind: TokenEOF}
	}
	return c.filtered[i]
}

// Read consumes and returns the token under the cursor.
func (c *TokenCursor) Read() Token {
	tok := c.Peek()
	if !c.AtEnd() {
		c.index++
	}
	return tok
}

// Expect consumes the token under the cursor if it has kind k, or returns
// an UnexpectedTokenError (or UnexpectedEndOfInputError at view end).
func (c *TokenCursor) Expect(k TokenKind) (Token, error) {
	if c.AtEnd() {
		return Token{}, &UnexpectedEndOfInputError{Pos: c.PosHere(), While: "expecting " + k.String()}
	}
	tok := c.Peek()
	if tok.Kind != k {
		return Token{}, &UnexpectedTokenError{Pos: c.tokenPos(tok), Got: tok.Kind, Want: k.String()}
	}
	return c.Read(), nil
}

// Mark/Reset implement the save-and-restore discipline spec.md requires
// for every speculative sub-parse (type-vs-function-pointer, statement
// disambiguation).
type CursorMark struct {
	index         int
	splitIndex    int
	splitHalfUsed bool
}

func (c *TokenCursor) Mark() CursorMark {
	return CursorMark{index: c.index, splitIndex: c.splitIndex, splitHalfUsed: c.splitHalfUsed}
}

func (c *TokenCursor) Reset(m CursorMark) {
	c.index = m.index
	c.splitIndex = m.splitIndex
	c.splitHalfUsed = m.splitHalfUsed
}

// PosHere returns the source position of the token under the cursor (or of
// end-of-input, resolved against the last token of the raw buffer).
func (c *TokenCursor) PosHere() SourcePosition {
	if !c.AtEnd() {
		return c.tokenPos(c.Peek())
	}
	if len(c.raw) > 0 {
		last := c.raw[len(c.raw)-1]
		return c.tokenPos(last)
	}
	return SourcePosition{File: c.file, Line: 1, Column: 1}
}

func (c *TokenCursor) tokenPos(tok Token) SourcePosition {
	return SourcePosition{File: c.file, Line: tok.Line, Column: tok.Column, Offset: tok.Offset}
}

// RangeFrom builds a SourceRange spanning from the token at mark.index
// (inclusive) to the current cursor position (exclusive), the shape every
// declaration parser uses to stamp its resulting CST node (spec.md §4.5).
func (c *TokenCursor) RangeFrom(m CursorMark) SourceRange {
	start := c.filtered[m.index]
	var end Token
	if c.index > 0 && c.index-1 < len(c.filtered) {
		end = c.filtered[c.index-1]
	} else {
		end = start
	}
	startPos := c.tokenPos(start)
	endPos := c.tokenPos(end)
	endPos.Column += len(end.Text)
	endPos.Offset += len(end.Text)
	return SourceRange{Start: startPos, End: endPos}
}
