package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	f := newSourceFile("", []byte("int x = 42;"))
	lex := NewLexer(f)

	var kinds []TokenKind
	for {
		tok, err := lex.Read()
		require.NoError(t, err)
		if tok.Kind == TokenEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenInt, TokenIdentifier, TokenEq, TokenIntegerLiteral, TokenSemicolon,
	}, kinds)
}

func TestLexerUserDefinedLiteral(t *testing.T) {
	f := newSourceFile("", []byte(`42_kg`))
	lex := NewLexer(f)
	tok, err := lex.Read()
	require.NoError(t, err)
	assert.Equal(t, TokenUserDefinedLiteral, tok.Kind)
	assert.Equal(t, "42_kg", tok.Text)
}

func TestLexerStringLiteralEscapes(t *testing.T) {
	f := newSourceFile("", []byte(`"Hello \"World\""`))
	lex := NewLexer(f)
	tok, err := lex.Read()
	require.NoError(t, err)
	assert.Equal(t, TokenStringLiteral, tok.Kind)
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	f := newSourceFile("", []byte(`"unterminated`))
	lex := NewLexer(f)
	_, err := lex.Read()
	require.Error(t, err)
	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestLexerRawNewlineInStringIsError(t *testing.T) {
	f := newSourceFile("", []byte("\"a\nb\""))
	lex := NewLexer(f)
	_, err := lex.Read()
	require.Error(t, err)
}

func TestLexerRightShiftToken(t *testing.T) {
	f := newSourceFile("", []byte("a>>b"))
	lex := NewLexer(f)
	tok, err := lex.Read()
	require.NoError(t, err)
	assert.Equal(t, TokenIdentifier, tok.Kind)
	tok, err = lex.Read()
	require.NoError(t, err)
	assert.Equal(t, TokenRightShift, tok.Kind)
}
