package cxxast

import (
	"os"
	"strings"
)

// ParseFile reads path through cache (a nil cache uses the package's
// default, test-harness-convenience cache — spec.md §9), lexes and
// parses it, and returns the populated Program with its CST root
// attached to the file record (spec.md §6's parse_file).
func ParseFile(path string, cache *FileCache, cfg *Config) (*Program, AstNode, error) {
	if cache == nil {
		cache = defaultCache
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	file := cache.GetOrCreate(path, content)
	program := NewProgram()
	parser, err := NewParser(file, program, cfg)
	if err != nil {
		return nil, nil, err
	}
	root, err := parser.ParseTranslationUnit()
	if err != nil {
		return nil, nil, err
	}
	return program, root, nil
}

// ParseSource is the purely in-memory variant of ParseFile (spec.md §6's
// parse_source): it returns only the CST, built against a throwaway
// Program whose entities the caller has no further use for.
func ParseSource(text string, cfg *Config) (AstNode, error) {
	file := newSourceFile("", []byte(text))
	program := NewProgram()
	parser, err := NewParser(file, program, cfg)
	if err != nil {
		return nil, err
	}
	return parser.ParseTranslationUnit()
}

// newScratchParser builds a parser over an anonymous in-memory source
// string, scoped by a throwaway Program, for the granular one-shot
// parsers below (spec.md §6).
func newScratchParser(text string) (*Parser, error) {
	file := newSourceFile("", []byte(text))
	program := NewProgram()
	return NewParser(file, program, nil)
}

// ParseType runs parse_type to the end of text; trailing tokens are an
// error (spec.md §6).
func ParseType(text string) (Type, error) {
	p, err := newScratchParser(text)
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.cursor.AtEnd() {
		tok := p.cursor.Peek()
		return nil, &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "end of input"}
	}
	return typ, nil
}

// ParseFunctionSignature runs parse_function_signature to the end of
// text, returning the resulting Function entity (spec.md §6).
func ParseFunctionSignature(text string) (*Function, error) {
	p, err := newScratchParser(text)
	if err != nil {
		return nil, err
	}
	if err := p.parseFunctionDeclaration(nil, nil); err != nil {
		return nil, err
	}
	if !p.cursor.AtEnd() {
		tok := p.cursor.Peek()
		return nil, &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "end of input"}
	}
	for _, m := range p.program.Global.Members {
		if fn, ok := m.(*Function); ok {
			return fn, nil
		}
	}
	return nil, &UnsupportedConstructError{Pos: p.cursor.PosHere(), Detail: "no function signature parsed"}
}

// ParseVariable runs parse_variable to the end of text, tolerating an
// unterminated declaration that omits its trailing `=` default (spec.md
// §6).
func ParseVariable(text string) (*Variable, error) {
	p, err := newScratchParser(text)
	if err != nil {
		return nil, err
	}
	if err := p.parseVariableDeclaration(); err != nil {
		return nil, err
	}
	if !p.cursor.AtEnd() {
		tok := p.cursor.Peek()
		return nil, &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "end of input"}
	}
	for _, m := range p.program.Global.Members {
		if v, ok := m.(*Variable); ok {
			return v, nil
		}
	}
	return nil, &UnsupportedConstructError{Pos: p.cursor.PosHere(), Detail: "no variable parsed"}
}

// ParseTypedef runs parse_typedef to the end of text (spec.md §6).
func ParseTypedef(text string) (*Typedef, error) {
	p, err := newScratchParser(text)
	if err != nil {
		return nil, err
	}
	if err := p.parseTypedef(); err != nil {
		return nil, err
	}
	if !p.cursor.AtEnd() {
		tok := p.cursor.Peek()
		return nil, &UnexpectedTokenError{Pos: p.cursor.tokenPos(tok), Got: tok.Kind, Want: "end of input"}
	}
	for _, m := range p.program.Global.Members {
		if t, ok := m.(*Typedef); ok {
			return t, nil
		}
	}
	return nil, &UnsupportedConstructError{Pos: p.cursor.PosHere(), Detail: "no typedef parsed"}
}

// ParseMacro runs parse_macro on text (spec.md §6). Preprocessor syntax
// (`#define ...`) is outside the token grammar the Lexer recognizes
// (spec.md §1's preprocessing non-goal), so this one-shot parser scans
// the raw text directly rather than through a TokenCursor: it is
// seeding-only, never invoked as part of a regular parse.
func ParseMacro(text string) (*Macro, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "define") {
		return nil, &UnsupportedConstructError{Detail: "macro definition must start with #define"}
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "define"))

	name := s
	rest := ""
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			name = s[:i]
			rest = s[i:]
			break
		}
	}
	if name == "" {
		return nil, &UnsupportedConstructError{Detail: "macro definition is missing a name"}
	}

	var params []string
	isFunction := strings.HasPrefix(rest, "(")
	if isFunction {
		close := strings.Index(rest, ")")
		if close < 0 {
			return nil, &UnmatchedDelimiterError{Open: TokenLeftPar}
		}
		paramList := rest[1:close]
		rest = rest[close+1:]
		if strings.TrimSpace(paramList) != "" {
			for _, part := range strings.Split(paramList, ",") {
				params = append(params, strings.TrimSpace(part))
			}
		}
	}
	body := strings.TrimSpace(rest)
	return NewMacro(name, nil, params, isFunction, body), nil
}
