package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// OpenTag must start every fragment source handed to Parse.
const OpenTag = "<?php"

var phpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "OpenTag", Pattern: `<\?php`},
	{Name: "CloseTag", Pattern: `\?>`},
	{Name: "Comment", Pattern: `//[^\n]*|#[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Variable", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "SQString", Pattern: `'(?:\\.|[^'\\])*'`},
	{Name: "DQString", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Float", Pattern: `\d+\.\d+(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
	{Name: "Int", Pattern: `0[xX][0-9a-fA-F]+|\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Operator", Pattern: `->|===|!==|==|!=|<=|>=|&&|\|\||[-+*/.%<>=!]`},
	{Name: "Punct", Pattern: `[(){}\[\];,]`},
})

type Token struct {
	Kind   string
	Value  string
	Line   int
	Column int
}

// Tokens lexes source and returns every token except whitespace, the way
// the grammar sees them before comment elision.
func Tokens(name, source string) ([]Token, error) {
	names := lexer.SymbolsByRune(phpLexer)
	lex, err := phpLexer.Lex(name, strings.NewReader(source))
	if err != nil {
		return nil, wrapError(err)
	}
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, wrapError(err)
		}
		if tok.EOF() {
			return tokens, nil
		}
		kind := names[tok.Type]
		if kind == "Whitespace" {
			continue
		}
		tokens = append(tokens, Token{
			Kind:   kind,
			Value:  tok.Value,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}
}
