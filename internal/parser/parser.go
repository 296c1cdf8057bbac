package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"frag/internal/ast"
	"frag/internal/debug"
)

var phpParser = participle.MustBuild[fragmentNode](
	participle.Lexer(phpLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// Error is a lex or parse failure with the position it occurred at.
type Error struct {
	Pos     ast.Pos
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parse turns framed fragment source (starting with OpenTag) into a block.
// There is no partial result: any syntax error fails the whole fragment.
func Parse(name, source string) (ast.Block, error) {
	if !strings.HasPrefix(strings.TrimLeft(source, " \t\r\n"), OpenTag) {
		return nil, &Error{Pos: ast.Pos{Line: 1, Column: 1}, Message: "missing " + OpenTag + " open tag"}
	}
	tree, err := phpParser.ParseString(name, source)
	if err != nil {
		return nil, wrapError(err)
	}
	block, err := convertStatements(tree.Statements)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %s: %d top-level statements\n", name, len(block))
	}
	return block, nil
}

func wrapError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &Error{Pos: position(perr.Position()), Message: perr.Message()}
	}
	return err
}

func position(p lexer.Position) ast.Pos {
	return ast.Pos{Line: p.Line, Column: p.Column}
}
