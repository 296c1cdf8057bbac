package parser

import "github.com/alecthomas/participle/v2/lexer"

// The grammar types mirror PHP's statement/expression shapes closely enough
// for field-extraction snippets. They are converted into package ast nodes
// by convert.go and never escape this package.

type fragmentNode struct {
	Statements []*statementNode `OpenTag @@* CloseTag?`
}

type statementNode struct {
	Pos  lexer.Position
	If   *ifNode   `  @@`
	Expr *exprNode `| @@ ";"`
}

type ifNode struct {
	Pos  lexer.Position
	Cond *exprNode   `"if" "(" @@ ")"`
	Then *blockNode  `@@`
	Tail []*elseNode `@@*`
}

type elseNode struct {
	Pos    lexer.Position
	ElseIf *condBlockNode `  "elseif" @@`
	Else   *elseBodyNode  `| "else" @@`
}

type elseBodyNode struct {
	If   *condBlockNode `  "if" @@`
	Body *blockNode     `| @@`
}

type condBlockNode struct {
	Pos  lexer.Position
	Cond *exprNode  `"(" @@ ")"`
	Body *blockNode `@@`
}

type blockNode struct {
	Braced []*statementNode `  "{" @@* "}"`
	Single *statementNode   `| @@`
}

// Binary operators form a flat right-associative chain; only assignment is
// given meaning by the evaluator.
type exprNode struct {
	Pos   lexer.Position
	Left  *unaryNode `@@`
	Op    string     `( @("=" | "===" | "!==" | "==" | "!=" | "<=" | ">=" | "<" | ">" | "&&" | "||" | "." | "+" | "-" | "*" | "/" | "%")`
	Right *exprNode  `  @@ )?`
}

type unaryNode struct {
	Pos     lexer.Position
	Not     *unaryNode   `  "!" @@`
	Postfix *postfixNode `| @@`
}

type postfixNode struct {
	Pos     lexer.Position
	Primary *primaryNode  `@@`
	Suffix  []*suffixNode `@@*`
}

type suffixNode struct {
	Pos      lexer.Position
	Property *identNode `  "->" @@`
	Index    *indexNode `| @@`
	Call     *argsNode  `| @@`
}

type identNode struct {
	Pos  lexer.Position
	Name string `@Ident`
}

type indexNode struct {
	Open  string    `@"["`
	Index *exprNode `@@? "]"`
}

type argsNode struct {
	Open string      `@"("`
	Args []*exprNode `( @@ ( "," @@ )* )? ")"`
}

type primaryNode struct {
	Pos      lexer.Position
	Variable *string   `  @Variable`
	Float    *string   `| @Float`
	Int      *string   `| @Int`
	SQString *string   `| @SQString`
	DQString *string   `| @DQString`
	Ident    *string   `| @Ident`
	Paren    *exprNode `| "(" @@ ")"`
}
