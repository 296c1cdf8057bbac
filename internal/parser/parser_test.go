package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frag/internal/ast"
)

func parse(t *testing.T, code string) ast.Block {
	t.Helper()
	block, err := Parse("test", OpenTag+"\n"+code)
	require.NoError(t, err)
	return block
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		checkFunc func(*testing.T, ast.Block)
	}{
		{
			name:  "assignment",
			input: `$x = $m[1];`,
			checkFunc: func(t *testing.T, b ast.Block) {
				require.Len(t, b, 1)
				s := b[0].(*ast.ExpressionStatement)
				infix := s.Expr.(*ast.Infix)
				assert.Equal(t, "=", infix.Op)
				assert.Equal(t, &ast.Variable{Pos: ast.Pos{Line: 2, Column: 1}, Name: "x"}, infix.LHS)
				idx := infix.RHS.(*ast.ArrayIndex)
				assert.Equal(t, int64(1), idx.Index.(*ast.Int).Value)
			},
		},
		{
			name:  "preg_match condition",
			input: `if (preg_match('/\((\d{4})-(\d{4})\)/', $o->ext_desc, $m)) { $x = $m[1]; }`,
			checkFunc: func(t *testing.T, b ast.Block) {
				require.Len(t, b, 1)
				s := b[0].(*ast.If)
				call := s.Cond.(*ast.Call)
				assert.Equal(t, "preg_match", call.Target.(*ast.Identifier).Name)
				require.Len(t, call.Args, 3)
				assert.Equal(t, `/\((\d{4})-(\d{4})\)/`, call.Args[0].(*ast.ConstantString).Value)
				assert.Equal(t, "$o->ext_desc", call.Args[1].String())
				assert.Equal(t, "m", call.Args[2].(*ast.Variable).Name)
				assert.Len(t, s.Then, 1)
				assert.Empty(t, s.ElseIfs)
				assert.Nil(t, s.Else)
			},
		},
		{
			name:  "elseif chain",
			input: "if ($a) { $r = 1; } elseif ($b) { $r = 2; } else if ($c) $r = 3; else { $r = 4; $s = 5; }",
			checkFunc: func(t *testing.T, b ast.Block) {
				s := b[0].(*ast.If)
				require.Len(t, s.ElseIfs, 2)
				assert.Equal(t, "$b", s.ElseIfs[0].Cond.String())
				assert.Equal(t, "$c", s.ElseIfs[1].Cond.String())
				require.NotNil(t, s.Else)
				assert.Len(t, *s.Else, 2)
				assert.Equal(t, "if ($a) {...} elseif ($b) {...} elseif ($c) {...} else {...}", s.String())
			},
		},
		{
			name:  "nested if",
			input: "if ($a) { if ($b) { $r = 1; } }",
			checkFunc: func(t *testing.T, b ast.Block) {
				outer := b[0].(*ast.If)
				assert.IsType(t, &ast.If{}, outer.Then[0])
			},
		},
		{
			name:  "postfix chains",
			input: `$r = $o->items[0]->name; $a[] = f(1, 'two', 3.5, true);`,
			checkFunc: func(t *testing.T, b ast.Block) {
				require.Len(t, b, 2)
				assert.Equal(t, "$r = $o->items[0]->name;", b[0].String())
				assert.Equal(t, "$a[] = f(1, 'two', 3.5, true);", b[1].String())
			},
		},
		{
			name:  "right-associative operators",
			input: `$x = $a . $b . 'c';`,
			checkFunc: func(t *testing.T, b ast.Block) {
				infix := b[0].(*ast.ExpressionStatement).Expr.(*ast.Infix)
				rhs := infix.RHS.(*ast.Infix)
				assert.Equal(t, ".", rhs.Op)
				assert.IsType(t, &ast.Infix{}, rhs.RHS)
			},
		},
		{
			name:  "negation and grouping",
			input: `if (!($a)) { }`,
			checkFunc: func(t *testing.T, b ast.Block) {
				s := b[0].(*ast.If)
				not := s.Cond.(*ast.Not)
				assert.Equal(t, "$a", not.Expr.String())
				assert.Empty(t, s.Then)
			},
		},
		{
			name:  "literals",
			input: `$a = 0x1F; $b = 1e3; $c = FALSE; $d = "tab\there\$"; $e = 'it\'s \n';`,
			checkFunc: func(t *testing.T, b ast.Block) {
				rhs := func(i int) ast.Expression {
					return b[i].(*ast.ExpressionStatement).Expr.(*ast.Infix).RHS
				}
				assert.Equal(t, int64(31), rhs(0).(*ast.Int).Value)
				assert.Equal(t, 1000.0, rhs(1).(*ast.Float).Value)
				assert.False(t, rhs(2).(*ast.Bool).Value)
				assert.Equal(t, "tab\there$", rhs(3).(*ast.ConstantString).Value)
				assert.Equal(t, `it's \n`, rhs(4).(*ast.ConstantString).Value)
			},
		},
		{
			name:  "comments and close tag",
			input: "# one\n$a = 1; // two\n/* three\n */\n?>",
			checkFunc: func(t *testing.T, b ast.Block) {
				assert.Len(t, b, 1)
			},
		},
		{
			name:  "empty",
			input: "",
			checkFunc: func(t *testing.T, b ast.Block) {
				assert.Empty(t, b)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFunc(t, parse(t, tt.input))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		pos    ast.Pos
	}{
		{"missing open tag", "$a = 1;", ast.Pos{Line: 1, Column: 1}},
		{"missing semicolon", OpenTag + "\n$a = 1\n", ast.Pos{}},
		{"unbalanced braces", OpenTag + "\nif ($a) { $b = 1;", ast.Pos{}},
		{"interpolation", OpenTag + "\n$a = \"x $b\";", ast.Pos{Line: 2, Column: 6}},
		{"else not last", OpenTag + "\nif ($a) { } else { } else { }", ast.Pos{Line: 2, Column: 22}},
		{"unterminated string", OpenTag + "\n$a = 'x;", ast.Pos{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", tt.source)
			var perr *Error
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.NotEmpty(t, perr.Message)
			if tt.pos != (ast.Pos{}) {
				assert.Equal(t, tt.pos, perr.Pos)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, `a\b`, unquoteSingle(`'a\b'`))
	assert.Equal(t, `a\b`, unquoteSingle(`'a\\b'`))
	assert.Equal(t, `'`, unquoteSingle(`'\''`))

	s, err := unquoteDouble(`"a\nb\\c\"d\qe"`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\\c\"d\\qe", s)

	s, err = unquoteDouble(`"costs $5"`)
	require.NoError(t, err)
	assert.Equal(t, "costs $5", s)

	_, err = unquoteDouble(`"hi ${name}"`)
	assert.ErrorIs(t, err, errInterpolation)
}
