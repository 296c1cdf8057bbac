package parser

import (
	"strconv"
	"strings"

	"frag/internal/ast"
)

func convertStatements(nodes []*statementNode) (ast.Block, error) {
	block := make(ast.Block, 0, len(nodes))
	for _, n := range nodes {
		stmt, err := convertStatement(n)
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
	}
	return block, nil
}

func convertStatement(n *statementNode) (ast.Statement, error) {
	if n.If != nil {
		return convertIf(n.If)
	}
	expr, err := convertExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Pos: position(n.Pos), Expr: expr}, nil
}

func convertIf(n *ifNode) (ast.Statement, error) {
	cond, err := convertExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := convertBlock(n.Then)
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Pos: position(n.Pos), Cond: cond, Then: then}
	for _, tail := range n.Tail {
		if stmt.Else != nil {
			return nil, &Error{Pos: position(tail.Pos), Message: "else must be the last branch of an if"}
		}
		var branch *condBlockNode
		switch {
		case tail.ElseIf != nil:
			branch = tail.ElseIf
		case tail.Else.If != nil:
			branch = tail.Else.If
		default:
			body, err := convertBlock(tail.Else.Body)
			if err != nil {
				return nil, err
			}
			stmt.Else = &body
			continue
		}
		ei, err := convertCondBlock(branch)
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ei)
	}
	return stmt, nil
}

func convertCondBlock(n *condBlockNode) (ast.ElseIf, error) {
	cond, err := convertExpr(n.Cond)
	if err != nil {
		return ast.ElseIf{}, err
	}
	body, err := convertBlock(n.Body)
	if err != nil {
		return ast.ElseIf{}, err
	}
	return ast.ElseIf{Pos: position(n.Pos), Cond: cond, Block: body}, nil
}

func convertBlock(n *blockNode) (ast.Block, error) {
	if n.Single != nil {
		stmt, err := convertStatement(n.Single)
		if err != nil {
			return nil, err
		}
		return ast.Block{stmt}, nil
	}
	return convertStatements(n.Braced)
}

func convertExpr(n *exprNode) (ast.Expression, error) {
	left, err := convertUnary(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Right == nil {
		return left, nil
	}
	right, err := convertExpr(n.Right)
	if err != nil {
		return nil, err
	}
	return &ast.Infix{Pos: position(n.Pos), LHS: left, Op: n.Op, RHS: right}, nil
}

func convertUnary(n *unaryNode) (ast.Expression, error) {
	if n.Not != nil {
		inner, err := convertUnary(n.Not)
		if err != nil {
			return nil, err
		}
		return &ast.Not{Pos: position(n.Pos), Expr: inner}, nil
	}
	return convertPostfix(n.Postfix)
}

func convertPostfix(n *postfixNode) (ast.Expression, error) {
	expr, err := convertPrimary(n.Primary)
	if err != nil {
		return nil, err
	}
	for _, s := range n.Suffix {
		pos := position(s.Pos)
		switch {
		case s.Property != nil:
			expr = &ast.PropertyFetch{
				Pos:      pos,
				Target:   expr,
				Property: &ast.Identifier{Pos: position(s.Property.Pos), Name: s.Property.Name},
			}
		case s.Index != nil:
			ai := &ast.ArrayIndex{Pos: pos, Array: expr}
			if s.Index.Index != nil {
				if ai.Index, err = convertExpr(s.Index.Index); err != nil {
					return nil, err
				}
			}
			expr = ai
		case s.Call != nil:
			call := &ast.Call{Pos: pos, Target: expr}
			for _, a := range s.Call.Args {
				arg, err := convertExpr(a)
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
			}
			expr = call
		}
	}
	return expr, nil
}

func convertPrimary(n *primaryNode) (ast.Expression, error) {
	pos := position(n.Pos)
	switch {
	case n.Variable != nil:
		return &ast.Variable{Pos: pos, Name: strings.TrimPrefix(*n.Variable, "$")}, nil
	case n.Float != nil:
		f, err := strconv.ParseFloat(*n.Float, 64)
		if err != nil {
			return nil, &Error{Pos: pos, Message: "invalid float literal " + *n.Float}
		}
		return &ast.Float{Pos: pos, Value: f}, nil
	case n.Int != nil:
		i, err := strconv.ParseInt(*n.Int, 0, 64)
		if err != nil {
			return nil, &Error{Pos: pos, Message: "invalid integer literal " + *n.Int}
		}
		return &ast.Int{Pos: pos, Value: i}, nil
	case n.SQString != nil:
		return &ast.ConstantString{Pos: pos, Value: unquoteSingle(*n.SQString)}, nil
	case n.DQString != nil:
		s, err := unquoteDouble(*n.DQString)
		if err != nil {
			return nil, &Error{Pos: pos, Message: err.Error()}
		}
		return &ast.ConstantString{Pos: pos, Value: s}, nil
	case n.Ident != nil:
		switch strings.ToLower(*n.Ident) {
		case "true":
			return &ast.Bool{Pos: pos, Value: true}, nil
		case "false":
			return &ast.Bool{Pos: pos, Value: false}, nil
		}
		return &ast.Identifier{Pos: pos, Name: *n.Ident}, nil
	default:
		return convertExpr(n.Paren)
	}
}
