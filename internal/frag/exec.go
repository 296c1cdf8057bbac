package frag

import (
	"context"
	"fmt"

	"frag/internal/ast"
	"frag/internal/debug"
)

// Run executes block statement by statement. The first failure aborts the
// block and every enclosing block. ctx is checked before each statement.
func (e *Evaluator) Run(ctx context.Context, block ast.Block) error {
	for _, stmt := range block {
		if err := ctx.Err(); err != nil {
			pos := stmt.Position()
			return &Error{Kind: Canceled, Detail: err.Error(), Location: &pos, Err: err}
		}
		if debug.Eval() {
			debug.Logf("%s: %s\n", stmt.Position(), stmt)
		}
		if err := e.exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) exec(ctx context.Context, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.If:
		return e.execIf(ctx, s)
	case *ast.ExpressionStatement:
		return e.execExpression(s)
	default:
		return notImplemented(stmt, fmt.Sprintf("statement %T", stmt))
	}
}

func (e *Evaluator) execIf(ctx context.Context, s *ast.If) error {
	ok, err := e.condition(s.Cond)
	if err != nil {
		return err
	}
	if ok {
		return e.Run(ctx, s.Then)
	}
	for _, ei := range s.ElseIfs {
		ok, err := e.condition(ei.Cond)
		if err != nil {
			return err
		}
		if ok {
			return e.Run(ctx, ei.Block)
		}
	}
	if s.Else != nil {
		return e.Run(ctx, *s.Else)
	}
	return nil
}

func (e *Evaluator) condition(expr ast.Expression) (bool, error) {
	if infix, ok := expr.(*ast.Infix); ok {
		return false, notImplemented(infix, "operator "+infix.Op+" in a condition")
	}
	v, err := e.EvalValue(expr)
	if err != nil {
		return false, err
	}
	if debug.Eval() {
		debug.Logf("condition %s => %s\n", expr, Debug(v))
	}
	return Truthy(v), nil
}

func (e *Evaluator) execExpression(s *ast.ExpressionStatement) error {
	switch x := s.Expr.(type) {
	case *ast.Infix:
		if x.Op != "=" {
			return notImplemented(x, "operator "+x.Op+" as a statement")
		}
		v, err := e.EvalValue(x.RHS)
		if err != nil {
			return err
		}
		return e.assign(x.LHS, Clone(v))
	case *ast.Call:
		_, err := e.call(x)
		return err
	default:
		return notImplemented(x, describe(x)+" as a statement")
	}
}

// assign binds v to a variable, an object property or a numbered array slot.
func (e *Evaluator) assign(target ast.Expression, v Value) error {
	switch t := target.(type) {
	case *ast.Variable:
		e.env.Set(t.Name, v)
		return nil
	case *ast.PropertyFetch:
		return e.assignProperty(t, v)
	case *ast.ArrayIndex:
		return e.assignElement(t, v)
	default:
		return notImplemented(target, "assignment to "+describe(target))
	}
}

func (e *Evaluator) assignProperty(t *ast.PropertyFetch, v Value) error {
	name, err := e.EvalName(t.Target)
	if err != nil {
		return err
	}
	property, err := e.EvalName(t.Property)
	if err != nil {
		return err
	}
	cur, ok := e.env.Get(name)
	if !ok {
		return newError(NoSuchVariable, t.Target, "$%s", name)
	}
	obj, ok := cur.(Object)
	if !ok {
		return newError(WrongVariableType, t.Target, "$%s: expected object, found %s", name, typeName(cur))
	}
	if obj.Elements == nil {
		obj.Elements = map[string]Value{}
		e.env.Set(name, obj)
	}
	obj.Elements[property] = v
	return nil
}

// assignElement overwrites an existing slot or appends at the end ($a[] = v
// or an index equal to the length). An unbound variable starts out empty.
func (e *Evaluator) assignElement(t *ast.ArrayIndex, v Value) error {
	name, err := e.EvalName(t.Array)
	if err != nil {
		return err
	}
	arr := NumberedArray{}
	if cur, ok := e.env.Get(name); ok {
		if arr, ok = cur.(NumberedArray); !ok {
			return newError(WrongVariableType, t.Array, "$%s: expected numbered array, found %s", name, typeName(cur))
		}
	}
	i := int64(len(arr.Elements))
	if t.Index != nil {
		iv, err := e.EvalValue(t.Index)
		if err != nil {
			return err
		}
		i = ToInteger(iv)
	}
	switch {
	case i >= 0 && i < int64(len(arr.Elements)):
		arr.Elements[i] = v
	case i == int64(len(arr.Elements)):
		arr.Elements = append(arr.Elements, v)
	default:
		return notImplemented(t, fmt.Sprintf("assignment to index %d of an array of length %d", i, len(arr.Elements)))
	}
	e.env.Set(name, arr)
	return nil
}
