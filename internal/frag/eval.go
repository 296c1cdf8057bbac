package frag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"frag/internal/ast"
)

// Evaluator evaluates expressions and runs statements against one
// Environment. Like the Environment it belongs to a single run.
type Evaluator struct {
	env      *Environment
	builtins map[string]Builtin
	patterns map[string]*regexp.Regexp
}

func NewEvaluator(env *Environment) *Evaluator {
	if env == nil {
		env = NewEnvironment()
	}
	return &Evaluator{
		env:      env,
		builtins: builtins,
		patterns: make(map[string]*regexp.Regexp),
	}
}

func (e *Evaluator) Env() *Environment {
	return e.env
}

// EvalName resolves a bare name: a variable or an identifier.
func (e *Evaluator) EvalName(expr ast.Expression) (string, error) {
	switch x := expr.(type) {
	case *ast.Variable:
		return x.Name, nil
	case *ast.Identifier:
		return x.Name, nil
	default:
		return "", notImplemented(expr, describe(expr)+" used as a name")
	}
}

// EvalString renders expr in a string context such as a builtin argument.
func (e *Evaluator) EvalString(expr ast.Expression) (string, error) {
	switch x := expr.(type) {
	case *ast.ConstantString:
		return x.Value, nil
	case *ast.Int:
		return strconv.FormatInt(x.Value, 10), nil
	case *ast.Float:
		return formatFloat(x.Value), nil
	case *ast.PropertyFetch:
		v, err := e.fetchProperty(x)
		if err != nil {
			return "", err
		}
		return scalarString(v, x)
	case *ast.Variable:
		v, ok := e.env.Get(x.Name)
		if !ok {
			return "", newError(NoSuchVariable, x, "$%s", x.Name)
		}
		return scalarString(v, x)
	case *ast.ArrayIndex:
		v, err := e.EvalValue(x)
		if err != nil {
			return "", err
		}
		return scalarString(v, x)
	default:
		return "", notImplemented(expr, describe(expr)+" used as a string")
	}
}

// scalarString is the guest-visible string form of a fetched value.
// Arrays and objects have none.
func scalarString(v Value, node ast.Expression) (string, error) {
	switch v := v.(type) {
	case nil, Null:
		return "", nil
	case String:
		return v.Value, nil
	case Integer:
		return strconv.FormatInt(v.Value, 10), nil
	case Float:
		return formatFloat(v.Value), nil
	case Bool:
		return ToString(v), nil
	case NumberedArray, AssociativeArray, Object:
		return "", newError(WrongVariableType, node, "%s: expected a scalar, found %s", node, typeName(v))
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

// EvalValue evaluates expr to a Value.
func (e *Evaluator) EvalValue(expr ast.Expression) (Value, error) {
	switch x := expr.(type) {
	case *ast.ConstantString:
		return String{Value: x.Value}, nil
	case *ast.Int:
		return Integer{Value: x.Value}, nil
	case *ast.Float:
		return Float{Value: x.Value}, nil
	case *ast.Bool:
		return Bool{Value: x.Value}, nil
	case *ast.Identifier:
		if strings.EqualFold(x.Name, "null") {
			return Null{}, nil
		}
		return nil, notImplemented(x, "constant "+x.Name)
	case *ast.Variable:
		if v, ok := e.env.Get(x.Name); ok {
			return v, nil
		}
		return Null{}, nil
	case *ast.PropertyFetch:
		return e.fetchProperty(x)
	case *ast.ArrayIndex:
		return e.indexArray(x)
	case *ast.Call:
		return e.call(x)
	case *ast.Not:
		v, err := e.EvalValue(x.Expr)
		if err != nil {
			return nil, err
		}
		return Bool{Value: !Truthy(v)}, nil
	case *ast.Infix:
		return nil, notImplemented(x, "operator "+x.Op)
	default:
		return nil, notImplemented(expr, describe(expr))
	}
}

// operand resolves the container side of a property fetch or array index.
// bound is false only for a plain variable with no binding.
func (e *Evaluator) operand(expr ast.Expression) (v Value, name string, bound bool, err error) {
	switch x := expr.(type) {
	case *ast.Variable, *ast.Identifier:
		name, _ = e.EvalName(x)
		v, bound = e.env.Get(name)
		return v, "$" + name, bound, nil
	case *ast.PropertyFetch, *ast.ArrayIndex:
		v, err = e.EvalValue(x)
		return v, x.String(), true, err
	default:
		return nil, "", false, notImplemented(expr, describe(expr)+" used as a container")
	}
}

func (e *Evaluator) fetchProperty(x *ast.PropertyFetch) (Value, error) {
	v, name, bound, err := e.operand(x.Target)
	if err != nil {
		return nil, err
	}
	property, err := e.EvalName(x.Property)
	if err != nil {
		return nil, err
	}
	if !bound {
		return nil, newError(NoSuchVariable, x.Target, "%s", name)
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, newError(WrongVariableType, x.Target, "%s: expected object, found %s", name, typeName(v))
	}
	pv, ok := obj.Elements[property]
	if !ok {
		return nil, newError(NoSuchProperty, x.Property, "%s->%s", name, property)
	}
	return pv, nil
}

// indexArray reads an element of a numbered array. Reading past either end,
// or from an unbound variable, yields Null.
func (e *Evaluator) indexArray(x *ast.ArrayIndex) (Value, error) {
	if x.Index == nil {
		return nil, newError(NoArrayIndex, x, "%s", x)
	}
	v, name, bound, err := e.operand(x.Array)
	if err != nil {
		return nil, err
	}
	iv, err := e.EvalValue(x.Index)
	if err != nil {
		return nil, err
	}
	i := ToInteger(iv)
	if !bound {
		return Null{}, nil
	}
	arr, ok := v.(NumberedArray)
	if !ok {
		return nil, newError(WrongVariableType, x.Array, "%s: expected numbered array, found %s", name, typeName(v))
	}
	if i < 0 || i >= int64(len(arr.Elements)) {
		return Null{}, nil
	}
	return arr.Elements[i], nil
}

func (e *Evaluator) call(x *ast.Call) (Value, error) {
	ident, ok := x.Target.(*ast.Identifier)
	if !ok {
		return nil, notImplemented(x.Target, "call through "+describe(x.Target))
	}
	v, err := e.Dispatch(ident.Name, x)
	return v, at(err, x)
}

func typeName(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case NumberedArray:
		return "numbered array"
	case AssociativeArray:
		return "associative array"
	case Object:
		return "object"
	default:
		panic(fmt.Sprintf("unknown value %T", v))
	}
}

func describe(expr ast.Expression) string {
	var kind string
	switch expr.(type) {
	case *ast.Variable:
		kind = "variable"
	case *ast.Identifier:
		kind = "identifier"
	case *ast.ConstantString:
		kind = "string literal"
	case *ast.Int:
		kind = "integer literal"
	case *ast.Float:
		kind = "float literal"
	case *ast.Bool:
		kind = "bool literal"
	case *ast.PropertyFetch:
		kind = "property fetch"
	case *ast.ArrayIndex:
		kind = "array index"
	case *ast.Call:
		kind = "call"
	case *ast.Infix:
		kind = "infix expression"
	case *ast.Not:
		kind = "negation"
	default:
		return fmt.Sprintf("%T", expr)
	}
	return kind + " " + expr.String()
}
