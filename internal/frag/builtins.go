package frag

import (
	"regexp"
	"sort"

	"frag/internal/ast"
	"frag/internal/debug"
)

// Builtin is a natively implemented guest function. It receives the call
// node unevaluated so it can decide how each argument is interpreted.
type Builtin func(e *Evaluator, call *ast.Call) (Value, error)

// builtins is the fixed dispatch table; it is never written at run time.
var builtins = map[string]Builtin{
	"preg_match": builtinPregMatch,
}

// Builtins lists the names of every builtin.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the builtin called name. An unknown name is an error, never
// a no-op.
func (e *Evaluator) Dispatch(name string, call *ast.Call) (Value, error) {
	b, ok := e.builtins[name]
	if !ok {
		return nil, notImplemented(call, "builtin "+name)
	}
	return b(e, call)
}

func arg(call *ast.Call, i int, what string) (ast.Expression, error) {
	if i >= len(call.Args) {
		return nil, newError(NoSuchArg, call, "%s: missing argument %d (%s)", call.Target, i+1, what)
	}
	return call.Args[i], nil
}

func (e *Evaluator) pattern(source string) (*regexp.Regexp, error) {
	if re, ok := e.patterns[source]; ok {
		return re, nil
	}
	re, err := compilePattern(source)
	if err != nil {
		return nil, err
	}
	e.patterns[source] = re
	return re, nil
}

// preg_match(pattern, subject [, &matches]) reports whether pattern matches
// anywhere in subject. With a third argument, a successful match binds the
// whole match and every group (unmatched groups as "") as a numbered array;
// a failed match leaves the variable untouched.
func builtinPregMatch(e *Evaluator, call *ast.Call) (Value, error) {
	if len(call.Args) > 3 {
		return nil, notImplemented(call.Args[3], "preg_match flags and offset arguments")
	}
	patternArg, err := arg(call, 0, "pattern")
	if err != nil {
		return nil, err
	}
	pattern, err := e.EvalString(patternArg)
	if err != nil {
		return nil, err
	}
	re, err := e.pattern(pattern)
	if err != nil {
		return nil, at(err, patternArg)
	}
	subjectArg, err := arg(call, 1, "subject")
	if err != nil {
		return nil, err
	}
	subject, err := e.EvalString(subjectArg)
	if err != nil {
		return nil, err
	}
	if debug.Builtin() {
		debug.Logf("preg_match %s against %q\n", re, subject)
	}

	if len(call.Args) == 2 {
		return Bool{Value: re.MatchString(subject)}, nil
	}

	out, ok := call.Args[2].(*ast.Variable)
	if !ok {
		return nil, notImplemented(call.Args[2], "preg_match output into "+describe(call.Args[2]))
	}
	loc := re.FindStringSubmatchIndex(subject)
	if loc == nil {
		return Bool{Value: false}, nil
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if start := loc[2*i]; start >= 0 {
			groups[i] = subject[start:loc[2*i+1]]
		}
	}
	if debug.Builtin() {
		debug.Logf("preg_match binds $%s = %q\n", out.Name, groups)
	}
	e.env.Set(out.Name, NewStrings(groups...))
	return Bool{Value: true}, nil
}
