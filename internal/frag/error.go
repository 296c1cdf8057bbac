package frag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"frag/internal/ast"
)

type ErrorKind int

const (
	NoSuchCodeFragment ErrorKind = iota + 1
	NotImplemented
	NoSuchArg
	RegexError
	NoSuchVariable
	NoSuchProperty
	WrongVariableType
	NoArrayIndex
	ParseError
	Canceled
)

func (k ErrorKind) String() string {
	switch k {
	case NoSuchCodeFragment:
		return "no such code fragment"
	case NotImplemented:
		return "not implemented"
	case NoSuchArg:
		return "missing argument"
	case RegexError:
		return "invalid regular expression"
	case NoSuchVariable:
		return "no such variable"
	case NoSuchProperty:
		return "no such property"
	case WrongVariableType:
		return "wrong variable type"
	case NoArrayIndex:
		return "missing array index"
	case ParseError:
		return "parse error"
	case Canceled:
		return "canceled"
	default:
		return "unknown error"
	}
}

// Error is the single error type surfaced by fragment execution. Detail names
// the offending construct, variable, property or pattern.
type Error struct {
	Kind     ErrorKind
	Detail   string
	Fragment uint64
	Location *ast.Pos
	Help     string
	Source   string // framed fragment source, when known
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Fragment != 0 {
		fmt.Fprintf(&b, "fragment %d: ", e.Fragment)
	}
	if e.Location != nil {
		b.WriteString(e.Location.String() + ": ")
	}
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, node ast.Node, format string, args ...any) *Error {
	e := &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
	if node != nil {
		pos := node.Position()
		e.Location = &pos
	}
	return e
}

func notImplemented(node ast.Node, what string) *Error {
	e := newError(NotImplemented, node, "%s", what)
	e.Help = "only conditionals, assignments and builtin calls over variables, properties and array elements are supported"
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// at fills in a location for errors raised below the node that knows it.
func at(err error, node ast.Node) error {
	var e *Error
	if errors.As(err, &e) && e.Location == nil && node != nil {
		pos := node.Position()
		e.Location = &pos
	}
	return err
}

var (
	errMark  = color.New(color.FgRed, color.Bold).SprintFunc()
	gutter   = color.New(color.FgBlue).SprintFunc()
	pointer  = color.New(color.FgRed).SprintFunc()
	helpMark = color.New(color.FgCyan).SprintFunc()
)

// FormatError renders err as an operator diagnostic, quoting the fragment
// source around the failing construct. An empty source falls back to the
// source recorded on the error.
func FormatError(err error, source string) string {
	var e *Error
	if !errors.As(err, &e) {
		return errMark("✗ ") + err.Error() + "\n"
	}
	if source == "" {
		source = e.Source
	}

	var b strings.Builder
	b.WriteString(errMark("✗ "))
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}
	b.WriteString("\n")

	if e.Location == nil {
		if e.Fragment != 0 {
			b.WriteString(gutter("  ╰─ ") + fmt.Sprintf("fragment %d\n", e.Fragment))
		}
		return b.String()
	}

	b.WriteString(gutter(fmt.Sprintf("  ╭─[fragment %d:%d:%d]\n", e.Fragment, e.Location.Line, e.Location.Column)))

	lines := strings.Split(source, "\n")
	if e.Location.Line >= 1 && e.Location.Line <= len(lines) {
		b.WriteString(gutter("  │") + "\n")
		start := max(e.Location.Line-2, 1)
		end := min(e.Location.Line+1, len(lines))
		for n := start; n <= end; n++ {
			line := lines[n-1]
			b.WriteString(gutter(fmt.Sprintf("%3d│ ", n)) + line + "\n")
			if n != e.Location.Line {
				continue
			}
			pad := padTo(line, e.Location.Column-1)
			b.WriteString(gutter("  │ ") + pad + pointer("─┬─ here") + "\n")
			b.WriteString(gutter("  │ ") + pad + pointer(" ╰─ "+e.Kind.String()) + "\n")
		}
	}
	b.WriteString(gutter("  │") + "\n")

	if e.Help != "" {
		b.WriteString(gutter("  │ ") + helpMark("💡 Help: ") + e.Help + "\n")
		b.WriteString(gutter("  │") + "\n")
	}
	return b.String()
}

// padTo returns whitespace as wide as the first n bytes of line, keeping tabs.
func padTo(line string, n int) string {
	var b strings.Builder
	for j := 0; j < n; j++ {
		if j < len(line) && line[j] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
