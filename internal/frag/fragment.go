package frag

import (
	"context"
	"errors"
	"fmt"

	"frag/internal/ast"
	"frag/internal/parser"
	"frag/internal/store"
)

// Framing prepended to stored fragment code before parsing.
const Framing = parser.OpenTag + "\n"

// Source yields the stored code of a fragment. store.Store implementations
// satisfy it.
type Source interface {
	Fetch(ctx context.Context, id uint64) (string, error)
}

// Fragment is a parsed code fragment, ready to run any number of times.
type Fragment struct {
	ID     uint64
	Source string // framed source, as parsed
	Block  ast.Block
}

// Compile frames and parses code. A syntax error fails the whole fragment.
func Compile(id uint64, code string) (*Fragment, error) {
	source := Framing + code
	block, err := parser.Parse(fmt.Sprintf("fragment %d", id), source)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			pos := perr.Pos
			return nil, &Error{Kind: ParseError, Detail: perr.Message, Fragment: id, Location: &pos, Source: source, Err: err}
		}
		return nil, &Error{Kind: ParseError, Detail: err.Error(), Fragment: id, Source: source, Err: err}
	}
	return &Fragment{ID: id, Source: source, Block: block}, nil
}

// Load fetches fragment id from src and compiles it.
func Load(ctx context.Context, src Source, id uint64) (*Fragment, error) {
	code, err := src.Fetch(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Error{Kind: NoSuchCodeFragment, Detail: fmt.Sprintf("id %d", id), Fragment: id, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("fragment %d: %w", id, err)
	}
	return Compile(id, code)
}

// Run executes the fragment against env. Errors name the fragment.
func (f *Fragment) Run(ctx context.Context, env *Environment) error {
	err := NewEvaluator(env).Run(ctx, f.Block)
	var e *Error
	if errors.As(err, &e) {
		e.Fragment = f.ID
		e.Source = f.Source
	}
	return err
}

// Execute loads fragment id and runs it against env. Nothing is evaluated
// when the fragment cannot be loaded.
func Execute(ctx context.Context, src Source, id uint64, env *Environment) error {
	f, err := Load(ctx, src, id)
	if err != nil {
		return err
	}
	return f.Run(ctx, env)
}
