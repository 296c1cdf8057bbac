package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"frag/internal/ast"
	"frag/internal/frag"
	"frag/internal/parser"
)

const rule = "─────────────────────────────────────────────────────────────────"

func readFragmentFile(cc *cli.Context, cmd *cli.Command, args []string) (string, string, error) {
	args, err := cmd.Parse(cc, args)
	if err != nil {
		return "", "", err
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("%w: expected one file", cli.ErrUsage)
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("could not read %q: %w", args[0], err)
	}
	return args[0], stripOpenTag(string(content)), nil
}

func lex(cfg *LexConfig, cc *cli.Context, args []string) error {
	filename, code, err := readFragmentFile(cc, cfg.Lex, args)
	if err != nil {
		return err
	}
	tokens, err := parser.Tokens(filename, frag.Framing+code)
	printTokens(cc.Out, filename, tokens)
	if err != nil {
		return fmt.Errorf("lexer error: %w", err)
	}
	return nil
}

func printTokens(w io.Writer, filename string, tokens []parser.Token) {
	fmt.Fprintf(w, "Lexing: %s\n", filename)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-4s %-3s %-10s %s\n", "Line", "Col", "Kind", "Value")
	fmt.Fprintln(w, rule)
	for _, tok := range tokens {
		value := strings.ReplaceAll(tok.Value, "\n", `\n`)
		if len(value) > 50 {
			value = value[:47] + "..."
		}
		fmt.Fprintf(w, "%-4d %-3d %-10s %s\n", tok.Line, tok.Column, tok.Kind, value)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Lexed %d tokens\n", len(tokens))
}

func astDump(cfg *ASTConfig, cc *cli.Context, args []string) error {
	filename, code, err := readFragmentFile(cc, cfg.AST, args)
	if err != nil {
		return err
	}
	f, err := frag.Compile(0, code)
	if err != nil {
		err = report(err)
		tokens, _ := parser.Tokens(filename, frag.Framing+code)
		printTokens(os.Stderr, filename, tokens)
		return err
	}
	ifs, exprs := count(f.Block)
	fmt.Fprintf(cc.Out, "Syntax tree: %s\n", filename)
	fmt.Fprintln(cc.Out, rule)
	fmt.Fprintf(cc.Out, "  Statements: %d (if: %d, expression: %d)\n", ifs+exprs, ifs, exprs)
	fmt.Fprintln(cc.Out)
	ast.Dump(cc.Out, f.Block)
	return nil
}

func count(block ast.Block) (ifs, exprs int) {
	for _, stmt := range block {
		switch s := stmt.(type) {
		case *ast.If:
			ifs++
			blocks := []ast.Block{s.Then}
			for _, ei := range s.ElseIfs {
				blocks = append(blocks, ei.Block)
			}
			if s.Else != nil {
				blocks = append(blocks, *s.Else)
			}
			for _, b := range blocks {
				i, e := count(b)
				ifs += i
				exprs += e
			}
		case *ast.ExpressionStatement:
			exprs++
		}
	}
	return ifs, exprs
}
