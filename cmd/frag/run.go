package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"frag/internal/config"
	"frag/internal/frag"
	"frag/internal/parser"
)

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one fragment id", cli.ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	envFile := cfg.settings.Env
	if cfg.Env != "" {
		envFile = cfg.Env
	}
	env, err := loadEnv(envFile)
	if err != nil {
		return err
	}
	st, closeStore, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	before, err := envYAML(env)
	if err != nil {
		return err
	}
	f, err := frag.Load(cfg.ctx, st, id)
	if err != nil {
		return report(err)
	}
	if err := f.Run(cfg.ctx, env); err != nil {
		return report(err)
	}
	after, err := envYAML(env)
	if err != nil {
		return err
	}
	if cfg.Diff {
		writeDiff(cc.Out, before, after)
		return nil
	}
	_, err = io.WriteString(cc.Out, after)
	return err
}

// errReported marks a failure whose diagnostic has already been printed.
var errReported = errors.New("fragment failed")

// report prints a fragment error as a diagnostic. The command exits 1 once
// the subcommand has returned and released its store.
func report(err error) error {
	fmt.Fprint(os.Stderr, frag.FormatError(err, ""))
	return errReported
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: fragment id %q is not a non-negative integer", cli.ErrUsage, s)
	}
	return id, nil
}

func loadEnv(path string) (*frag.Environment, error) {
	if path == "" {
		return frag.NewEnvironment(), nil
	}
	vars, err := config.LoadEnv(path)
	if err != nil {
		return nil, err
	}
	return frag.NewEnvironmentFrom(vars)
}

func envYAML(env *frag.Environment) (string, error) {
	snap := env.Snapshot()
	if len(snap) == 0 {
		return "{}\n", nil
	}
	d, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("could not encode environment: %w", err)
	}
	return string(d), nil
}

// stripOpenTag accepts fragment files written with or without the leading
// open tag; stores always hold the code without it.
func stripOpenTag(code string) string {
	trimmed := strings.TrimLeft(code, " \t\r\n")
	if !strings.HasPrefix(trimmed, parser.OpenTag) {
		return code
	}
	return strings.TrimPrefix(trimmed[len(parser.OpenTag):], "\n")
}
