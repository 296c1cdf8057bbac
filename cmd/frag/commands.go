package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "frag").
		WithSynopsis("frag [opts] command [opts]").
		WithDescription("frag runs stored code fragments against a variable environment.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fragMain(cfg, cc, args)
		}).
		WithSubs(
			RunCommand(cfg),
			PutCommand(cfg),
			LexCommand(cfg),
			ASTCommand(cfg))
}

func fragMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if err := cfg.resolve(); err != nil {
		return err
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	switch {
	case errors.Is(err, errReported):
		os.Exit(1)
	case errors.Is(err, cli.ErrUsage):
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Run, "run").
		WithAliases("r").
		WithSynopsis("run [-env file.yaml] [-diff] <id>").
		WithDescription("run a stored fragment and print the resulting environment as yaml").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func PutCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PutConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Put, "put").
		WithSynopsis("put <id> <file>").
		WithDescription("store fragment code under an id").
		WithRun(func(cc *cli.Context, args []string) error {
			return put(cfg, cc, args)
		})
}

func LexCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LexConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Lex, "lex").
		WithSynopsis("lex <file>").
		WithDescription("print the tokens of a fragment file").
		WithRun(func(cc *cli.Context, args []string) error {
			return lex(cfg, cc, args)
		})
}

func ASTCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ASTConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.AST, "ast").
		WithSynopsis("ast <file>").
		WithDescription("print the syntax tree of a fragment file").
		WithRun(func(cc *cli.Context, args []string) error {
			return astDump(cfg, cc, args)
		})
}
