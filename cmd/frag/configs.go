package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"frag/internal/config"
	"frag/internal/debug"
	"frag/internal/store"
)

type MainConfig struct {
	Config string `cli:"name=config desc='configuration file (yaml)'"`
	Store  string `cli:"name=store desc='fragment store: memory:, sqlite:<path> or dir:<path>'"`
	Color  string `cli:"name=color desc='color diagnostics: auto, always or never'"`
	Debug  bool   `cli:"name=debug desc='log parsing, evaluation and store lookups to stderr'"`

	ctx      context.Context
	settings *config.Config

	Main *cli.Command
}

// resolve merges the configuration file with command-line flags and applies
// the global settings. It runs once, before any subcommand.
func (cfg *MainConfig) resolve() error {
	settings := config.Default()
	if cfg.Config != "" {
		var err error
		if settings, err = config.Load(cfg.Config); err != nil {
			return err
		}
	}
	if cfg.Store != "" {
		settings.Store = cfg.Store
	}
	if cfg.Color != "" {
		settings.Color = cfg.Color
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	switch settings.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		fd := os.Stderr.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
	if cfg.Debug {
		debug.EnableAll()
	}
	cfg.settings = settings
	return nil
}

func (cfg *MainConfig) openStore() (store.Store, func(), error) {
	st, err := store.Open(cfg.settings.Store)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if c, ok := st.(io.Closer); ok {
		closeFn = func() { c.Close() }
	}
	return st, closeFn, nil
}

type RunConfig struct {
	*MainConfig
	Env  string `cli:"name=env desc='yaml file seeding the environment'"`
	Diff bool   `cli:"name=diff desc='print a diff of the environment instead of the result'"`

	Run *cli.Command
}

type PutConfig struct {
	*MainConfig

	Put *cli.Command
}

type LexConfig struct {
	*MainConfig

	Lex *cli.Command
}

type ASTConfig struct {
	*MainConfig

	AST *cli.Command
}
