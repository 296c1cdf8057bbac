package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"frag/internal/frag"
	"frag/internal/store"
)

func put(cfg *PutConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Put.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected a fragment id and a file", cli.ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("could not read %q: %w", args[1], err)
	}
	code := stripOpenTag(string(content))
	if _, err := frag.Compile(id, code); err != nil {
		return report(err)
	}

	st, closeStore, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	w, ok := st.(store.Writer)
	if !ok {
		return fmt.Errorf("store %q is read-only", cfg.settings.Store)
	}
	if err := w.Put(cfg.ctx, id, code); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "stored fragment %d (%d bytes)\n", id, len(code))
	return nil
}
