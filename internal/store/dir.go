package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"frag/internal/debug"
)

// Dir reads fragment <id> from <root>/<id>.php, <id>.php.zst or
// <id>.php.gz, in that order.
type Dir struct {
	root string
}

var dirSuffixes = []string{".php", ".php.zst", ".php.gz"}

func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("fragment directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fragment directory %s is not a directory", root)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Fetch(ctx context.Context, id uint64) (string, error) {
	base := filepath.Join(d.root, strconv.FormatUint(id, 10))
	for _, suffix := range dirSuffixes {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path := base + suffix
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("fetch fragment %d: %w", id, err)
		}
		code, err := readFragment(f, suffix)
		f.Close()
		if debug.Store() {
			debug.Logf("dir fetch %d from %s: err=%v\n", id, path, err)
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return code, nil
	}
	return "", ErrNotFound
}

func readFragment(r io.Reader, suffix string) (string, error) {
	switch suffix {
	case ".php.zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return "", err
		}
		defer dec.Close()
		r = dec
	case ".php.gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		r = gz
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Put writes the fragment uncompressed, replacing any compressed copy.
func (d *Dir) Put(_ context.Context, id uint64, code string) error {
	base := filepath.Join(d.root, strconv.FormatUint(id, 10))
	for _, suffix := range dirSuffixes[1:] {
		if err := os.Remove(base + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return os.WriteFile(base+".php", []byte(code), 0o644)
}
