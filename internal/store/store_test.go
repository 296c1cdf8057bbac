package store

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `if (preg_match('/(\d+)/', $o->d, $m)) { $x = $m[1]; }`

// exerciseWriter checks the behavior shared by every writable store.
func exerciseWriter(t *testing.T, w Writer) {
	t.Helper()
	ctx := context.Background()

	_, err := w.Fetch(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Put(ctx, 1, sample))
	code, err := w.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sample, code)

	require.NoError(t, w.Put(ctx, 1, "$a = 1;"))
	code, err = w.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "$a = 1;", code)

	require.NoError(t, w.Put(ctx, 0, ""))
	code, err = w.Fetch(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "", code)

	_, err = w.Fetch(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseWriter(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()
	exerciseWriter(t, s)
}

func TestSQLiteLargeID(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	// the same bits as int64 -1
	big := uint64(math.MaxUint64)
	require.NoError(t, s.Put(ctx, 1, sample))
	assert.Error(t, s.Put(ctx, big, sample))
	_, err = s.Fetch(ctx, big)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.db.ExecContext(ctx, upsertCode, int64(-1), "$neg = 1;")
	require.NoError(t, err)
	_, err = s.Fetch(ctx, big)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragments.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), 42, sample))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	code, err := s.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, sample, code)
}

func TestDir(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	exerciseWriter(t, d)
}

func TestDirCompressed(t *testing.T) {
	root := t.TempDir()

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(t, err)
	_, err = zw.Write([]byte("$z = 'zstd';"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(root, "1.php.zst"), zbuf.Bytes(), 0o644))

	var gbuf bytes.Buffer
	gw := gzip.NewWriter(&gbuf)
	_, err = gw.Write([]byte("$g = 'gzip';"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(root, "2.php.gz"), gbuf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "3.php.gz"), []byte("not gzip"), 0o644))

	d, err := NewDir(root)
	require.NoError(t, err)
	ctx := context.Background()

	code, err := d.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "$z = 'zstd';", code)

	code, err = d.Fetch(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "$g = 'gzip';", code)

	_, err = d.Fetch(ctx, 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	// a plain file takes precedence and Put drops compressed copies
	require.NoError(t, d.Put(ctx, 2, "$p = 1;"))
	code, err = d.Fetch(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "$p = 1;", code)
	assert.NoFileExists(t, filepath.Join(root, "2.php.gz"))
}

func TestDirCanceled(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Fetch(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDirErrors(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = NewDir(file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestOpen(t *testing.T) {
	st, err := Open("memory:")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	st, err = Open("sqlite::memory:")
	require.NoError(t, err)
	require.IsType(t, &SQL{}, st)
	st.(*SQL).Close()

	st, err = Open("dir:" + t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &Dir{}, st)

	for _, dsn := range []string{"", "memory", "sqlite:", "dir:", "redis://x"} {
		_, err := Open(dsn)
		assert.Error(t, err, dsn)
	}
}
