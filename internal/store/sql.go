package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"frag/internal/debug"
)

const (
	createTable = "CREATE TABLE IF NOT EXISTS `code_fragments` (`id` INTEGER PRIMARY KEY, `php` TEXT NOT NULL)"
	selectCode  = "SELECT `php` FROM `code_fragments` WHERE `id` = ?"
	upsertCode  = "INSERT INTO `code_fragments` (`id`, `php`) VALUES (?, ?) " +
		"ON CONFLICT(`id`) DO UPDATE SET `php` = excluded.`php`"
)

// SQL reads fragments from a code_fragments(id, php) table.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// OpenSQLite opens (creating if needed) a sqlite database holding the
// code_fragments table. path may be ":memory:".
func OpenSQLite(path string) (*SQL, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create code_fragments in %s: %w", path, err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Fetch(ctx context.Context, id uint64) (string, error) {
	if id > math.MaxInt64 {
		return "", ErrNotFound
	}
	var code string
	err := s.db.QueryRowContext(ctx, selectCode, int64(id)).Scan(&code)
	if debug.Store() {
		debug.Logf("sql fetch %d: err=%v\n", id, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("fetch fragment %d: %w", id, err)
	}
	return code, nil
}

func (s *SQL) Put(ctx context.Context, id uint64, code string) error {
	if id > math.MaxInt64 {
		return fmt.Errorf("store fragment %d: id does not fit a sqlite integer key", id)
	}
	if _, err := s.db.ExecContext(ctx, upsertCode, int64(id), code); err != nil {
		return fmt.Errorf("store fragment %d: %w", id, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
