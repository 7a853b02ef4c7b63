package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/teleprompt/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteRepository holds local storage and, for the sqlite backend, the
// slide mapping.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// OpenSQLite opens path, creating its directory, and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadScripts(ctx context.Context) (model.Raw, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT number, script, title FROM slides ORDER BY number ASC`)
	if err != nil {
		return nil, fmt.Errorf("query slides: %w", err)
	}
	defer rows.Close()

	out := make(model.Raw)
	for rows.Next() {
		var number int
		var rec model.Record
		if err := rows.Scan(&number, &rec.Script, &rec.Title); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		out[strconv.Itoa(number)] = rec
	}
	return out, rows.Err()
}

// SaveScripts replaces every stored slide with raw in one transaction.
func (r *SQLiteRepository) SaveScripts(ctx context.Context, raw model.Raw) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM slides`); err != nil {
		return fmt.Errorf("clear slides: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO slides (number, script, title, updated_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare slide insert: %w", err)
	}
	defer stmt.Close()

	stamp := mustTime(r.now())
	for key, rec := range raw {
		number, parseErr := model.ParseSlideNumber(key)
		if parseErr != nil {
			err = parseErr
			return err
		}
		if _, err = stmt.ExecContext(ctx, number, rec.Script, rec.Title, stamp); err != nil {
			return fmt.Errorf("insert slide %d: %w", number, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetItem(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetItem(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, mustTime(r.now()),
	)
	return err
}

func (r *SQLiteRepository) RemoveItem(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
