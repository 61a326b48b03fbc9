package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository stores boards in SQLite, keyed by their board path.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database file at path, creating it and its directory when needed.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate handles migrate.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS boards (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS board_columns (
			board_path TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			PRIMARY KEY(board_path, position),
			FOREIGN KEY(board_path) REFERENCES boards(path) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS board_rows (
			board_path TEXT NOT NULL,
			column_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY(board_path, column_position, position),
			FOREIGN KEY(board_path, column_position) REFERENCES board_columns(board_path, position) ON DELETE CASCADE
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Load reads the board stored under path.
func (r *Repository) Load(ctx context.Context, path string) (domain.Board, error) {
	key := boardKey(path)
	board := domain.NewBoard("")
	row := r.db.QueryRowContext(ctx, `SELECT title FROM boards WHERE path = ?`, key)
	if err := row.Scan(&board.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, key, os.ErrNotExist)
		}
		return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, key, err)
	}

	cols, err := r.db.QueryContext(ctx, `
		SELECT title FROM board_columns
		WHERE board_path = ?
		ORDER BY position ASC
	`, key)
	if err != nil {
		return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, key, err)
	}
	for cols.Next() {
		var title string
		if err := cols.Scan(&title); err != nil {
			_ = cols.Close()
			return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrMalformedDocument, key, err)
		}
		board.AppendColumn(domain.NewColumn(title))
	}
	if err := cols.Err(); err != nil {
		_ = cols.Close()
		return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, key, err)
	}
	_ = cols.Close()

	rows, err := r.db.QueryContext(ctx, `
		SELECT column_position, title, description FROM board_rows
		WHERE board_path = ?
		ORDER BY column_position ASC, position ASC
	`, key)
	if err != nil {
		return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, key, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			colPos int
			item   domain.Row
		)
		if err := rows.Scan(&colPos, &item.Title, &item.Description); err != nil {
			return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrMalformedDocument, key, err)
		}
		col, err := board.Column(colPos)
		if err != nil {
			return domain.Board{}, fmt.Errorf("%w: %s: row references column %d", app.ErrMalformedDocument, key, colPos)
		}
		col.Rows = append(col.Rows, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, key, err)
	}
	return board, nil
}

// Save replaces the stored board under path.
func (r *Repository) Save(ctx context.Context, path string, board domain.Board) error {
	if err := r.write(ctx, boardKey(path), board, false); err != nil {
		return fmt.Errorf("%w: %s: %w", app.ErrFileWriteFailed, boardKey(path), err)
	}
	return nil
}

// Create stores board under path and refuses to replace an existing board.
func (r *Repository) Create(ctx context.Context, path string, board domain.Board) error {
	if err := r.write(ctx, boardKey(path), board, true); err != nil {
		return fmt.Errorf("%w: %s: %w", app.ErrFileCreateFailed, boardKey(path), err)
	}
	return nil
}

// ListBoards returns every stored board path in ascending order.
func (r *Repository) ListBoards(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT path FROM boards ORDER BY path ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// write replaces the whole board inside one transaction.
func (r *Repository) write(ctx context.Context, key string, board domain.Board, create bool) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stamp := ts(r.now())
	if create {
		var exists int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM boards WHERE path = ?`, key).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			err = app.ErrFileExists
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO boards(path, title, created_at, updated_at)
			VALUES (?, ?, ?, ?)
		`, key, board.Title, stamp, stamp)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO boards(path, title, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at
		`, key, board.Title, stamp, stamp)
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM board_rows WHERE board_path = ?`, key); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM board_columns WHERE board_path = ?`, key); err != nil {
		return err
	}
	for colPos, col := range board.Columns {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO board_columns(board_path, position, title)
			VALUES (?, ?, ?)
		`, key, colPos, col.Title); err != nil {
			return err
		}
		for rowPos, item := range col.Rows {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO board_rows(board_path, column_position, position, title, description)
				VALUES (?, ?, ?, ?, ?)
			`, key, colPos, rowPos, item.Title, item.Description); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// boardKey normalizes board paths into stable lookup keys.
func boardKey(path string) string {
	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
