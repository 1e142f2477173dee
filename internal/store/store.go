// Package store persists tasks for the reference Task Store server. It speaks SQLite
// (modernc.org/sqlite, pure Go) and MySQL through database/sql.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todo-cli/internal/model"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for ids that do not exist (including ids that are not integers).
var ErrNotFound = errors.New("todo not found")

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to dsn with the named driver and creates the todos table if needed. For sqlite the
// dsn is a file path (":memory:" works for tests).
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported driver %q (want %s or %s)", driver, DriverSQLite, DriverMySQL)
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("missing dsn")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// One connection: keeps ":memory:" a single database and serializes writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	var stmts []string
	switch s.driver {
	case DriverSQLite:
		stmts = []string{
			"PRAGMA busy_timeout=5000;",
			`CREATE TABLE IF NOT EXISTS todos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				text TEXT NOT NULL,
				completed BOOLEAN NOT NULL DEFAULT FALSE
			);`,
		}
	case DriverMySQL:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS todos (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    text TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`,
		}
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// List returns every task, newest first.
func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, completed FROM todos ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create stores text (trimmed) as an open task.
func (s *Store) Create(ctx context.Context, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, errors.New("empty text")
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO todos (text, completed) VALUES (?, ?)`, text, false)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{ID: model.TaskID(strconv.FormatInt(id, 10)), Text: text}, nil
}

// Toggle flips completed and returns the updated record.
func (s *Store) Toggle(ctx context.Context, id model.TaskID) (model.Task, error) {
	n, ok := parseID(id)
	if !ok {
		return model.Task{}, ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE todos SET completed = NOT completed WHERE id = ?`, n)
	if err != nil {
		return model.Task{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return model.Task{}, err
	} else if affected == 0 {
		return model.Task{}, ErrNotFound
	}

	t, err := scanTask(tx.QueryRowContext(ctx, `SELECT id, text, completed FROM todos WHERE id = ?`, n))
	if err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id model.TaskID) error {
	n, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, n)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (model.Task, error) {
	var (
		id        int64
		text      string
		completed bool
	)
	if err := r.Scan(&id, &text, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return model.Task{ID: model.TaskID(strconv.FormatInt(id, 10)), Text: text, Completed: completed}, nil
}

func parseID(id model.TaskID) (int64, bool) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
