package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/akarpov91/todo-service/internal/domain"
)

// SQLite implements UserStore and ItemStore on an embedded SQLite database.
// It is the default backend when no Postgres DSN is configured and the one
// the tests run against.
type SQLite struct {
	db *sqlx.DB
}

// NewSQLite opens (or creates) the database at path, enables WAL mode and
// foreign keys, and applies any pending schema migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every connection to :memory: gets its own database, so in-memory use
	// must stay on a single connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLite) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

func (s *SQLite) InsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, email, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Email, u.Name, u.CreatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.User{}, fmt.Errorf("user %s: %w", u.Username, domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (s *SQLite) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u,
		"SELECT id, username, password_hash, email, name, created_at FROM users WHERE username = ?",
		username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("querying user %s: %w", username, err)
	}
	return &u, nil
}

func (s *SQLite) ListItems(ctx context.Context) ([]domain.TodoItem, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, title, body, username, completed, created_at, updated_at
		FROM todo_items
		ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.TodoItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLite) FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT id, title, body, username, completed, created_at, updated_at
		FROM todo_items
		WHERE id = ?`,
		id,
	)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (s *SQLite) InsertItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	item.ID = uuid.New().String()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todo_items (id, title, body, username, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Body, item.Username,
		boolToInt(item.Completed), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return domain.TodoItem{}, fmt.Errorf("inserting item: %w", err)
	}
	return item, nil
}

func (s *SQLite) UpdateItem(ctx context.Context, item *domain.TodoItem) error {
	item.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todo_items
		SET title = ?, body = ?, completed = ?, updated_at = ?
		WHERE id = ?`,
		item.Title, item.Body, boolToInt(item.Completed), item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item %s: %w", item.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLite) DeleteItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todo_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// scanItem scans a todo_items row, converting the stored completed integer.
func scanItem(row interface{ Scan(dest ...interface{}) error }) (domain.TodoItem, error) {
	var (
		item      domain.TodoItem
		completed int
	)
	err := row.Scan(
		&item.ID, &item.Title, &item.Body, &item.Username,
		&completed, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TodoItem{}, err
		}
		return domain.TodoItem{}, fmt.Errorf("scanning item row: %w", err)
	}
	item.Completed = completed != 0
	return item, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isConstraintViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
