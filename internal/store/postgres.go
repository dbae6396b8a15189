package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akarpov91/todo-service/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// Postgres implements UserStore and ItemStore on a pgx connection pool.
// Ids are server-assigned via gen_random_uuid() column defaults.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to the given DSN and verifies it with a ping.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Postgres) Close() {
	s.pool.Close()
}

func (s *Postgres) InsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := s.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash, email, name)
         VALUES ($1, $2, $3, $4)
         RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.Email, u.Name,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("user %s: %w", u.Username, domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (s *Postgres) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, email, name, created_at
         FROM users
         WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("querying user %s: %w", username, err)
	}
	return &u, nil
}

func (s *Postgres) ListItems(ctx context.Context) ([]domain.TodoItem, error) {
	rows, err := s.pool.Query(
		ctx,
		`SELECT id, title, body, username, completed, created_at, updated_at
         FROM todo_items
         ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.TodoItem
	for rows.Next() {
		var item domain.TodoItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Body, &item.Username,
			&item.Completed, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Postgres) FindItemByID(ctx context.Context, id string) (*domain.TodoItem, error) {
	if !validID(id) {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	var item domain.TodoItem
	err := s.pool.QueryRow(
		ctx,
		`SELECT id, title, body, username, completed, created_at, updated_at
         FROM todo_items
         WHERE id = $1`,
		id,
	).Scan(
		&item.ID, &item.Title, &item.Body, &item.Username,
		&item.Completed, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("querying item %s: %w", id, err)
	}
	return &item, nil
}

func (s *Postgres) InsertItem(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	err := s.pool.QueryRow(
		ctx,
		`INSERT INTO todo_items (title, body, username, completed)
         VALUES ($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		item.Title, item.Body, item.Username, item.Completed,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.TodoItem{}, fmt.Errorf("inserting item: %w", err)
	}
	return item, nil
}

func (s *Postgres) UpdateItem(ctx context.Context, item *domain.TodoItem) error {
	if !validID(item.ID) {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrNotFound)
	}

	err := s.pool.QueryRow(
		ctx,
		`UPDATE todo_items
         SET title = $1, body = $2, completed = $3, updated_at = NOW()
         WHERE id = $4
         RETURNING updated_at`,
		item.Title, item.Body, item.Completed, item.ID,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("item %s: %w", item.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("updating item %s: %w", item.ID, err)
	}
	return nil
}

func (s *Postgres) DeleteItem(ctx context.Context, id string) error {
	if !validID(id) {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM todo_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// validID filters strings that cannot be UUID column values, so a malformed
// path id reads as absent instead of a driver encoding error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
