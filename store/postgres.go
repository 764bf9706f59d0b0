package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gotodo/models"
)

const queryTimeout = 10 * time.Second

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// Postgres implements UserStore and TodoStore on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS todos (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(100) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	owner_id BIGINT NOT NULL REFERENCES users (id)
);`

// OpenPostgres connects a pool, pings it and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}
	config.MaxConnIdleTime = 20 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id;"
	user := models.User{Username: username, PasswordHash: passwordHash}
	if err := p.pool.QueryRow(ctx, stmt, username, passwordHash).Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}

func (p *Postgres) EnsureUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "INSERT INTO users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING;"
	if _, err := p.pool.Exec(ctx, stmt, username, passwordHash); err != nil {
		return models.User{}, fmt.Errorf("seeding user: %w", err)
	}
	return p.UserByName(ctx, username)
}

func (p *Postgres) UserByName(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, username, password_hash, is_admin FROM users WHERE username = $1;"
	return p.scanUser(p.pool.QueryRow(ctx, stmt, username))
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, username, password_hash, is_admin FROM users WHERE id = $1;"
	return p.scanUser(p.pool.QueryRow(ctx, stmt, id))
}

func (p *Postgres) scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scanning user row: %w", err)
	}
	return user, nil
}

func (p *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, username, password_hash, is_admin FROM users ORDER BY id;"
	rows, err := p.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading user rows: %w", err)
	}
	return users, nil
}

func (p *Postgres) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "INSERT INTO todos (title, description, owner_id) VALUES ($1, $2, $3) RETURNING id;"
	if err := p.pool.QueryRow(ctx, stmt, todo.Title, todo.Description, todo.OwnerID).Scan(&todo.ID); err != nil {
		return models.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}
	return todo, nil
}

func (p *Postgres) TodoByID(ctx context.Context, id int64) (models.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "SELECT id, title, description, owner_id FROM todos WHERE id = $1;"
	var todo models.Todo
	err := p.pool.QueryRow(ctx, stmt, id).Scan(&todo.ID, &todo.Title, &todo.Description, &todo.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}
	return todo, nil
}

func (p *Postgres) ListTodos(ctx context.Context) ([]models.Todo, error) {
	stmt := "SELECT id, title, description, owner_id FROM todos ORDER BY id;"
	return p.queryTodos(ctx, stmt)
}

func (p *Postgres) ListTodosByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	stmt := "SELECT id, title, description, owner_id FROM todos WHERE owner_id = $1 ORDER BY id;"
	return p.queryTodos(ctx, stmt, ownerID)
}

func (p *Postgres) queryTodos(ctx context.Context, stmt string, args ...any) ([]models.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := p.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.OwnerID); err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading todo rows: %w", err)
	}
	return todos, nil
}

func (p *Postgres) UpdateTodo(ctx context.Context, id int64, title, description string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := "UPDATE todos SET title = $1, description = $2 WHERE id = $3;"
	tag, err := p.pool.Exec(ctx, stmt, title, description, id)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteTodo(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1;", id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
