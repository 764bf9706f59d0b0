// Package store persists users and todos. Both collections are exposed
// through interfaces so the handlers can run against Postgres in
// production and an in-memory implementation in tests.
package store

import (
	"context"
	"errors"

	"gotodo/models"
)

var (
	// ErrNotFound is returned when a primary-key lookup misses. Update
	// and delete of a missing id report it too, they never no-op.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when a username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
)

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	// EnsureUser creates the user if absent and returns the stored row
	// either way. Used to seed the guest identity in open mode.
	EnsureUser(ctx context.Context, username, passwordHash string) (models.User, error)
	UserByName(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type TodoStore interface {
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	TodoByID(ctx context.Context, id int64) (models.Todo, error)
	ListTodos(ctx context.Context) ([]models.Todo, error)
	ListTodosByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	// UpdateTodo changes title and description only; ownership never moves.
	UpdateTodo(ctx context.Context, id int64, title, description string) error
	DeleteTodo(ctx context.Context, id int64) error
}
