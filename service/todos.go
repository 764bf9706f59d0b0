// Package service applies the access policy over the todo store. The
// gated mode enforces the ownership invariant; the open mode deliberately
// does not.
package service

import (
	"context"
	"errors"

	"gotodo/auth"
	"gotodo/config"
	"gotodo/forms"
	"gotodo/models"
	"gotodo/store"
)

// ErrForbidden is returned when a requester touches a todo they do not
// own while ownership is enforced.
var ErrForbidden = errors.New("not the owner of this todo")

type TodoService struct {
	todos store.TodoStore
	mode  string
}

func NewTodoService(todos store.TodoStore, mode string) *TodoService {
	return &TodoService{todos: todos, mode: mode}
}

func (s *TodoService) enforcesOwnership() bool {
	return s.mode == config.ModeGated
}

// CanModify reports whether the identity may edit or delete the todo.
func (s *TodoService) CanModify(identity *auth.Identity, todo models.Todo) bool {
	if !s.enforcesOwnership() {
		return true
	}
	return identity != nil && identity.UserID == todo.OwnerID
}

// List returns the requester's todos in gated mode and every todo in
// open mode.
func (s *TodoService) List(ctx context.Context, identity *auth.Identity) ([]models.Todo, error) {
	if s.enforcesOwnership() {
		if identity == nil {
			return []models.Todo{}, nil
		}
		return s.todos.ListTodosByOwner(ctx, identity.UserID)
	}
	return s.todos.ListTodos(ctx)
}

func (s *TodoService) Get(ctx context.Context, id int64) (models.Todo, error) {
	return s.todos.TodoByID(ctx, id)
}

func (s *TodoService) Create(ctx context.Context, form forms.TodoForm, ownerID int64) (models.Todo, error) {
	if err := forms.Validate(form); err != nil {
		return models.Todo{}, err
	}
	return s.todos.CreateTodo(ctx, models.Todo{
		Title:       form.Title,
		Description: form.Description,
		OwnerID:     ownerID,
	})
}

// Update rewrites title and description. The ownership check runs before
// form validation, matching the order the edit page applies them.
func (s *TodoService) Update(ctx context.Context, id int64, form forms.TodoForm, requester *auth.Identity) error {
	todo, err := s.todos.TodoByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.CanModify(requester, todo) {
		return ErrForbidden
	}
	if err := forms.Validate(form); err != nil {
		return err
	}
	return s.todos.UpdateTodo(ctx, id, form.Title, form.Description)
}

func (s *TodoService) Delete(ctx context.Context, id int64, requester *auth.Identity) error {
	todo, err := s.todos.TodoByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.CanModify(requester, todo) {
		return ErrForbidden
	}
	return s.todos.DeleteTodo(ctx, todo.ID)
}
