package store

import (
	"context"
	"sort"
	"sync"

	"gotodo/models"
)

// Memory is a mutex-guarded in-memory implementation of UserStore and
// TodoStore, used by tests.
type Memory struct {
	mu         sync.Mutex
	users      map[int64]models.User
	userIDs    map[string]int64
	todos      map[int64]models.Todo
	nextUserID int64
	nextTodoID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[int64]models.User),
		userIDs: make(map[string]int64),
		todos:   make(map[int64]models.Todo),
	}
}

func (m *Memory) CreateUser(_ context.Context, username, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.userIDs[username]; taken {
		return models.User{}, ErrUsernameTaken
	}

	m.nextUserID++
	user := models.User{ID: m.nextUserID, Username: username, PasswordHash: passwordHash}
	m.users[user.ID] = user
	m.userIDs[username] = user.ID
	return user, nil
}

func (m *Memory) EnsureUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	m.mu.Lock()
	if id, ok := m.userIDs[username]; ok {
		user := m.users[id]
		m.mu.Unlock()
		return user, nil
	}
	m.mu.Unlock()
	return m.CreateUser(ctx, username, passwordHash)
}

func (m *Memory) UserByName(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.userIDs[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *Memory) CreateTodo(_ context.Context, todo models.Todo) (models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTodoID++
	todo.ID = m.nextTodoID
	m.todos[todo.ID] = todo
	return todo, nil
}

func (m *Memory) TodoByID(_ context.Context, id int64) (models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return models.Todo{}, ErrNotFound
	}
	return todo, nil
}

func (m *Memory) ListTodos(_ context.Context) ([]models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todos := make([]models.Todo, 0, len(m.todos))
	for _, todo := range m.todos {
		todos = append(todos, todo)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (m *Memory) ListTodosByOwner(_ context.Context, ownerID int64) ([]models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todos := []models.Todo{}
	for _, todo := range m.todos {
		if todo.OwnerID == ownerID {
			todos = append(todos, todo)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (m *Memory) UpdateTodo(_ context.Context, id int64, title, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return ErrNotFound
	}
	todo.Title = title
	todo.Description = description
	m.todos[id] = todo
	return nil
}

func (m *Memory) DeleteTodo(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.todos[id]; !ok {
		return ErrNotFound
	}
	delete(m.todos, id)
	return nil
}
