package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/models"
	"gotodo/store"
)

func TestCreateUserUniqueness(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	alice, err := mem.CreateUser(ctx, "alice1", "digest-a")
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)

	_, err = mem.CreateUser(ctx, "alice1", "digest-b")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	got, err := mem.UserByName(ctx, "alice1")
	require.NoError(t, err)
	assert.Equal(t, "digest-a", got.PasswordHash)
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	first, err := mem.EnsureUser(ctx, "guest", "")
	require.NoError(t, err)

	second, err := mem.EnsureUser(ctx, "guest", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	users, err := mem.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserLookupMiss(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	_, err := mem.UserByName(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = mem.UserByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTodoRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	owner, err := mem.CreateUser(ctx, "alice1", "digest")
	require.NoError(t, err)

	created, err := mem.CreateTodo(ctx, models.Todo{Title: "牛乳を買う", Description: "帰り道で", OwnerID: owner.ID})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	listed, err := mem.ListTodosByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "牛乳を買う", listed[0].Title)
	assert.Equal(t, "帰り道で", listed[0].Description)

	require.NoError(t, mem.UpdateTodo(ctx, created.ID, "豆乳を買う", "スーパーで"))

	listed, err = mem.ListTodosByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "豆乳を買う", listed[0].Title)
	assert.Equal(t, "スーパーで", listed[0].Description)

	require.NoError(t, mem.DeleteTodo(ctx, created.ID))
	_, err = mem.TodoByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateAndDeleteMissingTodo(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, mem.UpdateTodo(ctx, 99, "x", ""), store.ErrNotFound)
	assert.ErrorIs(t, mem.DeleteTodo(ctx, 99), store.ErrNotFound)
}

func TestListTodosScopes(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	alice, err := mem.CreateUser(ctx, "alice1", "digest")
	require.NoError(t, err)
	bob, err := mem.CreateUser(ctx, "bob12", "digest")
	require.NoError(t, err)

	_, err = mem.CreateTodo(ctx, models.Todo{Title: "aliceの用事", OwnerID: alice.ID})
	require.NoError(t, err)
	_, err = mem.CreateTodo(ctx, models.Todo{Title: "bobの用事", OwnerID: bob.ID})
	require.NoError(t, err)

	all, err := mem.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := mem.ListTodosByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "aliceの用事", mine[0].Title)
}
