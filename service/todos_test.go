package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/auth"
	"gotodo/config"
	"gotodo/forms"
	"gotodo/service"
	"gotodo/store"
)

func seed(t *testing.T, mem *store.Memory) (alice, bob *auth.Identity) {
	t.Helper()
	ctx := context.Background()

	a, err := mem.CreateUser(ctx, "alice1", "digest")
	require.NoError(t, err)
	b, err := mem.CreateUser(ctx, "bob12", "digest")
	require.NoError(t, err)

	return &auth.Identity{UserID: a.ID, Username: a.Username},
		&auth.Identity{UserID: b.ID, Username: b.Username}
}

func TestGatedListIsScopedToOwner(t *testing.T) {
	mem := store.NewMemory()
	todos := service.NewTodoService(mem, config.ModeGated)
	alice, bob := seed(t, mem)
	ctx := context.Background()

	_, err := todos.Create(ctx, forms.TodoForm{Title: "aliceの用事"}, alice.UserID)
	require.NoError(t, err)
	_, err = todos.Create(ctx, forms.TodoForm{Title: "bobの用事"}, bob.UserID)
	require.NoError(t, err)

	mine, err := todos.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "aliceの用事", mine[0].Title)
}

func TestOpenListIsGlobal(t *testing.T) {
	mem := store.NewMemory()
	todos := service.NewTodoService(mem, config.ModeOpen)
	alice, bob := seed(t, mem)
	ctx := context.Background()

	_, err := todos.Create(ctx, forms.TodoForm{Title: "aliceの用事"}, alice.UserID)
	require.NoError(t, err)
	_, err = todos.Create(ctx, forms.TodoForm{Title: "bobの用事"}, bob.UserID)
	require.NoError(t, err)

	all, err := todos.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateByNonOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("gated mode forbids it", func(t *testing.T) {
		mem := store.NewMemory()
		todos := service.NewTodoService(mem, config.ModeGated)
		alice, bob := seed(t, mem)

		created, err := todos.Create(ctx, forms.TodoForm{Title: "aliceの用事"}, alice.UserID)
		require.NoError(t, err)

		err = todos.Update(ctx, created.ID, forms.TodoForm{Title: "乗っ取り"}, bob)
		assert.ErrorIs(t, err, service.ErrForbidden)

		got, err := todos.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "aliceの用事", got.Title)
	})

	t.Run("open mode allows and persists it", func(t *testing.T) {
		mem := store.NewMemory()
		todos := service.NewTodoService(mem, config.ModeOpen)
		alice, bob := seed(t, mem)

		created, err := todos.Create(ctx, forms.TodoForm{Title: "aliceの用事"}, alice.UserID)
		require.NoError(t, err)

		err = todos.Update(ctx, created.ID, forms.TodoForm{Title: "新タイトル", Description: "新しい説明"}, bob)
		require.NoError(t, err)

		got, err := todos.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "新タイトル", got.Title)
		assert.Equal(t, "新しい説明", got.Description)
	})
}

func TestDeleteByNonOwner(t *testing.T) {
	mem := store.NewMemory()
	todos := service.NewTodoService(mem, config.ModeGated)
	alice, bob := seed(t, mem)
	ctx := context.Background()

	created, err := todos.Create(ctx, forms.TodoForm{Title: "aliceの用事"}, alice.UserID)
	require.NoError(t, err)

	assert.ErrorIs(t, todos.Delete(ctx, created.ID, bob), service.ErrForbidden)
	require.NoError(t, todos.Delete(ctx, created.ID, alice))
}

func TestMissingIDIsNotFoundInBothModes(t *testing.T) {
	ctx := context.Background()
	for _, mode := range []string{config.ModeGated, config.ModeOpen} {
		t.Run(mode, func(t *testing.T) {
			mem := store.NewMemory()
			todos := service.NewTodoService(mem, mode)
			alice, _ := seed(t, mem)

			assert.ErrorIs(t, todos.Delete(ctx, 999, alice), store.ErrNotFound)
			assert.ErrorIs(t, todos.Update(ctx, 999, forms.TodoForm{Title: "x"}, alice), store.ErrNotFound)
			_, err := todos.Get(ctx, 999)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	todos := service.NewTodoService(mem, config.ModeGated)
	alice, _ := seed(t, mem)
	ctx := context.Background()

	created, err := todos.Create(ctx, forms.TodoForm{Title: "t", Description: "d"}, alice.UserID)
	require.NoError(t, err)

	require.NoError(t, todos.Update(ctx, created.ID, forms.TodoForm{Title: "t2", Description: "d2"}, alice))

	listed, err := todos.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "t2", listed[0].Title)
	assert.Equal(t, "d2", listed[0].Description)
}

func TestCreateValidation(t *testing.T) {
	mem := store.NewMemory()
	todos := service.NewTodoService(mem, config.ModeGated)
	alice, _ := seed(t, mem)

	_, err := todos.Create(context.Background(), forms.TodoForm{Title: ""}, alice.UserID)
	var verr *forms.ValidationError
	assert.ErrorAs(t, err, &verr)
}
