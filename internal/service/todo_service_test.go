package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain"
)

func TestTodoServiceCreate(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo())

	todo, err := svc.Create(context.Background(), "owner-a", "  First test todo ")
	require.NoError(t, err)
	assert.Equal(t, "First test todo", todo.Text)
	assert.Equal(t, "owner-a", todo.OwnerID)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.True(t, domain.IsValidID(todo.ID))

	_, err = svc.Create(context.Background(), "owner-a", "")
	assert.True(t, domain.IsValidation(err), "got %v", err)
}

func TestTodoServiceOwnerScoping(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, "owner-a", "mine")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "owner-b", todo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Update(ctx, "owner-b", todo.ID, domain.TodoPatch{Completed: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Delete(ctx, "owner-b", todo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.List(ctx, "owner-b")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := svc.Get(ctx, "owner-a", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)
}

func TestTodoServiceMalformedIDIsNotFound(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "owner-a", "123abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Update(ctx, "owner-a", "123abc", domain.TodoPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Delete(ctx, "owner-a", "123abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(ctx, "owner-a", uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodoServiceUpdateCompletion(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo())
	fixed := time.UnixMilli(1700000000000)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	todo, err := svc.Create(ctx, "owner-a", "text")
	require.NoError(t, err)

	newText := "updated"
	done, err := svc.Update(ctx, "owner-a", todo.ID, domain.TodoPatch{Text: &newText, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, "updated", done.Text)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, int64(1700000000000), *done.CompletedAt)

	cleared, err := svc.Update(ctx, "owner-a", todo.ID, domain.TodoPatch{})
	require.NoError(t, err)
	assert.Equal(t, "updated", cleared.Text, "omitted text must be left intact")
	assert.False(t, cleared.Completed)
	assert.Nil(t, cleared.CompletedAt)
}

func TestTodoServiceUpdateRejectsBlankText(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, "owner-a", "text")
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, "owner-a", todo.ID, domain.TodoPatch{Text: &blank})
	assert.True(t, domain.IsValidation(err), "got %v", err)
}

func TestTodoServiceDeleteReturnsRemoved(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, "owner-a", "text")
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, "owner-a", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, removed.ID)

	_, err = svc.Get(ctx, "owner-a", todo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
