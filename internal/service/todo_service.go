package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// TodoService aplica las reglas de todos acotadas al owner.
type TodoService struct {
	todos repository.TodoRepository
	now   func() time.Time
}

func NewTodoService(todos repository.TodoRepository) *TodoService {
	return &TodoService{
		todos: todos,
		now:   time.Now,
	}
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

// Get devuelve ErrNotFound tanto para ids mal formados como para todos ajenos.
func (s *TodoService) Get(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	if !domain.IsValidID(id) {
		return domain.Todo{}, domain.ErrNotFound
	}
	return s.todos.GetByOwner(ctx, ownerID, id)
}

func (s *TodoService) Create(ctx context.Context, ownerID, text string) (domain.Todo, error) {
	if err := domain.ValidateTodoText(text); err != nil {
		return domain.Todo{}, err
	}
	todo := domain.Todo{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		OwnerID:   ownerID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// Update aplica solo text y completed. Un patch sin completed=true
// limpia la completitud.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch domain.TodoPatch) (domain.Todo, error) {
	if !domain.IsValidID(id) {
		return domain.Todo{}, domain.ErrNotFound
	}
	if patch.Text != nil {
		if err := domain.ValidateTodoText(*patch.Text); err != nil {
			return domain.Todo{}, err
		}
		trimmed := strings.TrimSpace(*patch.Text)
		patch.Text = &trimmed
	}
	completed, completedAt := patch.ApplyCompletion(s.now())
	return s.todos.UpdateByOwner(ctx, ownerID, id, patch.Text, completed, completedAt)
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	if !domain.IsValidID(id) {
		return domain.Todo{}, domain.ErrNotFound
	}
	return s.todos.DeleteByOwner(ctx, ownerID, id)
}
