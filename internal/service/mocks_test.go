package service

import (
	"context"
	"sync"

	"todo-api/internal/domain"
)

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	err          error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.User{}, m.err
	}
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.usersByEmail[email]
	err := m.err
	m.mu.Unlock()
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

type mockTodoRepo struct {
	mu    sync.Mutex
	items map[string]domain.Todo
	err   error
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{items: make(map[string]domain.Todo)}
}

func (m *mockTodoRepo) Create(_ context.Context, todo domain.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[todo.ID] = todo
	return nil
}

func (m *mockTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Todo, 0)
	for _, t := range m.items {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTodoRepo) GetByOwner(_ context.Context, ownerID, id string) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockTodoRepo) UpdateByOwner(_ context.Context, ownerID, id string, text *string, completed bool, completedAt *int64) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, domain.ErrNotFound
	}
	if text != nil {
		t.Text = *text
	}
	t.Completed = completed
	t.CompletedAt = completedAt
	m.items[id] = t
	return t, nil
}

func (m *mockTodoRepo) DeleteByOwner(_ context.Context, ownerID, id string) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, domain.ErrNotFound
	}
	delete(m.items, id)
	return t, nil
}

type mockLoginLimiter struct {
	allow bool
	calls int
}

func (m *mockLoginLimiter) Allow(_ context.Context, _ string) bool {
	m.calls++
	return m.allow
}
