package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todo-api/internal/domain"
	"todo-api/internal/service"
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

type testEnv struct {
	router *gin.Engine
	users  *mockUserRepo
	todos  *mockTodoRepo
	tokens service.TokenStore
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMockUserRepo()
	todos := newMockTodoRepo()
	tokens := service.NewMemoryTokenStore()
	logger := zap.NewNop()

	userSvc := service.NewUserService(logger, users, tokens, service.NewJWTService("secret", 0), service.NewBcryptHasher(bcrypt.MinCost), nil)
	todoSvc := service.NewTodoService(todos)

	router := NewRouter(RouterDeps{
		Logger: logger,
		Auth:   userSvc,
		Users:  NewUserHandler(logger, userSvc),
		Todos:  NewTodoHandler(logger, todoSvc),
		Health: NewHealthHandler(logger, nil),
	})
	return &testEnv{router: router, users: users, todos: todos, tokens: tokens}
}

func performRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(AuthHeader, token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// register crea un usuario y devuelve su token x-auth.
func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()
	rec := performRequest(e.router, http.MethodPost, "/users", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	token := rec.Header().Get(AuthHeader)
	if token == "" {
		t.Fatalf("register %s: missing %s header", email, AuthHeader)
	}
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
