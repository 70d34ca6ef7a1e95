package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todo-api/internal/domain"
)

// TodoRepository define el contrato de persistencia para todos.
// Toda lectura y escritura queda acotada al owner.
type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	GetByOwner(ctx context.Context, ownerID, id string) (domain.Todo, error)
	UpdateByOwner(ctx context.Context, ownerID, id string, text *string, completed bool, completedAt *int64) (domain.Todo, error)
	DeleteByOwner(ctx context.Context, ownerID, id string) (domain.Todo, error)
}

type PgTodoRepository struct {
	pool *pgxpool.Pool
}

func NewPgTodoRepository(pool *pgxpool.Pool) *PgTodoRepository {
	return &PgTodoRepository{pool: pool}
}

const todoColumns = `id, text, completed, completed_at, owner_id, created_at`

func (r *PgTodoRepository) Create(ctx context.Context, todo domain.Todo) error {
	const query = `
		INSERT INTO todos (id, owner_id, text, completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		todo.ID,
		todo.OwnerID,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.CreatedAt,
	)
	return err
}

func (r *PgTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *PgTodoRepository) GetByOwner(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND owner_id = $2`
	t, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID))
	return t, translate(err)
}

func (r *PgTodoRepository) UpdateByOwner(ctx context.Context, ownerID, id string, text *string, completed bool, completedAt *int64) (domain.Todo, error) {
	query := `
		UPDATE todos
		SET text = COALESCE($3, text), completed = $4, completed_at = $5
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + todoColumns
	t, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID, text, completed, completedAt))
	return t, translate(err)
}

func (r *PgTodoRepository) DeleteByOwner(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	query := `DELETE FROM todos WHERE id = $1 AND owner_id = $2 RETURNING ` + todoColumns
	t, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID))
	return t, translate(err)
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(
		&t.ID,
		&t.Text,
		&t.Completed,
		&t.CompletedAt,
		&t.OwnerID,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.Todo{}, err
	}
	return t, nil
}
