package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"todo-api/internal/domain"
)

// PgTokenRepository guarda el conjunto de tokens activos de cada usuario.
type PgTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgTokenRepository(pool *pgxpool.Pool) *PgTokenRepository {
	return &PgTokenRepository{pool: pool}
}

func (r *PgTokenRepository) Add(ctx context.Context, userID string, token domain.Token) error {
	const query = `
		INSERT INTO user_tokens (user_id, access, token)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, token) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, userID, token.Access, token.Token)
	return err
}

func (r *PgTokenRepository) Has(ctx context.Context, userID string, token domain.Token) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_tokens
			WHERE user_id = $1 AND access = $2 AND token = $3
		)
	`
	var ok bool
	if err := r.pool.QueryRow(ctx, query, userID, token.Access, token.Token).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Remove es idempotente: borrar un token ausente no es error.
func (r *PgTokenRepository) Remove(ctx context.Context, userID, token string) error {
	const query = `DELETE FROM user_tokens WHERE user_id = $1 AND token = $2`
	_, err := r.pool.Exec(ctx, query, userID, token)
	return err
}
