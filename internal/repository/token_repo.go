package repository

import (
	"context"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

type PostgresTokenRepository struct {
	db DB
}

func NewTokenRepository(db DB) core.TokenRepository {
	return &PostgresTokenRepository{db: db}
}

func (r *PostgresTokenRepository) Store(ctx context.Context, token *models.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO auth.refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt)
	return mapError(err)
}

func (r *PostgresTokenRepository) FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	return getOne[models.RefreshToken](ctx, r.db, `
		SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
		FROM auth.refresh_tokens WHERE token_hash = $1`, hash)
}

// Revoke marks a single token revoked. Returns ErrNotFound if it was already revoked.
func (r *PostgresTokenRepository) Revoke(ctx context.Context, id string) error {
	return execOne(ctx, r.db,
		`UPDATE auth.refresh_tokens SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`, id)
}

func (r *PostgresTokenRepository) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE auth.refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired removes tokens that can no longer be used.
func (r *PostgresTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM auth.refresh_tokens WHERE expires_at < NOW() OR revoked_at < NOW() - INTERVAL '7 days'`)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}
