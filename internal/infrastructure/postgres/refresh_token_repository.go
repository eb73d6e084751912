package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wmartins/fornecedores-api/internal/domain/repository"
)

var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

// RefreshTokenRepo guarda hashes de refresh tokens em PostgreSQL.
type RefreshTokenRepo struct {
	q Querier
}

// NewRefreshTokenRepository constrói o adaptador de refresh tokens.
func NewRefreshTokenRepository(q Querier) *RefreshTokenRepo {
	return &RefreshTokenRepo{q: q}
}

// Store persiste o hash de um refresh token com a expiração.
func (r *RefreshTokenRepo) Store(ctx context.Context, usuarioID, tokenHash string, expiresAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO refresh_tokens (usuario_id, token_hash, expires_at) VALUES ($1, $2, $3)`,
		usuarioID, tokenHash, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// Consume apaga o hash (uso único) e devolve o dono se ainda válido.
func (r *RefreshTokenRepo) Consume(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	var usuarioID string
	err := r.q.QueryRow(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = $1 AND expires_at > $2 RETURNING usuario_id`,
		tokenHash, now,
	).Scan(&usuarioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return usuarioID, nil
}
