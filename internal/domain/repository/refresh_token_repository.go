package repository

import (
	"context"
	"time"
)

// RefreshTokenRepository guarda hashes de refresh tokens (uso único).
type RefreshTokenRepository interface {
	Store(ctx context.Context, usuarioID, tokenHash string, expiresAt time.Time) error
	// Consume apaga o hash e devolve o usuário dono; "" quando o token não
	// existe ou já expirou.
	Consume(ctx context.Context, tokenHash string, now time.Time) (usuarioID string, err error)
}
