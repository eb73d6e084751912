package repository

import (
	"context"
	"time"

	"github.com/wmartins/fornecedores-api/internal/domain/entity"
)

// UsuarioRepository define o porto de persistência para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	// GetByEmail devolve nil, nil quando o email não existe.
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	// UpdateLockout persiste o contador de falhas e o fim do bloqueio.
	UpdateLockout(ctx context.Context, id string, failedCount int, lockoutEnd *time.Time) error
	GetClaims(ctx context.Context, usuarioID string) ([]entity.UsuarioClaim, error)
	GetRoles(ctx context.Context, usuarioID string) ([]string, error)
}
