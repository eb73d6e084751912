package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wmartins/fornecedores-api/internal/domain"
	"github.com/wmartins/fornecedores-api/internal/domain/entity"
	"github.com/wmartins/fornecedores-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação do porto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador de persistência para usuários. Passar pool ou tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id, email, password_hash, email_confirmado, access_failed_count, lockout_end, created_at, updated_at`

// Create persiste um novo usuário.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.EmailConfirmado,
		u.AccessFailedCount, u.LockoutEnd, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID. Devolve nil, nil quando não existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id))
}

// GetByEmail obtém um usuário por email. Devolve nil, nil quando não existe.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1 LIMIT 1`, email))
}

func (r *UsuarioRepo) scanOne(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmado,
		&u.AccessFailedCount, &u.LockoutEnd, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// UpdateLockout persiste o contador de falhas e o fim do bloqueio.
func (r *UsuarioRepo) UpdateLockout(ctx context.Context, id string, failedCount int, lockoutEnd *time.Time) error {
	query := `
		UPDATE usuarios SET access_failed_count = $2, lockout_end = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, failedCount, lockoutEnd)
	if err != nil {
		return fmt.Errorf("update lockout: %w", err)
	}
	return nil
}

// GetClaims lista os claims do usuário.
func (r *UsuarioRepo) GetClaims(ctx context.Context, usuarioID string) ([]entity.UsuarioClaim, error) {
	rows, err := r.q.Query(ctx,
		`SELECT tipo, valor FROM usuario_claims WHERE usuario_id = $1 ORDER BY tipo`, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()
	var claims []entity.UsuarioClaim
	for rows.Next() {
		var c entity.UsuarioClaim
		if err := rows.Scan(&c.Tipo, &c.Valor); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// GetRoles lista os roles do usuário.
func (r *UsuarioRepo) GetRoles(ctx context.Context, usuarioID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT role FROM usuario_roles WHERE usuario_id = $1 ORDER BY role`, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
