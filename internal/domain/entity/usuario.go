package entity

import "time"

// Usuario representa uma identidade do sistema. Username e Email são sempre o
// mesmo valor; o hash bcrypt nunca circula em claro depois de persistido.
type Usuario struct {
	ID                string
	Email             string
	PasswordHash      string
	EmailConfirmado   bool
	AccessFailedCount int        // falhas consecutivas de login
	LockoutEnd        *time.Time // nil = sem bloqueio ativo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Bloqueado informa se o usuário está em lockout no instante dado.
func (u *Usuario) Bloqueado(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

// UsuarioClaim claim nomeado atribuído a um usuário (ex.: DeleteFornecedor).
type UsuarioClaim struct {
	Tipo  string
	Valor string
}
