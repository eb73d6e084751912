package dto

import "time"

// RegisterRequest entrada para registro: email vira username e email.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para renovar o par de tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ClaimResponse claim resolvido do usuário.
type ClaimResponse struct {
	Tipo  string `json:"tipo"`
	Valor string `json:"valor"`
}

// UsuarioTokenResponse identidade resolvida que acompanha o token.
type UsuarioTokenResponse struct {
	ID     string          `json:"id"`
	Email  string          `json:"email"`
	Claims []ClaimResponse `json:"claims"`
	Roles  []string        `json:"roles"`
}

// TokenResponse resposta de autenticação: par access/refresh com expirações
// e a identidade resolvida. Não é persistida no servidor.
type TokenResponse struct {
	AccessToken      string               `json:"access_token"`
	ExpiresAt        time.Time            `json:"expires_at"`
	RefreshToken     string               `json:"refresh_token"`
	RefreshExpiresAt time.Time            `json:"refresh_expires_at"`
	Usuario          UsuarioTokenResponse `json:"usuario"`
}
