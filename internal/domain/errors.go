package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrEmailAlreadyExists  = errors.New("o email já está registrado")
	ErrInvalidCredentials  = errors.New("usuário ou senha inválidos")
	ErrAccountLocked       = errors.New("usuário bloqueado")
	ErrInvalidRefreshToken = errors.New("refresh token inválido ou expirado")
	ErrNothingPersisted    = errors.New("houve um problema ao salvar o registro")
)
