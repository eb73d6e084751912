package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
	"github.com/wmartins/fornecedores-api/internal/domain"
	"github.com/wmartins/fornecedores-api/internal/domain/entity"
	"github.com/wmartins/fornecedores-api/internal/domain/repository"
	"github.com/wmartins/fornecedores-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret       string
	ExpMinutes   int
	RefreshHours int
	Issuer       string
}

// LockoutPolicy política de bloqueio por falhas consecutivas de login.
type LockoutPolicy struct {
	MaxFailedAttempts int
	LockoutMinutes    int
}

// AuthUseCase casos de uso de autenticação: registro, login e refresh.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	tokenRepo   repository.RefreshTokenRepository
	jwtCfg      JWTConfig
	lockout     LockoutPolicy
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, tokenRepo repository.RefreshTokenRepository, jwtCfg JWTConfig, lockout LockoutPolicy) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, tokenRepo: tokenRepo, jwtCfg: jwtCfg, lockout: lockout}
}

// Register cria um usuário com o email como username, email pré-confirmado e
// hash bcrypt da senha. Devolve ErrEmailAlreadyExists em duplicado. No sucesso
// responde com o mesmo formato de token do login.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:              uuid.New().String(),
		Email:           in.Email,
		PasswordHash:    string(hash),
		EmailConfirmado: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.usuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return uc.buildTokenResponse(ctx, u)
}

// Login verifica credenciais com rastreio de lockout. Três saídas disjuntas:
// conta bloqueada, credenciais inválidas (mensagem genérica, sem distinguir
// usuário desconhecido de senha errada) e sucesso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}
	now := time.Now()
	if u.Bloqueado(now) {
		return nil, domain.ErrAccountLocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		if err := uc.registrarFalha(ctx, u, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}
	if u.AccessFailedCount > 0 || u.LockoutEnd != nil {
		if err := uc.usuarioRepo.UpdateLockout(ctx, u.ID, 0, nil); err != nil {
			return nil, err
		}
	}
	return uc.buildTokenResponse(ctx, u)
}

// registrarFalha incrementa o contador e ativa o bloqueio ao atingir o limite.
func (uc *AuthUseCase) registrarFalha(ctx context.Context, u *entity.Usuario, now time.Time) error {
	count := u.AccessFailedCount + 1
	var lockoutEnd *time.Time
	if count >= uc.lockout.MaxFailedAttempts {
		end := now.Add(time.Duration(uc.lockout.LockoutMinutes) * time.Minute)
		lockoutEnd = &end
		count = 0
	}
	return uc.usuarioRepo.UpdateLockout(ctx, u.ID, count, lockoutEnd)
}

// Refresh consome um refresh token válido (uso único) e emite um novo par.
func (uc *AuthUseCase) Refresh(ctx context.Context, raw string) (*dto.TokenResponse, error) {
	usuarioID, err := uc.tokenRepo.Consume(ctx, jwt.HashRefreshRaw(raw), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if usuarioID == "" {
		return nil, domain.ErrInvalidRefreshToken
	}
	u, err := uc.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidRefreshToken
	}
	return uc.buildTokenResponse(ctx, u)
}

// buildTokenResponse pipeline de emissão: email → claims → roles → access token
// assinado → refresh token. Determinístico para o mesmo estado do usuário
// (só assinatura e timestamps variam). Falha aqui é fatal para a requisição.
func (uc *AuthUseCase) buildTokenResponse(ctx context.Context, u *entity.Usuario) (*dto.TokenResponse, error) {
	claims, err := uc.usuarioRepo.GetClaims(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	roles, err := uc.usuarioRepo.GetRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	jwtClaims := make([]jwt.Claim, 0, len(claims))
	respClaims := make([]dto.ClaimResponse, 0, len(claims))
	for _, c := range claims {
		jwtClaims = append(jwtClaims, jwt.Claim{Tipo: c.Tipo, Valor: c.Valor})
		respClaims = append(respClaims, dto.ClaimResponse{Tipo: c.Tipo, Valor: c.Valor})
	}
	if roles == nil {
		roles = []string{}
	}

	access, exp, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Email, jwtClaims, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.NewRefreshToken(uc.jwtCfg.RefreshHours)
	if err != nil {
		return nil, err
	}
	if err := uc.tokenRepo.Store(ctx, u.ID, jwt.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      access,
		ExpiresAt:        exp,
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp,
		Usuario: dto.UsuarioTokenResponse{
			ID:     u.ID,
			Email:  u.Email,
			Claims: respClaims,
			Roles:  roles,
		},
	}, nil
}
