package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wmartins/fornecedores-api/internal/application/auth"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
	"github.com/wmartins/fornecedores-api/internal/domain"
)

// AuthHandler maneja registro, login e refresh.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	validate *StructValidator
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, validate *StructValidator) *AuthHandler {
	return &AuthHandler{uc: uc, validate: validate}
}

// Register godoc
// @Summary      Registrar usuário
// @Tags         usuario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, confirm_password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ValidationProblem
// @Router       /registro [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if problem := h.validate.Validate(in); problem != nil {
		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		// Falhas do provedor de identidade saem como lista por campo, na mesma
		// forma dos erros de validação estrutural.
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationProblem{
				Code:   "EMAIL_EXISTS",
				Errors: map[string][]string{"email": {domain.ErrEmailAlreadyExists.Error()}},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         usuario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if problem := h.validate.Validate(in); problem != nil {
		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrAccountLocked) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "LOCKED", Message: domain.ErrAccountLocked.Error()})
		}
		// Mensagem genérica: não distinguir usuário desconhecido de senha errada.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: domain.ErrInvalidCredentials.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar par de tokens
// @Tags         usuario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if problem := h.validate.Validate(in); problem != nil {
		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}
	out, err := h.uc.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_REFRESH", Message: domain.ErrInvalidRefreshToken.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
