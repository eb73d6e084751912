package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
	"github.com/wmartins/fornecedores-api/internal/application/usecase"
	"github.com/wmartins/fornecedores-api/internal/domain"
)

// FornecedorHandler maneja as rotas CRUD de Fornecedor.
type FornecedorHandler struct {
	uc       *usecase.FornecedorUseCase
	validate *StructValidator
}

// NewFornecedorHandler constrói o handler.
func NewFornecedorHandler(uc *usecase.FornecedorUseCase, validate *StructValidator) *FornecedorHandler {
	return &FornecedorHandler{uc: uc, validate: validate}
}

// fornecedorNotFound resposta 404 única para id desconhecido ou malformado.
func fornecedorNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fornecedor não encontrado"})
}

// parseID valida o :id da rota. A coluna é UUID; um id que não parseia nunca
// corresponde a uma linha, então cai na mesma taxonomia de 404 sem ir ao banco.
func parseID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// List godoc
// @Summary      Listar fornecedores
// @Tags         fornecedor
// @Produce      json
// @Success      200  {array}  dto.FornecedorResponse
// @Router       /fornecedor [get]
func (h *FornecedorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter fornecedor por ID
// @Tags         fornecedor
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do fornecedor"
// @Success      200  {object}  dto.FornecedorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /fornecedor/{id} [get]
func (h *FornecedorHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return fornecedorNotFound(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return fornecedorNotFound(c)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar fornecedor
// @Tags         fornecedor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FornecedorRequest  true  "Dados do fornecedor"
// @Success      201   {object}  dto.FornecedorResponse
// @Failure      400   {object}  dto.ValidationProblem
// @Router       /fornecedor [post]
func (h *FornecedorHandler) Create(c *fiber.Ctx) error {
	var in dto.FornecedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if problem := h.validate.Validate(in); problem != nil {
		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNothingPersisted) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SAVE_FAILED", Message: domain.ErrNothingPersisted.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Location("/fornecedor/" + out.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Substituir fornecedor
// @Tags         fornecedor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do fornecedor"
// @Param        body  body  dto.FornecedorRequest  true  "Entidade completa (sem merge)"
// @Success      204
// @Failure      400   {object}  dto.ValidationProblem
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /fornecedor/{id} [put]
func (h *FornecedorHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return fornecedorNotFound(c)
	}
	var in dto.FornecedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	// O ID da rota manda; o do corpo não participa da validação de update.
	in.ID = ""
	if problem := h.validate.Validate(in); problem != nil {
		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}
	err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fornecedorNotFound(c)
		}
		if errors.Is(err, domain.ErrNothingPersisted) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SAVE_FAILED", Message: "houve um problema ao alterar o registro"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Remover fornecedor
// @Tags         fornecedor
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do fornecedor"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /fornecedor/{id} [delete]
func (h *FornecedorHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return fornecedorNotFound(c)
	}
	err := h.uc.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fornecedorNotFound(c)
		}
		if errors.Is(err, domain.ErrNothingPersisted) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SAVE_FAILED", Message: "houve um problema ao remover o registro"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
