package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wmartins/fornecedores-api/internal/application/auth"
	"github.com/wmartins/fornecedores-api/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	FornecedorUC *usecase.FornecedorUseCase
	JWTSecret    string
	AuthEnabled  bool
}

// Router registra as rotas da API. A tabela é a mesma com ou sem autorização;
// AuthEnabled=false troca os gates por pass-through.
func Router(app *fiber.App, deps RouterDeps) {
	validate := NewStructValidator()

	// Auth (público nas duas variantes)
	authHandler := NewAuthHandler(deps.AuthUC, validate)
	app.Post("/registro", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Post("/refresh", authHandler.Refresh)

	fornecedorHandler := NewFornecedorHandler(deps.FornecedorUC, validate)

	// Listagem é anônima; registrada antes do gate para não passar por ele.
	app.Get("/fornecedor", fornecedorHandler.List)

	// Demais rotas de fornecedor exigem Bearer Token (variante canônica).
	protected := app.Group("/fornecedor", AuthMiddleware(deps.JWTSecret, deps.AuthEnabled))
	protected.Get("/:id", fornecedorHandler.GetByID)
	protected.Post("/", fornecedorHandler.Create)
	protected.Put("/:id", fornecedorHandler.Update)
	protected.Delete("/:id", RequireClaim(ClaimDeleteFornecedor, deps.AuthEnabled), fornecedorHandler.Delete)
}
