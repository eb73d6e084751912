package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
	"github.com/wmartins/fornecedores-api/pkg/jwt"
)

// ClaimDeleteFornecedor claim exigido na rota de remoção (variante canônica).
const ClaimDeleteFornecedor = "DeleteFornecedor"

// LocalIdentity chave da identidade autenticada em c.Locals.
const LocalIdentity = "identity"

// AuthMiddleware valida o Bearer Token JWT e guarda a identidade em c.Locals.
// Com enabled=false vira pass-through: é a variante sem autorização, mesma
// tabela de rotas.
func AuthMiddleware(jwtSecret string, enabled bool) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		identity, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// RequireClaim autoriza somente identidades que carreguem o claim do tipo dado.
// Avaliado depois do AuthMiddleware; com enabled=false vira pass-through.
func RequireClaim(tipo string, enabled bool) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "autenticação requerida"})
		}
		if !identity.HasClaim(tipo) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "claim " + tipo + " requerido"})
		}
		return c.Next()
	}
}

// GetIdentity devolve a identidade do contexto (depois do middleware de auth).
func GetIdentity(c *fiber.Ctx) (jwt.Identity, bool) {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return jwt.Identity{}, false
	}
	id, ok := v.(jwt.Identity)
	return id, ok
}
