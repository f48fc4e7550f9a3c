package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
	"github.com/jhoicas/Cobranza-api/pkg/jwt"
)

// Locals keys para los datos de autenticación en Fiber.
const (
	LocalClaims    = "claims"
	LocalPrincipal = "principal"
)

// principalResolver es el contrato mínimo que necesita el middleware para
// convertir claims en Principal. Lo implementa *auth.AuthUseCase; la interfaz
// evita el import circular.
type principalResolver interface {
	ResolvePrincipal(ctx context.Context, claims *jwt.Claims) (policy.Principal, error)
}

// AuthMiddleware valida el Bearer Token JWT, resuelve el Principal contra la
// base (el usuario debe existir y estar activo) y lo deja en c.Locals. Un
// token con firma inválida o expirado responde 401 siempre; una cuenta
// deshabilitada responde 403 aunque el token sea válido.
func AuthMiddleware(jwtSecret string, resolver principalResolver) fiber.Handler {
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
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		principal, err := resolver.ResolvePrincipal(c.Context(), claims)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalClaims, claims)
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) policy.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return policy.Principal{}
	}
	p, _ := v.(policy.Principal)
	return p
}
