package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
)

// LocalTenant key de c.Locals con la empresa resuelta del path.
const LocalTenant = "tenant"

// tenantResolver es el contrato mínimo para resolver el slug del path. Lo
// implementa *usecase.CompanyUseCase.
type tenantResolver interface {
	GetByKey(ctx context.Context, companyKey string) (*entity.Company, error)
}

// TenantMiddleware resuelve :company_key a la empresa y verifica que el
// principal tenga acceso a ese tenant. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 404 → empresa inexistente o inactiva (indistinguibles entre sí).
//   - 403 → empresa válida pero el principal pertenece a otra.
func TenantMiddleware(resolver tenantResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyKey := c.Params("company_key")
		if companyKey == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "company_key es requerido"})
		}
		company, err := resolver.GetByKey(c.Context(), companyKey)
		if err != nil {
			return respondError(c, err)
		}
		if err := policy.ResolveTenantAccess(GetPrincipal(c), company.ID); err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalTenant, company)
		return c.Next()
	}
}

// GetTenant devuelve la empresa del contexto (después del middleware de tenant).
func GetTenant(c *fiber.Ctx) *entity.Company {
	v := c.Locals(LocalTenant)
	if v == nil {
		return nil
	}
	company, _ := v.(*entity.Company)
	return company
}
