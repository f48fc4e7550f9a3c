package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
)

// DashboardHandler maneja las métricas del panel del tenant.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler inyectando el caso de uso.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Dashboard del tenant
// @Tags         dashboard
// @Produce      json
// @Param        company_key  path  string  true  "Slug de la empresa"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/{company_key}/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetPrincipal(c), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
