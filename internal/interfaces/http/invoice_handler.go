package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP para el recurso Invoice. Las
// rutas globales operan sin tenant en la URL; las de tenant reciben la
// empresa resuelta por TenantMiddleware.
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler inyectando el caso de uso.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// tenant devuelve la empresa del contexto, o nil en rutas globales.
func (h *InvoiceHandler) tenant(c *fiber.Ctx) *entity.Company {
	return GetTenant(c)
}

// List godoc
// @Summary      Listar facturas visibles
// @Tags         invoices
// @Produce      json
// @Param        company_id  query  string  false  "Filtrar por empresa (solo superadmin)"
// @Param        month       query  int     false  "Mes de vencimiento (1-12)"
// @Param        year        query  int     false  "Año de vencimiento"
// @Param        is_paid     query  bool    false  "Filtrar por estado de pago"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/v1/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	in := dto.ListInvoicesRequest{
		CompanyID: c.Query("company_id"),
		Month:     c.QueryInt("month", 0),
		Year:      c.QueryInt("year", 0),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
	}
	if v := c.Query("is_paid"); v != "" {
		b := v == "true" || v == "1"
		in.IsPaid = &b
	}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), h.tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get obtiene una factura por ID.
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetPrincipal(c), h.tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura (admin o superadmin)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Datos de la factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Description == "" || in.DueDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "description y due_date son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), h.tenant(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza una factura campo por campo.
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), h.tenant(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una factura.
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), h.tenant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TogglePaid godoc
// @Summary      Alternar estado de pago
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/invoices/{id}/toggle-paid [patch]
func (h *InvoiceHandler) TogglePaid(c *fiber.Ctx) error {
	out, err := h.uc.TogglePaid(c.Context(), GetPrincipal(c), h.tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calendar devuelve el calendario de vencimientos del mes pedido; por defecto
// el mes en curso.
func (h *InvoiceHandler) Calendar(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	out, err := h.uc.Calendar(c.Context(), GetPrincipal(c), h.tenant(c), c.Query("company_id"), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByDueDate lista las facturas que vencen en la fecha del path (YYYY-MM-DD).
func (h *InvoiceHandler) ByDueDate(c *fiber.Ctx) error {
	out, err := h.uc.ByDueDate(c.Context(), GetPrincipal(c), h.tenant(c), c.Query("company_id"), c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadFile adjunta el comprobante PDF como multipart/form-data (campo "file").
func (h *InvoiceHandler) UploadFile(c *fiber.Ctx) error {
	data, contentType, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "archivo requerido en el campo 'file'"})
	}
	out, err := h.uc.AttachFile(c.Context(), GetPrincipal(c), h.tenant(c), c.Params("id"), data, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF descarga la representación gráfica (PDF) de la factura.
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadPDF(c.Context(), GetPrincipal(c), h.tenant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
