package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueDateLayout formato de fecha de vencimiento en la API (solo fecha).
const DueDateLayout = "2006-01-02"

// CreateInvoiceRequest body para crear una factura. DueDate en formato
// YYYY-MM-DD. CompanyID solo aplica en la ruta global; en rutas tenant manda
// la empresa de la URL.
type CreateInvoiceRequest struct {
	CompanyID   string          `json:"company_id,omitempty"`
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DueDate     string          `json:"due_date" validate:"required"`
	IsPaid      *bool           `json:"is_paid,omitempty"`
	Notes       string          `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateInvoiceRequest patch explícito para actualizar una factura: solo los
// campos presentes se aplican. Cambiar IsPaid por esta vía también ajusta
// PaidAt de forma atómica, igual que el toggle.
type UpdateInvoiceRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"due_date"`
	IsPaid      *bool            `json:"is_paid"`
	Notes       *string          `json:"notes" validate:"omitempty,max=1000"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"` // YYYY-MM-DD
	FileURL     string          `json:"file_url,omitempty"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *time.Time      `json:"paid_at"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvoiceListResponse lista de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ListInvoicesRequest filtros del listado global de facturas.
type ListInvoicesRequest struct {
	CompanyID string `query:"company_id"`
	Month     int    `query:"month" validate:"omitempty,min=1,max=12"`
	Year      int    `query:"year" validate:"omitempty,min=2000"`
	IsPaid    *bool  `query:"is_paid"`
	PageRequest
}

// CalendarResponse calendario de vencimientos del mes: días con conteo de
// facturas pendientes y pagadas.
type CalendarResponse struct {
	Days  map[int]CalendarDayResponse `json:"days"`
	Month int                         `json:"month"`
	Year  int                         `json:"year"`
}

// CalendarDayResponse resumen de un día del calendario.
type CalendarDayResponse struct {
	Pending int `json:"pending"`
	Paid    int `json:"paid"`
	Total   int `json:"total"`
}

// UploadFileResponse resultado de adjuntar un comprobante a una factura.
type UploadFileResponse struct {
	OK      bool   `json:"ok"`
	FileURL string `json:"file_url"`
}
