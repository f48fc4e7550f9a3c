package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// InvoiceFilter filtros opcionales para listados de facturas. Scope es el
// filtro de filas del motor de políticas; Month/Year en cero = sin filtro.
type InvoiceFilter struct {
	Scope  Scope
	Month  int
	Year   int
	IsPaid *bool
	Limit  int
	Offset int
}

// CalendarDay resumen de un día del calendario de vencimientos.
type CalendarDay struct {
	Pending int `json:"pending"`
	Paid    int `json:"paid"`
	Total   int `json:"total"`
}

// InvoiceTotals agregados de facturas de una empresa para el dashboard.
type InvoiceTotals struct {
	TotalInvoices  int64
	TotalPending   decimal.Decimal // suma de montos sin pagar
	TotalReceived  decimal.Decimal // suma de montos pagados
	OverdueCount   int64           // sin pagar y vencidas
	OverdueAmount  decimal.Decimal
	UpcomingCount  int64 // sin pagar con vencimiento en los próximos 7 días
	UpcomingAmount decimal.Decimal
}

// InvoiceRepository define el puerto de persistencia para Invoice (DIP).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	// ListByDueDate devuelve las facturas con vencimiento exacto en date
	// dentro del scope (la hora de date se ignora).
	ListByDueDate(ctx context.Context, scope Scope, date time.Time) ([]*entity.Invoice, error)
	// Calendar agrupa por día del mes los vencimientos dentro del scope.
	Calendar(ctx context.Context, scope Scope, month, year int) (map[int]CalendarDay, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	Recent(ctx context.Context, companyID string, limit int) ([]*entity.Invoice, error)
	// Totals calcula los agregados del dashboard; today fija el corte de
	// vencidas y upcomingUntil el horizonte de próximas a vencer.
	Totals(ctx context.Context, companyID string, today, upcomingUntil time.Time) (*InvoiceTotals, error)
}
