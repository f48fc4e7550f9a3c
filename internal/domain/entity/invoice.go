package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura por cobrar de una empresa.
//
// Invariante de pago: PaidAt es no-nil si y solo si IsPaid es true; ambos
// campos cambian juntos en la misma operación (ver MarkPaid/MarkUnpaid).
type Invoice struct {
	ID          string
	CompanyID   string // empresa dueña, obligatorio
	Description string
	Amount      decimal.Decimal // monto no negativo
	DueDate     time.Time       // fecha de vencimiento (solo fecha, sin hora)
	FileURL     string          // comprobante PDF adjunto, vacío = sin archivo
	IsPaid      bool
	PaidAt      *time.Time
	Notes       string
	CreatedBy   string // User.ID de quien creó la factura
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkPaid marca la factura como pagada en el instante dado.
func (i *Invoice) MarkPaid(now time.Time) {
	i.IsPaid = true
	i.PaidAt = &now
}

// MarkUnpaid revierte el pago y limpia PaidAt.
func (i *Invoice) MarkUnpaid() {
	i.IsPaid = false
	i.PaidAt = nil
}

// TogglePaid alterna el estado de pago manteniendo el par IsPaid/PaidAt consistente.
func (i *Invoice) TogglePaid(now time.Time) {
	if i.IsPaid {
		i.MarkUnpaid()
		return
	}
	i.MarkPaid(now)
}

// PaidConsistent verifica el invariante IsPaid == (PaidAt != nil).
func (i *Invoice) PaidConsistent() bool {
	return i.IsPaid == (i.PaidAt != nil)
}

// Overdue informa si la factura está vencida y sin pagar al día de referencia.
func (i *Invoice) Overdue(today time.Time) bool {
	return !i.IsPaid && i.DueDate.Before(today)
}
