package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// Asegura que InvoiceRepo implementa repository.InvoiceRepository.
var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, description, amount, due_date, file_url,
	is_paid, paid_at, notes, created_by, created_at, updated_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, description, amount, due_date, file_url,
			is_paid, paid_at, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.Description, invoice.Amount,
		invoice.DueDate, invoice.FileURL, invoice.IsPaid, invoice.PaidAt,
		invoice.Notes, invoice.CreatedBy, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var i entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.CompanyID, &i.Description, &i.Amount, &i.DueDate, &i.FileURL,
		&i.IsPaid, &i.PaidAt, &i.Notes, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &i, nil
}

// Update actualiza una factura existente. is_paid y paid_at viajan en la
// misma sentencia, el par queda consistente aun con escrituras concurrentes.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET description = $2, amount = $3, due_date = $4, file_url = $5,
			is_paid = $6, paid_at = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Description, invoice.Amount, invoice.DueDate,
		invoice.FileURL, invoice.IsPaid, invoice.PaidAt, invoice.Notes, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// List devuelve facturas con filtros opcionales y el scope de filas.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 OR company_id = ANY($2))
		  AND ($3 = 0 OR EXTRACT(MONTH FROM due_date) = $3)
		  AND ($4 = 0 OR EXTRACT(YEAR FROM due_date) = $4)
		  AND ($5::boolean IS NULL OR is_paid = $5)
		ORDER BY due_date ASC, created_at DESC
		LIMIT $6 OFFSET $7`
	return r.scanMany(ctx, query,
		filter.Scope.All, filter.Scope.CompanyIDs,
		filter.Month, filter.Year, filter.IsPaid,
		filter.Limit, filter.Offset,
	)
}

// ListByDueDate devuelve las facturas con vencimiento exacto en date dentro del scope.
func (r *InvoiceRepo) ListByDueDate(ctx context.Context, scope repository.Scope, date time.Time) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 OR company_id = ANY($2)) AND due_date = $3::date
		ORDER BY created_at DESC`
	return r.scanMany(ctx, query, scope.All, scope.CompanyIDs, date)
}

// Calendar agrupa por día del mes los vencimientos dentro del scope.
func (r *InvoiceRepo) Calendar(ctx context.Context, scope repository.Scope, month, year int) (map[int]repository.CalendarDay, error) {
	query := `
		SELECT EXTRACT(DAY FROM due_date)::int AS day,
			COUNT(*) FILTER (WHERE NOT is_paid) AS pending,
			COUNT(*) FILTER (WHERE is_paid) AS paid,
			COUNT(*) AS total
		FROM invoices
		WHERE ($1 OR company_id = ANY($2))
		  AND EXTRACT(MONTH FROM due_date) = $3
		  AND EXTRACT(YEAR FROM due_date) = $4
		GROUP BY day`
	rows, err := r.q.Query(ctx, query, scope.All, scope.CompanyIDs, month, year)
	if err != nil {
		return nil, fmt.Errorf("calendar invoices: %w", err)
	}
	defer rows.Close()

	days := make(map[int]repository.CalendarDay)
	for rows.Next() {
		var day int
		var d repository.CalendarDay
		if err := rows.Scan(&day, &d.Pending, &d.Paid, &d.Total); err != nil {
			return nil, fmt.Errorf("scan calendar day: %w", err)
		}
		days[day] = d
	}
	return days, rows.Err()
}

// CountByCompany cuenta las facturas de una empresa.
func (r *InvoiceRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}

// Recent devuelve las últimas facturas creadas de una empresa.
func (r *InvoiceRepo) Recent(ctx context.Context, companyID string, limit int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2`
	return r.scanMany(ctx, query, companyID, limit)
}

// Totals calcula los agregados del dashboard en una sola consulta.
func (r *InvoiceRepo) Totals(ctx context.Context, companyID string, today, upcomingUntil time.Time) (*repository.InvoiceTotals, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(amount) FILTER (WHERE NOT is_paid), 0),
			COALESCE(SUM(amount) FILTER (WHERE is_paid), 0),
			COUNT(*) FILTER (WHERE NOT is_paid AND due_date < $2::date),
			COALESCE(SUM(amount) FILTER (WHERE NOT is_paid AND due_date < $2::date), 0),
			COUNT(*) FILTER (WHERE NOT is_paid AND due_date >= $2::date AND due_date <= $3::date),
			COALESCE(SUM(amount) FILTER (WHERE NOT is_paid AND due_date >= $2::date AND due_date <= $3::date), 0)
		FROM invoices WHERE company_id = $1`
	var t repository.InvoiceTotals
	err := r.q.QueryRow(ctx, query, companyID, today, upcomingUntil).Scan(
		&t.TotalInvoices, &t.TotalPending, &t.TotalReceived,
		&t.OverdueCount, &t.OverdueAmount,
		&t.UpcomingCount, &t.UpcomingAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("invoice totals: %w", err)
	}
	return &t, nil
}

func (r *InvoiceRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var i entity.Invoice
		if err := rows.Scan(
			&i.ID, &i.CompanyID, &i.Description, &i.Amount, &i.DueDate, &i.FileURL,
			&i.IsPaid, &i.PaidAt, &i.Notes, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
