package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas y resúmenes de la empresa del tenant.
type DashboardResponse struct {
	Company        DashboardCompany  `json:"company"`
	Summary        DashboardSummary  `json:"summary"`
	Overdue        DashboardBucket   `json:"overdue"`
	Upcoming       DashboardBucket   `json:"upcoming"`
	RecentInvoices []InvoiceResponse `json:"recent_invoices"`
}

// DashboardCompany identificación mínima de la empresa en el dashboard.
type DashboardCompany struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CompanyKey string `json:"company_key"`
}

// DashboardSummary totales generales.
type DashboardSummary struct {
	TotalInvoices int64           `json:"total_invoices"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalUsers    int64           `json:"total_users"`
}

// DashboardBucket conteo y monto de un grupo de facturas (vencidas, próximas).
type DashboardBucket struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}
