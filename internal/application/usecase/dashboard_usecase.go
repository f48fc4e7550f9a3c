package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// upcomingWindowDays horizonte de "próximas a vencer" del dashboard.
const upcomingWindowDays = 7

// recentInvoicesLimit cuántas facturas recientes muestra el dashboard.
const recentInvoicesLimit = 5

// DashboardUseCase arma las métricas del panel del tenant: totales de
// facturación, vencidas, próximas a vencer y actividad reciente.
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso con sus puertos.
func NewDashboardUseCase(invoiceRepo repository.InvoiceRepository, userRepo repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{invoiceRepo: invoiceRepo, userRepo: userRepo}
}

// Summary calcula el dashboard de la empresa del tenant. Accesible para todo
// usuario del tenant (y superadmin).
func (uc *DashboardUseCase) Summary(ctx context.Context, p policy.Principal, company *entity.Company) (*dto.DashboardResponse, error) {
	if err := policy.ResolveTenantAccess(p, company.ID); err != nil {
		return nil, err
	}
	today := time.Now().Truncate(24 * time.Hour)
	totals, err := uc.invoiceRepo.Totals(ctx, company.ID, today, today.AddDate(0, 0, upcomingWindowDays))
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.CountByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.invoiceRepo.Recent(ctx, company.ID, recentInvoicesLimit)
	if err != nil {
		return nil, err
	}
	recentItems := make([]dto.InvoiceResponse, 0, len(recent))
	for _, inv := range recent {
		recentItems = append(recentItems, *entityToInvoiceResponse(inv))
	}
	return &dto.DashboardResponse{
		Company: dto.DashboardCompany{
			ID:         company.ID,
			Name:       company.Name,
			CompanyKey: company.CompanyKey,
		},
		Summary: dto.DashboardSummary{
			TotalInvoices: totals.TotalInvoices,
			TotalPending:  totals.TotalPending,
			TotalReceived: totals.TotalReceived,
			TotalUsers:    users,
		},
		Overdue:  dto.DashboardBucket{Count: totals.OverdueCount, Amount: totals.OverdueAmount},
		Upcoming: dto.DashboardBucket{Count: totals.UpcomingCount, Amount: totals.UpcomingAmount},
		RecentInvoices: recentItems,
	}, nil
}
