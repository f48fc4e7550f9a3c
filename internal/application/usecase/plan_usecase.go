package usecase

import (
	"context"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// PlanUseCase expone los planes contratables. Es superficie pública: la
// landing y el flujo de registro la consultan sin autenticación.
type PlanUseCase struct {
	repo repository.PlanRepository
}

// NewPlanUseCase construye el caso de uso con el puerto de persistencia.
func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

// ListActive lista los planes activos.
func (uc *PlanUseCase) ListActive(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, *entityToPlanResponse(p))
	}
	return items, nil
}

func entityToPlanResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Price:       p.Price,
		MaxClients:  p.MaxClients,
		Features:    p.Features,
	}
}
