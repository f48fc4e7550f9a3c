package repository

import (
	"context"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// PlanRepository define el puerto de persistencia para Plan (DIP).
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	GetByName(ctx context.Context, name string) (*entity.Plan, error)
	// ListActive devuelve los planes contratables para la landing y el registro.
	ListActive(ctx context.Context) ([]*entity.Plan, error)
}
