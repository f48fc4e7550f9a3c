package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// Asegura que PlanRepo implementa repository.PlanRepository.
var _ repository.PlanRepository = (*PlanRepo)(nil)

const planColumns = `id, name, display_name, price, max_clients, features, is_active, created_at`

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de persistencia para planes. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste un nuevo plan (seed).
func (r *PlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (id, name, display_name, price, max_clients, features, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		plan.ID, plan.Name, plan.DisplayName, plan.Price,
		plan.MaxClients, plan.Features, plan.IsActive, plan.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert plan: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByName obtiene un plan por nombre (starter, profissional, enterprise).
func (r *PlanRepo) GetByName(ctx context.Context, name string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE name = $1`
	return r.scanOne(ctx, query, name)
}

// ListActive devuelve los planes contratables ordenados por precio.
func (r *PlanRepo) ListActive(ctx context.Context) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE is_active = TRUE ORDER BY price ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(
			&p.ID, &p.Name, &p.DisplayName, &p.Price,
			&p.MaxClients, &p.Features, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PlanRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Plan, error) {
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.DisplayName, &p.Price,
		&p.MaxClients, &p.Features, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}
