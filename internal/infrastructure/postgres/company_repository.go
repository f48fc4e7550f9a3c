package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, company_key, name, cnpj, email, phone, address,
	logo_url, primary_color, COALESCE(plan_id::text, ''), is_active, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, company_key, name, cnpj, email, phone, address,
			logo_url, primary_color, plan_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')::uuid, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.CompanyKey, company.Name, company.CNPJ,
		company.Email, company.Phone, company.Address,
		company.LogoURL, company.PrimaryColor, company.PlanID,
		company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert company: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByKey resuelve el tenant por slug. Solo empresas activas: una inactiva
// es indistinguible de una inexistente.
func (r *CompanyRepo) GetByKey(ctx context.Context, companyKey string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_key = $1 AND is_active = TRUE`
	return r.scanOne(ctx, query, companyKey)
}

// GetByAnyKey busca por slug sin filtrar por is_active (chequeos de unicidad).
func (r *CompanyRepo) GetByAnyKey(ctx context.Context, companyKey string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_key = $1`
	return r.scanOne(ctx, query, companyKey)
}

// GetByCNPJ obtiene una empresa por CNPJ.
func (r *CompanyRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE cnpj = $1`
	return r.scanOne(ctx, query, cnpj)
}

// List devuelve empresas con paginación dentro del scope de filas.
func (r *CompanyRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE ($1 OR id = ANY($2))
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, scope.All, scope.CompanyIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.CompanyKey, &c.Name, &c.CNPJ, &c.Email, &c.Phone, &c.Address,
			&c.LogoURL, &c.PrimaryColor, &c.PlanID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		SET company_key = $2, name = $3, cnpj = $4, email = $5, phone = $6, address = $7,
			logo_url = $8, primary_color = $9, plan_id = NULLIF($10, '')::uuid,
			is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.CompanyKey, company.Name, company.CNPJ,
		company.Email, company.Phone, company.Address,
		company.LogoURL, company.PrimaryColor, company.PlanID,
		company.IsActive, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update company: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CompanyKey, &c.Name, &c.CNPJ, &c.Email, &c.Phone, &c.Address,
		&c.LogoURL, &c.PrimaryColor, &c.PlanID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
