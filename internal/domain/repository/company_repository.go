package repository

import (
	"context"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// Scope es el filtro implícito de empresa que los listados reciben desde el
// motor de políticas: todas las empresas, o solo las de CompanyIDs. Un Scope
// vacío (All=false, sin IDs) produce listados vacíos.
type Scope struct {
	All        bool
	CompanyIDs []string
}

// Empty informa si el scope no deja ver ninguna fila.
func (s Scope) Empty() bool { return !s.All && len(s.CompanyIDs) == 0 }

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Los Get* devuelven (nil, nil)
// cuando la fila no existe; los errores son solo fallas de infraestructura.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByKey resuelve el tenant por slug y SOLO considera empresas activas:
	// una empresa inactiva es indistinguible de una inexistente.
	GetByKey(ctx context.Context, companyKey string) (*entity.Company, error)
	// GetByAnyKey busca por slug sin filtrar por is_active (chequeos de unicidad).
	GetByAnyKey(ctx context.Context, companyKey string) (*entity.Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id string) error
}
