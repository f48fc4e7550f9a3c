package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// Tipos de imagen admitidos para el logo de empresa.
var logoContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
// Toda operación recibe el Principal autenticado y consulta el motor de
// políticas antes de tocar la persistencia.
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
	planRepo    repository.PlanRepository
	files       ports.FileStore
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	userRepo repository.UserRepository,
	invoiceRepo repository.InvoiceRepository,
	planRepo repository.PlanRepository,
	files ports.FileStore,
) *CompanyUseCase {
	return &CompanyUseCase{
		repo:        repo,
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		planRepo:    planRepo,
		files:       files,
	}
}

// Create crea una nueva empresa. Solo superadmin. Valida slug y CNPJ y
// devuelve domain.ErrConflict si el slug o el CNPJ ya existen.
func (uc *CompanyUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.CanMutateCompany(p); err != nil {
		return nil, err
	}
	if err := domain.ValidateCompanyKey(in.CompanyKey); err != nil {
		return nil, err
	}
	if err := domain.ValidateCNPJ(in.CNPJ); err != nil {
		return nil, err
	}
	if existing, err := uc.repo.GetByAnyKey(ctx, in.CompanyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("company_key %q ya registrado: %w", in.CompanyKey, domain.ErrConflict)
	}
	if existing, err := uc.repo.GetByCNPJ(ctx, in.CNPJ); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("cnpj ya registrado: %w", domain.ErrConflict)
	}
	if in.PlanID != "" {
		plan, err := uc.planRepo.GetByID(ctx, in.PlanID)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, fmt.Errorf("plan %q: %w", in.PlanID, domain.ErrNotFound)
		}
	}
	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		CompanyKey:   in.CompanyKey,
		Name:         in.Name,
		CNPJ:         in.CNPJ,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PrimaryColor: entity.DefaultPrimaryColor,
		PlanID:       in.PlanID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. El motor de políticas decide qué
// empresas son visibles: admin y user solo ven la propia.
func (uc *CompanyUseCase) GetByID(ctx context.Context, p policy.Principal, id string) (*dto.CompanyResponse, error) {
	if !policy.VisibleCompanies(p).Contains(id) {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrForbidden)
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return entityToCompanyResponse(company), nil
}

// GetByKey resuelve el tenant por slug. Una empresa inactiva o inexistente
// responde domain.ErrNotFound, sin distinguir los dos casos.
func (uc *CompanyUseCase) GetByKey(ctx context.Context, companyKey string) (*entity.Company, error) {
	company, err := uc.repo.GetByKey(ctx, companyKey)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %q: %w", companyKey, domain.ErrNotFound)
	}
	return company, nil
}

// PublicInfo devuelve los datos públicos de una empresa activa para la
// pantalla de login del tenant. No requiere autenticación.
func (uc *CompanyUseCase) PublicInfo(ctx context.Context, companyKey string) (*dto.CompanyPublicInfo, error) {
	company, err := uc.GetByKey(ctx, companyKey)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyPublicInfo{
		CompanyKey:   company.CompanyKey,
		Name:         company.Name,
		LogoURL:      company.LogoURL,
		PrimaryColor: company.PrimaryColor,
	}, nil
}

// List lista empresas con paginación aplicando el filtro de filas del motor
// de políticas. Un filtro vacío devuelve lista vacía, nunca error.
func (uc *CompanyUseCase) List(ctx context.Context, p policy.Principal, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	filter := policy.VisibleCompanies(p)
	scope := repository.Scope{All: filter.All, CompanyIDs: filter.IDs}
	items := []dto.CompanyResponse{}
	if !scope.Empty() {
		list, err := uc.repo.List(ctx, scope, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			items = append(items, *entityToCompanyResponse(c))
		}
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza una empresa campo por campo (solo superadmin). Los
// chequeos de unicidad excluyen los valores actuales de la propia fila.
func (uc *CompanyUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := policy.CanMutateCompany(p); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	if in.CompanyKey != nil && *in.CompanyKey != company.CompanyKey {
		if err := domain.ValidateCompanyKey(*in.CompanyKey); err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByAnyKey(ctx, *in.CompanyKey)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != company.ID {
			return nil, fmt.Errorf("company_key %q ya registrado: %w", *in.CompanyKey, domain.ErrConflict)
		}
		company.CompanyKey = *in.CompanyKey
	}
	if in.CNPJ != nil && *in.CNPJ != company.CNPJ {
		if err := domain.ValidateCNPJ(*in.CNPJ); err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByCNPJ(ctx, *in.CNPJ)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != company.ID {
			return nil, fmt.Errorf("cnpj ya registrado: %w", domain.ErrConflict)
		}
		company.CNPJ = *in.CNPJ
	}
	if in.PlanID != nil && *in.PlanID != company.PlanID {
		if *in.PlanID != "" {
			plan, err := uc.planRepo.GetByID(ctx, *in.PlanID)
			if err != nil {
				return nil, err
			}
			if plan == nil {
				return nil, fmt.Errorf("plan %q: %w", *in.PlanID, domain.ErrNotFound)
			}
		}
		company.PlanID = *in.PlanID
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.PrimaryColor != nil {
		company.PrimaryColor = *in.PrimaryColor
	}
	if in.IsActive != nil {
		company.IsActive = *in.IsActive
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina una empresa (solo superadmin). Una empresa con usuarios o
// facturas no se puede eliminar: devuelve domain.ErrConflict.
func (uc *CompanyUseCase) Delete(ctx context.Context, p policy.Principal, id string) error {
	if err := policy.CanMutateCompany(p); err != nil {
		return err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	users, err := uc.userRepo.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return fmt.Errorf("la empresa tiene %d usuarios: %w", users, domain.ErrConflict)
	}
	invoices, err := uc.invoiceRepo.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if invoices > 0 {
		return fmt.Errorf("la empresa tiene %d facturas: %w", invoices, domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

// UpdateProfile actualiza el perfil del tenant (nombre, contacto, color).
// Requiere admin del tenant o superadmin.
func (uc *CompanyUseCase) UpdateProfile(ctx context.Context, p policy.Principal, company *entity.Company, in dto.UpdateCompanyProfileRequest) (*dto.CompanyResponse, error) {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.PrimaryColor != nil {
		company.PrimaryColor = *in.PrimaryColor
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// UpdateLogo sube el logo del tenant y reemplaza el anterior. Requiere admin
// del tenant o superadmin; solo admite imágenes.
func (uc *CompanyUseCase) UpdateLogo(ctx context.Context, p policy.Principal, company *entity.Company, data []byte, contentType string) (*dto.CompanyResponse, error) {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return nil, err
	}
	if !logoContentTypes[contentType] {
		return nil, fmt.Errorf("el logo debe ser una imagen (png, jpeg o webp): %w", domain.ErrValidation)
	}
	url, err := uc.files.Save(ctx, data, contentType)
	if err != nil {
		return nil, err
	}
	if company.LogoURL != "" {
		// El logo anterior es basura si la subida ya fue aceptada.
		_, _ = uc.files.Delete(ctx, company.LogoURL)
	}
	company.LogoURL = url
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:           c.ID,
		CompanyKey:   c.CompanyKey,
		Name:         c.Name,
		CNPJ:         c.CNPJ,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		LogoURL:      c.LogoURL,
		PrimaryColor: c.PrimaryColor,
		PlanID:       c.PlanID,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
