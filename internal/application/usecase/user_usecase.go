package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/policy"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
	"github.com/jhoicas/Cobranza-api/pkg/password"
)

// UserUseCase aplica reglas de negocio para usuarios. Expone dos superficies:
// la administración global (solo superadmin) y la administración dentro de un
// tenant (admin del tenant o superadmin).
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo}
}

// ─────────────────────────────────────────────────────────────────────────────
// Administración global (superadmin)
// ─────────────────────────────────────────────────────────────────────────────

// List lista todos los usuarios del sistema. Solo superadmin.
func (uc *UserUseCase) List(ctx context.Context, p policy.Principal, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := policy.CanMutateUserGlobal(p); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return usersToListResponse(list, page), nil
}

// Get obtiene un usuario por ID. Solo superadmin.
func (uc *UserUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.UserResponse, error) {
	if err := policy.CanMutateUserGlobal(p); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	return entityToUserResponse(user), nil
}

// Create crea un usuario con cualquier rol. Solo superadmin. Un superadmin no
// lleva empresa; cualquier otro rol la requiere.
func (uc *UserUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := policy.CanMutateUserGlobal(p); err != nil {
		return nil, err
	}
	return uc.create(ctx, in)
}

// Update actualiza un usuario campo por campo. Solo superadmin.
func (uc *UserUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := policy.CanMutateUserGlobal(p); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	return uc.applyPatch(ctx, p, user, in)
}

// Delete elimina un usuario. Solo superadmin; la autoeliminación está
// prohibida para todo rol.
func (uc *UserUseCase) Delete(ctx context.Context, p policy.Principal, id string) error {
	if err := policy.CanMutateUserGlobal(p); err != nil {
		return err
	}
	if err := policy.CanDeleteUser(p, id); err != nil {
		return err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Administración por tenant (admin del tenant o superadmin)
// ─────────────────────────────────────────────────────────────────────────────

// ListByCompany lista los usuarios de un tenant.
func (uc *UserUseCase) ListByCompany(ctx context.Context, p policy.Principal, company *entity.Company, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return usersToListResponse(list, page), nil
}

// GetTenantUser obtiene un usuario del tenant. Un usuario de otra empresa es
// indistinguible de uno inexistente.
func (uc *UserUseCase) GetTenantUser(ctx context.Context, p policy.Principal, company *entity.Company, id string) (*dto.UserResponse, error) {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return nil, err
	}
	user, err := uc.tenantUser(ctx, company, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// CreateTenantUser crea un usuario dentro del tenant de la URL. El company_id
// del cuerpo se ignora: el tenant manda. Un admin solo puede otorgar el rol
// user; el rol superadmin no se crea por esta superficie.
func (uc *UserUseCase) CreateTenantUser(ctx context.Context, p policy.Principal, company *entity.Company, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return nil, err
	}
	if in.Role == entity.RoleSuperAdmin {
		return nil, fmt.Errorf("un superadmin no pertenece a una empresa: %w", domain.ErrValidation)
	}
	if err := policy.CanAssignRole(p, in.Role); err != nil {
		return nil, err
	}
	in.CompanyID = company.ID
	return uc.create(ctx, in)
}

// UpdateTenantUser actualiza un usuario del tenant.
func (uc *UserUseCase) UpdateTenantUser(ctx context.Context, p policy.Principal, company *entity.Company, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return nil, err
	}
	user, err := uc.tenantUser(ctx, company, id)
	if err != nil {
		return nil, err
	}
	return uc.applyPatch(ctx, p, user, in)
}

// DeleteTenantUser elimina un usuario del tenant.
func (uc *UserUseCase) DeleteTenantUser(ctx context.Context, p policy.Principal, company *entity.Company, id string) error {
	if err := policy.RequireTenantAdmin(p, company.ID); err != nil {
		return err
	}
	if err := policy.CanDeleteUser(p, id); err != nil {
		return err
	}
	user, err := uc.tenantUser(ctx, company, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, user.ID)
}

// create concentra las validaciones compartidas de alta de usuario. La
// autorización ya fue resuelta por el llamador.
func (uc *UserUseCase) create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("rol %q desconocido: %w", in.Role, domain.ErrValidation)
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.Role == entity.RoleSuperAdmin && in.CompanyID != "" {
		return nil, fmt.Errorf("un superadmin no lleva empresa: %w", domain.ErrValidation)
	}
	if in.Role != entity.RoleSuperAdmin && in.CompanyID == "" {
		return nil, fmt.Errorf("el rol %q requiere empresa: %w", in.Role, domain.ErrValidation)
	}
	if in.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, fmt.Errorf("empresa %s: %w", in.CompanyID, domain.ErrNotFound)
		}
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email ya registrado: %w", domain.ErrConflict)
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// applyPatch aplica un UpdateUserRequest sobre un usuario ya cargado. Los
// cambios de rol y de empresa pasan por el motor de políticas; el chequeo de
// unicidad de email excluye al propio usuario.
func (uc *UserUseCase) applyPatch(ctx context.Context, p policy.Principal, user *entity.User, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, fmt.Errorf("email ya registrado: %w", domain.ErrConflict)
		}
		user.Email = *in.Email
	}
	if in.Role != nil && *in.Role != user.Role {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("rol %q desconocido: %w", *in.Role, domain.ErrValidation)
		}
		if err := policy.CanAssignRole(p, *in.Role); err != nil {
			return nil, err
		}
		user.Role = *in.Role
	}
	if in.CompanyID != nil && *in.CompanyID != user.CompanyID {
		if err := policy.CanAssignCompany(p, *in.CompanyID); err != nil {
			return nil, err
		}
		if *in.CompanyID != "" {
			company, err := uc.companyRepo.GetByID(ctx, *in.CompanyID)
			if err != nil {
				return nil, err
			}
			if company == nil {
				return nil, fmt.Errorf("empresa %s: %w", *in.CompanyID, domain.ErrNotFound)
			}
		}
		user.CompanyID = *in.CompanyID
	}
	if user.Role == entity.RoleSuperAdmin && user.CompanyID != "" {
		return nil, fmt.Errorf("un superadmin no lleva empresa: %w", domain.ErrValidation)
	}
	if user.Role != entity.RoleSuperAdmin && user.CompanyID == "" {
		return nil, fmt.Errorf("el rol %q requiere empresa: %w", user.Role, domain.ErrValidation)
	}
	if in.Password != nil {
		if err := domain.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := password.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// tenantUser carga un usuario y verifica que pertenezca al tenant; si no,
// responde domain.ErrNotFound para no filtrar su existencia.
func (uc *UserUseCase) tenantUser(ctx context.Context, company *entity.Company, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != company.ID {
		return nil, fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

func usersToListResponse(list []*entity.User, page dto.PageRequest) *dto.UserListResponse {
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
