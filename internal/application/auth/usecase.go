package auth

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
	"github.com/jhoicas/Cobranza-api/pkg/jwt"
	"github.com/jhoicas/Cobranza-api/pkg/password"
	"github.com/jhoicas/Cobranza-api/pkg/slug"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// TxRunner ejecuta el alta atómica empresa + usuario admin del autoregistro.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: login, autoregistro y resolución
// del principal de cada petición.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	planRepo    repository.PlanRepository
	tx          TxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	planRepo repository.PlanRepository,
	tx TxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		planRepo:    planRepo,
		tx:          tx,
		jwtCfg:      jwtCfg,
	}
}

// Login verifica email/password, rechaza cuentas inactivas y genera el JWT
// con la vinculación de empresa del usuario. Email inexistente y password
// incorrecta producen el mismo error para no filtrar existencia de cuentas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	companyKey := ""
	if user.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			companyKey = company.CompanyKey
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, companyKey, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		CompanyKey:  companyKey,
		User:        toUserResponse(user),
	}, nil
}

// TenantLogin es el login desde la pantalla de una empresa concreta. Además
// de las verificaciones del login global, exige que el usuario pertenezca a
// esa empresa (superadmin entra a cualquiera) y que la empresa esté activa.
func (uc *AuthUseCase) TenantLogin(ctx context.Context, companyKey string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	company, err := uc.companyRepo.GetByKey(ctx, companyKey)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %q: %w", companyKey, domain.ErrNotFound)
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(in.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	if user.Role != entity.RoleSuperAdmin && user.CompanyID != company.ID {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthenticated)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, companyKey, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		CompanyKey:  companyKey,
		User:        toUserResponse(user),
	}, nil
}

// Profile devuelve los datos del propio usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, p policy.Principal) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", p.ID, domain.ErrNotFound)
	}
	out := toUserResponse(user)
	return &out, nil
}

// Register es el autoregistro público: valida slug, CNPJ y contraseña, chequea
// las tres unicidades (email, company_key, cnpj), y crea la empresa junto con
// su primer usuario admin en una única transacción. Devuelve token para login
// inmediato.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// Se tolera entrada con mayúsculas o tildes ("Açaí Ltda" -> "acai-ltda");
	// lo que no sobreviva a la normalización se rechaza en la validación.
	in.CompanyKey = slug.Normalize(in.CompanyKey)
	if err := domain.ValidateCompanyKey(in.CompanyKey); err != nil {
		return nil, err
	}
	if err := domain.ValidateCNPJ(in.CNPJ); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
	}
	// Unicidad del slug contra TODAS las empresas, activas o no.
	existingKey, err := uc.companyRepo.GetByAnyKey(ctx, in.CompanyKey)
	if err != nil {
		return nil, err
	}
	if existingKey != nil {
		return nil, fmt.Errorf("%w: el company_key ya está en uso", domain.ErrConflict)
	}
	existingCNPJ, err := uc.companyRepo.GetByCNPJ(ctx, in.CNPJ)
	if err != nil {
		return nil, err
	}
	if existingCNPJ != nil {
		return nil, fmt.Errorf("%w: el CNPJ ya está registrado", domain.ErrConflict)
	}

	planID, err := uc.resolvePlan(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		CompanyKey:   in.CompanyKey,
		Name:         in.CompanyName,
		CNPJ:         in.CNPJ,
		PrimaryColor: entity.DefaultPrimaryColor,
		PlanID:       planID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, company.ID, company.CompanyKey, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		AccessToken: token,
		TokenType:   "bearer",
		CompanyKey:  company.CompanyKey,
		User:        toUserResponse(user),
	}, nil
}

// ResolvePrincipal convierte claims ya validados en el Principal de la
// petición: rechaza usuarios inexistentes y cuentas deshabilitadas. Lookup
// puro, sin efectos.
func (uc *AuthUseCase) ResolvePrincipal(ctx context.Context, claims *jwt.Claims) (policy.Principal, error) {
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return policy.Principal{}, err
	}
	if user == nil {
		return policy.Principal{}, fmt.Errorf("%w: usuario no encontrado", domain.ErrUnauthenticated)
	}
	if !user.IsActive {
		return policy.Principal{}, domain.ErrAccountDisabled
	}
	return policy.Principal{ID: user.ID, Role: user.Role, CompanyID: user.CompanyID}, nil
}

// resolvePlan devuelve el plan pedido o el starter por defecto. Un plan_id
// explícito que no existe es un error de NotFound; la ausencia de planes
// sembrados no impide el registro.
func (uc *AuthUseCase) resolvePlan(ctx context.Context, planID string) (string, error) {
	if planID != "" {
		plan, err := uc.planRepo.GetByID(ctx, planID)
		if err != nil {
			return "", err
		}
		if plan == nil {
			return "", fmt.Errorf("%w: plan inexistente", domain.ErrNotFound)
		}
		return plan.ID, nil
	}
	plan, err := uc.planRepo.GetByName(ctx, entity.PlanStarter)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", nil
	}
	return plan.ID, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
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
