package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

type userFixture struct {
	uc        *usecase.UserUseCase
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	acme      *entity.Company
	tech      *entity.Company
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()

	acme := &entity.Company{ID: "c-acme", CompanyKey: "acme", Name: "ACME", CNPJ: "12345678000190", IsActive: true}
	tech := &entity.Company{ID: "c-tech", CompanyKey: "techstart", Name: "TechStart", CNPJ: "98765432000110", IsActive: true}
	require.NoError(t, companies.Create(context.Background(), acme))
	require.NoError(t, companies.Create(context.Background(), tech))

	return &userFixture{
		uc:        usecase.NewUserUseCase(users, companies),
		users:     users,
		companies: companies,
		acme:      acme,
		tech:      tech,
	}
}

func (f *userFixture) seedUser(t *testing.T, id, email, role, companyID string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:        id,
		CompanyID: companyID,
		Email:     email,
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// ─────────────────────────────────────────────────────────────────────────────
// Superficie global (solo superadmin)
// ─────────────────────────────────────────────────────────────────────────────

func TestUserCreate_SoloSuperadmin(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.uc.Create(context.Background(), adminOf(f.acme.ID), dto.CreateUserRequest{
		Email:     "nuevo@acme.com",
		Password:  "secreto123",
		Role:      entity.RoleUser,
		CompanyID: f.acme.ID,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el CRUD global de usuarios es exclusivo del superadmin")

	resp, err := f.uc.Create(context.Background(), superadmin(), dto.CreateUserRequest{
		Email:     "nuevo@acme.com",
		Password:  "secreto123",
		Role:      entity.RoleUser,
		CompanyID: f.acme.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.acme.ID, resp.CompanyID)
	assert.True(t, resp.IsActive)
}

func TestUserCreate_SuperadminSinEmpresa(t *testing.T) {
	f := newUserFixture(t)

	// Un superadmin con empresa es inválido.
	_, err := f.uc.Create(context.Background(), superadmin(), dto.CreateUserRequest{
		Email:     "otro-super@example.com",
		Password:  "secreto123",
		Role:      entity.RoleSuperAdmin,
		CompanyID: f.acme.ID,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Y un admin sin empresa también.
	_, err = f.uc.Create(context.Background(), superadmin(), dto.CreateUserRequest{
		Email:    "admin-solo@example.com",
		Password: "secreto123",
		Role:     entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserCreate_EmailDuplicado_Conflicto(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser(t, "u-1", "dup@acme.com", entity.RoleUser, f.acme.ID)

	_, err := f.uc.Create(context.Background(), superadmin(), dto.CreateUserRequest{
		Email:     "dup@acme.com",
		Password:  "secreto123",
		Role:      entity.RoleUser,
		CompanyID: f.acme.ID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUpdate_EmailDuplicadoExcluyeAlPropio(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser(t, "u-1", "uno@acme.com", entity.RoleUser, f.acme.ID)
	f.seedUser(t, "u-2", "dos@acme.com", entity.RoleUser, f.acme.ID)

	// Cambiar el email de u-1 al de u-2 choca.
	taken := "dos@acme.com"
	_, err := f.uc.Update(context.Background(), superadmin(), "u-1", dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Re-enviar el mismo email propio no choca.
	same := "uno@acme.com"
	_, err = f.uc.Update(context.Background(), superadmin(), "u-1", dto.UpdateUserRequest{Email: &same})
	assert.NoError(t, err)
}

func TestUserDelete_AutoeliminacionProhibida(t *testing.T) {
	f := newUserFixture(t)
	p := superadmin()
	f.seedUser(t, p.ID, "super@example.com", entity.RoleSuperAdmin, "")

	err := f.uc.Delete(context.Background(), p, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "ningún rol puede eliminar su propia cuenta")
}

// ─────────────────────────────────────────────────────────────────────────────
// Superficie tenant (admin del tenant o superadmin)
// ─────────────────────────────────────────────────────────────────────────────

func TestTenantUserCreate_AdminSoloOtorgaRolUser(t *testing.T) {
	f := newUserFixture(t)
	p := adminOf(f.acme.ID)

	_, err := f.uc.CreateTenantUser(context.Background(), p, f.acme, dto.CreateUserRequest{
		Email:    "escalada@acme.com",
		Password: "secreto123",
		Role:     entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un admin no puede otorgar un rol distinto de user")

	resp, err := f.uc.CreateTenantUser(context.Background(), p, f.acme, dto.CreateUserRequest{
		Email:    "operario@acme.com",
		Password: "secreto123",
		Role:     entity.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.Equal(t, f.acme.ID, resp.CompanyID, "el tenant de la URL manda sobre el company_id del cuerpo")
}

func TestTenantUserCreate_CompanyIDDelCuerpoSeIgnora(t *testing.T) {
	f := newUserFixture(t)

	resp, err := f.uc.CreateTenantUser(context.Background(), adminOf(f.acme.ID), f.acme, dto.CreateUserRequest{
		Email:     "colado@acme.com",
		Password:  "secreto123",
		Role:      entity.RoleUser,
		CompanyID: f.tech.ID, // intento de colar otro tenant
	})
	require.NoError(t, err)
	assert.Equal(t, f.acme.ID, resp.CompanyID)
}

func TestTenantUserCreate_RolSuperadminRechazado(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.uc.CreateTenantUser(context.Background(), superadmin(), f.acme, dto.CreateUserRequest{
		Email:    "dios@acme.com",
		Password: "secreto123",
		Role:     entity.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTenantUserGet_UsuarioAjeno_SeVeComoNoExistente(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser(t, "u-tech", "alguien@techstart.com", entity.RoleUser, f.tech.ID)

	_, err := f.uc.GetTenantUser(context.Background(), adminOf(f.acme.ID), f.acme, "u-tech")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un usuario de otro tenant no debe revelarse como prohibido")
}

func TestTenantUserList_RolUserExcluido(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.uc.ListByCompany(context.Background(), userOf(f.acme.ID), f.acme, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTenantUserUpdate_AdminNoEscalaRol(t *testing.T) {
	f := newUserFixture(t)
	f.seedUser(t, "u-1", "operario@acme.com", entity.RoleUser, f.acme.ID)

	admin := entity.RoleAdmin
	_, err := f.uc.UpdateTenantUser(context.Background(), adminOf(f.acme.ID), f.acme, "u-1", dto.UpdateUserRequest{
		Role: &admin,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTenantUserDelete_Autoeliminacion_Prohibida(t *testing.T) {
	f := newUserFixture(t)
	p := adminOf(f.acme.ID)
	f.seedUser(t, p.ID, "admin@acme.com", entity.RoleAdmin, f.acme.ID)

	err := f.uc.DeleteTenantUser(context.Background(), p, f.acme, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
