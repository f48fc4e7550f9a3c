// Package policy centraliza TODAS las decisiones de autorización del sistema.
//
// Cada función es pura y total: recibe el principal (y el dato mínimo del
// recurso), devuelve nil o domain.ErrForbidden, y no hace I/O. Los handlers y
// casos de uso invocan estas funciones en lugar de re-derivar reglas con
// comparaciones de rol sueltas.
package policy

import (
	"fmt"

	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// Principal es el actor autenticado de una petición, derivado del token y del
// registro de usuario. Inmutable: se construye una vez por petición.
type Principal struct {
	ID        string
	Role      string // entity.RoleSuperAdmin | RoleAdmin | RoleUser
	CompanyID string // empresa propia; vacío solo para superadmin
}

// IsSuperAdmin informa si el principal tiene rol superadmin.
func (p Principal) IsSuperAdmin() bool { return p.Role == entity.RoleSuperAdmin }

// IsAdmin informa si el principal es admin de empresa o superadmin.
func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin || p.Role == entity.RoleSuperAdmin
}

// CompanyFilter es el filtro implícito de filas para listados: o bien se ven
// todas las empresas (All) o solo las de IDs. IDs vacío con All=false significa
// "nada visible" (usuario sin empresa asignada), que en listados se traduce en
// lista vacía, no en error.
type CompanyFilter struct {
	All bool
	IDs []string
}

// Contains informa si companyID pasa el filtro.
func (f CompanyFilter) Contains(companyID string) bool {
	if f.All {
		return true
	}
	for _, id := range f.IDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// ResolveTenantAccess decide si el principal puede operar dentro del tenant:
// superadmin siempre; admin y user solo si es su propia empresa.
func ResolveTenantAccess(p Principal, companyID string) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.CompanyID != "" && p.CompanyID == companyID {
		return nil
	}
	return fmt.Errorf("%w: sin permiso sobre esta empresa", domain.ErrForbidden)
}

// RequireTenantAdmin exige acceso al tenant Y rol admin o superadmin. Un user
// queda excluido incluso dentro de su propia empresa.
func RequireTenantAdmin(p Principal, companyID string) error {
	if err := ResolveTenantAccess(p, companyID); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return fmt.Errorf("%w: solo administradores pueden realizar esta acción", domain.ErrForbidden)
	}
	return nil
}

// VisibleCompanies calcula el filtro de filas para listados globales:
// superadmin ve todo; el resto solo su propia empresa (o nada si no tiene).
func VisibleCompanies(p Principal) CompanyFilter {
	if p.IsSuperAdmin() {
		return CompanyFilter{All: true}
	}
	if p.CompanyID == "" {
		return CompanyFilter{}
	}
	return CompanyFilter{IDs: []string{p.CompanyID}}
}

// CanMutateCompany decide quién puede crear, actualizar o eliminar empresas.
// Solo superadmin: la variante que permitía admin quedó deprecada.
func CanMutateCompany(p Principal) error {
	if p.IsSuperAdmin() {
		return nil
	}
	return fmt.Errorf("%w: solo superadmin puede administrar empresas", domain.ErrForbidden)
}

// CanMutateUserGlobal decide quién puede administrar usuarios por la ruta
// global (fuera del contexto tenant). Solo superadmin.
func CanMutateUserGlobal(p Principal) error {
	if p.IsSuperAdmin() {
		return nil
	}
	return fmt.Errorf("%w: solo superadmin puede administrar usuarios", domain.ErrForbidden)
}

// CanMutateInvoice decide quién puede crear, actualizar o eliminar facturas
// (operación completa, no el toggle de pago): admin o superadmin.
func CanMutateInvoice(p Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: solo administradores pueden modificar facturas", domain.ErrForbidden)
}

// CanReadInvoice decide la lectura puntual de una factura: admin y superadmin
// sin restricción; user solo si la factura pertenece a su empresa.
func CanReadInvoice(p Principal, invoiceCompanyID string) error {
	if p.IsAdmin() {
		return nil
	}
	if p.CompanyID != "" && p.CompanyID == invoiceCompanyID {
		return nil
	}
	return fmt.Errorf("%w: la factura pertenece a otra empresa", domain.ErrForbidden)
}

// CanToggleInvoicePaid decide el toggle de pago: cualquier rol, pero user solo
// dentro de su propia empresa.
func CanToggleInvoicePaid(p Principal, invoiceCompanyID string) error {
	return CanReadInvoice(p, invoiceCompanyID)
}

// CanDeleteUser prohíbe la autoeliminación para todo rol; la autorización de
// fondo (quién puede borrar usuarios) se decide aparte con CanMutateUserGlobal
// o RequireTenantAdmin según la ruta.
func CanDeleteUser(p Principal, targetUserID string) error {
	if p.ID == targetUserID {
		return fmt.Errorf("%w: no puede eliminarse a sí mismo", domain.ErrForbidden)
	}
	return nil
}

// CanAssignRole controla la escalación de privilegios al crear o actualizar
// usuarios: un admin solo puede otorgar el rol user; superadmin cualquiera.
func CanAssignRole(p Principal, newRole string) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.Role == entity.RoleAdmin && newRole == entity.RoleUser {
		return nil
	}
	return fmt.Errorf("%w: no puede asignar el rol %q", domain.ErrForbidden, newRole)
}

// CanAssignCompany impide que un admin mueva usuarios a otra empresa.
func CanAssignCompany(p Principal, targetCompanyID string) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.CompanyID != "" && p.CompanyID == targetCompanyID {
		return nil
	}
	return fmt.Errorf("%w: no puede mover usuarios a otra empresa", domain.ErrForbidden)
}
