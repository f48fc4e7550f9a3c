package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "superadmin" // acceso global, sin empresa asignada
	RoleAdmin      = "admin"      // administra su propia empresa
	RoleUser       = "user"       // operaciones de lectura y toggle dentro de su empresa
)

// ValidRole informa si el rol es uno de los tres conocidos.
func ValidRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin || role == RoleUser
}

// User representa un usuario del sistema. Pertenece a exactamente una Company,
// salvo los superadmin que no tienen empresa (CompanyID vacío).
type User struct {
	ID           string
	CompanyID    string // vacío solo para superadmin
	Email        string // único global, no por empresa
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ver constantes Role*
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
