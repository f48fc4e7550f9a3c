package entity

import "time"

// Company representa una empresa/tenant del sistema (multi-tenant, enfoque Brasil).
// CompanyKey es el slug que identifica al tenant en las URLs (/{company_key}/...).
type Company struct {
	ID           string
	CompanyKey   string // slug único: [a-z0-9]+(-[a-z0-9]+)*, mínimo 3 caracteres
	Name         string
	CNPJ         string // CNPJ brasileño, 14 dígitos (se almacena tal como llega)
	Email        string
	Phone        string
	Address      string
	LogoURL      string
	PrimaryColor string // color hex para personalización visual
	PlanID       string // vacío = sin plan asignado
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultPrimaryColor color por defecto al crear una empresa.
const DefaultPrimaryColor = "#3B82F6"
