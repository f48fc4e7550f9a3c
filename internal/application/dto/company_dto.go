package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (solo superadmin).
type CreateCompanyRequest struct {
	CompanyKey string `json:"company_key" validate:"required,min=3,max=50"`
	Name       string `json:"name" validate:"required,min=1,max=255"`
	CNPJ       string `json:"cnpj" validate:"required,min=14,max=20"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PlanID     string `json:"plan_id,omitempty"`
}

// UpdateCompanyRequest patch explícito para actualizar una empresa: solo los
// campos presentes (no-nil) se aplican, campo por campo.
type UpdateCompanyRequest struct {
	CompanyKey   *string `json:"company_key" validate:"omitempty,min=3,max=50"`
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	CNPJ         *string `json:"cnpj" validate:"omitempty,min=14,max=20"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	PrimaryColor *string `json:"primary_color" validate:"omitempty,len=7"`
	PlanID       *string `json:"plan_id"`
	IsActive     *bool   `json:"is_active"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	CompanyKey   string    `json:"company_key"`
	Name         string    `json:"name"`
	CNPJ         string    `json:"cnpj"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	PrimaryColor string    `json:"primary_color"`
	PlanID       string    `json:"plan_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyPublicInfo datos públicos de una empresa para la pantalla de login
// del tenant. No expone CNPJ ni datos de contacto.
type CompanyPublicInfo struct {
	CompanyKey   string `json:"company_key"`
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color"`
}

// UpdateCompanyProfileRequest patch del perfil de empresa que un admin del
// tenant puede editar. No incluye company_key, cnpj, plan ni is_active.
type UpdateCompanyProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	PrimaryColor *string `json:"primary_color" validate:"omitempty,len=7"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
