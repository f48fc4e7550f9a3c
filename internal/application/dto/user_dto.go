package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// CompanyID se ignora en rutas tenant: ahí manda el tenant de la URL.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Name      string `json:"name" validate:"omitempty,max=200"`
	Role      string `json:"role" validate:"required,oneof=superadmin admin user"`
	CompanyID string `json:"company_id,omitempty"`
}

// UpdateUserRequest patch explícito para actualizar un usuario.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Name      *string `json:"name" validate:"omitempty,max=200"`
	Role      *string `json:"role" validate:"omitempty,oneof=superadmin admin user"`
	CompanyID *string `json:"company_id"`
	IsActive  *bool   `json:"is_active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
