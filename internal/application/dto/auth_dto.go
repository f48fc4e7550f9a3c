package dto

// LoginRequest entrada para login (email + password).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"` // siempre "bearer"
	CompanyKey  string       `json:"company_key,omitempty"`
	User        UserResponse `json:"user"`
}

// RegisterRequest entrada del autoregistro público: crea la empresa y su
// primer usuario admin en una sola operación.
type RegisterRequest struct {
	// Datos del usuario
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=200"`

	// Datos de la empresa
	CompanyName string `json:"company_name" validate:"required,min=1,max=255"`
	CompanyKey  string `json:"company_key" validate:"required,min=3,max=50"`
	CNPJ        string `json:"cnpj" validate:"required,min=14,max=20"`

	// Plan (opcional, default: starter)
	PlanID string `json:"plan_id,omitempty"`
}

// RegisterResponse salida del autoregistro con token para login inmediato.
type RegisterResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	CompanyKey  string       `json:"company_key"`
	User        UserResponse `json:"user"`
}
