package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombres de plan disponibles (deben coincidir con el CHECK de la tabla plans).
const (
	PlanStarter      = "starter"
	PlanProfissional = "profissional"
	PlanEnterprise   = "enterprise"
)

// Plan representa un plan de suscripción contratable por una empresa.
type Plan struct {
	ID          string
	Name        string // ver constantes Plan*
	DisplayName string
	Price       decimal.Decimal
	MaxClients  int // -1 = ilimitado
	Features    []string
	IsActive    bool
	CreatedAt   time.Time
}
