package dto

import "github.com/shopspring/decimal"

// PlanResponse información pública de un plan (landing y flujo de registro).
type PlanResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Price       decimal.Decimal `json:"price"`
	MaxClients  int             `json:"max_clients"` // -1 = ilimitado
	Features    []string        `json:"features,omitempty"`
}
