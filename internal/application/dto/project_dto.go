package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitPriceDTO tarifa unitaria del proyecto.
type UnitPriceDTO struct {
	Format  string          `json:"format"` // material | hours
	Unit    string          `json:"unit,omitempty"`
	Concept string          `json:"concept"`
	Price   decimal.Decimal `json:"price"`
}

// CreateProjectRequest body para POST /api/project.
type CreateProjectRequest struct {
	Name        string           `json:"name"`
	ClientID    string           `json:"client_id"`
	ProjectCode string           `json:"project_code,omitempty"`
	Code        string           `json:"code,omitempty"`
	Address     *AddressDTO      `json:"address,omitempty"`
	Begin       string           `json:"begin,omitempty"`
	End         string           `json:"end,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	UnitPrices  []UnitPriceDTO   `json:"unit_prices,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// UpdateProjectRequest body para PUT /api/project/:id. Campos vacíos no se tocan.
type UpdateProjectRequest struct {
	Name        string      `json:"name,omitempty"`
	ClientID    string      `json:"client_id,omitempty"`
	ProjectCode string      `json:"project_code,omitempty"`
	Code        string      `json:"code,omitempty"`
	Address     *AddressDTO `json:"address,omitempty"`
	Begin       string      `json:"begin,omitempty"`
	End         string      `json:"end,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// ActivateProjectRequest body para PATCH /api/project/activate/:id.
type ActivateProjectRequest struct {
	Active *bool `json:"active"`
}

// UpdatePricesRequest body para PATCH /api/project/prices/:id.
type UpdatePricesRequest struct {
	Prices []UnitPriceDTO `json:"prices"`
}

// UpdateAmountRequest body para PATCH /api/project/amount/:id.
type UpdateAmountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// ProjectResponse proyecto completo en respuestas.
type ProjectResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	ClientID    string           `json:"client_id"`
	Name        string           `json:"name"`
	ProjectCode string           `json:"project_code,omitempty"`
	Code        string           `json:"code,omitempty"`
	Address     *AddressDTO      `json:"address,omitempty"`
	Begin       string           `json:"begin,omitempty"`
	End         string           `json:"end,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	IsActive    bool             `json:"is_active"`
	UnitPrices  []UnitPriceDTO   `json:"unit_prices"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProjectSummaryResponse respuesta reducida de create/update.
type ProjectSummaryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
