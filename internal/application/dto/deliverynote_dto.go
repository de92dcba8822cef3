package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliveryNoteRequest body para POST /api/deliverynote.
// Exactamente el campo de medida que corresponde al formato debe venir
// presente: hours si format=hours, quantity si format=material.
type CreateDeliveryNoteRequest struct {
	ClientID     string           `json:"client_id"`
	ProjectID    string           `json:"project_id"`
	Format       string           `json:"format"` // hours | material
	WorkDate     *time.Time       `json:"workdate,omitempty"`
	Description  string           `json:"description,omitempty"`
	Hours        *decimal.Decimal `json:"hours,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	ObserverName string           `json:"observer_name,omitempty"`
	ObserverNIF  string           `json:"observer_nif,omitempty"`
	Observations string           `json:"observations,omitempty"`
}

// DeliveryNoteResponse albarán en respuestas de listado/creación.
type DeliveryNoteResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	ClientID     string           `json:"client_id"`
	ProjectID    string           `json:"project_id"`
	Format       string           `json:"format"`
	WorkDate     time.Time        `json:"workdate"`
	Description  string           `json:"description,omitempty"`
	Hours        *decimal.Decimal `json:"hours,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	SignURL      string           `json:"sign_url,omitempty"`
	IsSigned     bool             `json:"is_signed"`
	ObserverName string           `json:"observer_name,omitempty"`
	ObserverNIF  string           `json:"observer_nif,omitempty"`
	Observations string           `json:"observations,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// DeliveryNoteDetailResponse albarán con las entidades de su cadena de
// propiedad resueltas (emisor, cliente y proyecto).
type DeliveryNoteDetailResponse struct {
	DeliveryNoteResponse
	Emitter NoteEmitterDTO `json:"emitter"`
	Client  NoteClientDTO  `json:"client"`
	Project NoteProjectDTO `json:"project"`
}

// NoteEmitterDTO emisor del albarán (usuario propietario).
type NoteEmitterDTO struct {
	Name    string      `json:"name,omitempty"`
	Surname string      `json:"surname,omitempty"`
	Email   string      `json:"email"`
	Company *CompanyDTO `json:"company,omitempty"`
}

// NoteClientDTO cliente receptor del albarán.
type NoteClientDTO struct {
	Name    string      `json:"name"`
	CIF     string      `json:"cif"`
	Address *AddressDTO `json:"address,omitempty"`
}

// NoteProjectDTO proyecto del albarán.
type NoteProjectDTO struct {
	Name        string `json:"name"`
	ProjectCode string `json:"project_code,omitempty"`
	Code        string `json:"code,omitempty"`
}

// SignResponse respuesta de PATCH /api/deliverynote/sign/:id.
type SignResponse struct {
	Message string `json:"message"`
	SignURL string `json:"sign_url"`
}

// PDFResponse respuesta de GET /api/deliverynote/pdf/:id.
type PDFResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
}
