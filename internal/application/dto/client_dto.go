package dto

import "time"

// CreateClientRequest body para POST /api/client.
type CreateClientRequest struct {
	Name    string      `json:"name"`
	CIF     string      `json:"cif"`
	Address *AddressDTO `json:"address,omitempty"`
}

// UpdateClientRequest body para PUT /api/client/:id. Campos vacíos no se tocan.
type UpdateClientRequest struct {
	Name    string      `json:"name,omitempty"`
	CIF     string      `json:"cif,omitempty"`
	Address *AddressDTO `json:"address,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	CIF       string      `json:"cif"`
	Address   *AddressDTO `json:"address,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RestoredClientResponse respuesta de PATCH /api/client/restore/:id.
type RestoredClientResponse struct {
	Message string         `json:"message"`
	Client  ClientResponse `json:"client"`
}
