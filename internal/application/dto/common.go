package dto

// ErrorResponse cuerpo de error HTTP con código estable legible por máquina.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AckResponse respuesta de confirmación sin payload.
type AckResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message,omitempty"`
}

// StatusResponse respuesta de operaciones de borrado/archivado.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AddressDTO dirección postal en requests y responses.
type AddressDTO struct {
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	Postal   string `json:"postal,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
}
