package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrNotFound cubre a la vez "no existe", "está archivado" y "pertenece a otro
// usuario": el API nunca distingue existencia de propiedad para no filtrar
// información entre cuentas.
var (
	ErrNotFound     = errors.New("recurso no encontrado o no autorizado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUpstream     = errors.New("fallo en servicio externo")
)

// Conflictos concretos. Todos envuelven ErrConflict para que los handlers
// puedan clasificar con errors.Is y a la vez emitir un código estable.
var (
	ErrEmailExists       = conflict("EMAIL_ALREADY_EXISTS")
	ErrClientCIFExists   = conflict("CLIENT_CIF_ALREADY_EXISTS_FOR_USER")
	ErrProjectCodeExists = conflict("PROJECT_CODE_ALREADY_EXISTS_FOR_CLIENT")
	ErrNoteSigned        = conflict("DELIVERY_NOTE_SIGNED_CANNOT_BE_DELETED")
)

// ConflictError conflicto de clave compuesta o de transición de estado,
// con código estable legible por máquina.
type ConflictError struct {
	Code string
}

func (e *ConflictError) Error() string { return e.Code }

// Unwrap permite errors.Is(err, ErrConflict).
func (e *ConflictError) Unwrap() error { return ErrConflict }

func conflict(code string) *ConflictError {
	return &ConflictError{Code: code}
}

// ConflictCode devuelve el código estable si err es un conflicto concreto,
// o "CONFLICT" para un ErrConflict genérico.
func ConflictCode(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return "CONFLICT"
}
