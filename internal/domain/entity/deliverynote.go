package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryNote (albarán) registra horas o material entregados en un proyecto.
// La cadena de propiedad es estricta: la nota referencia usuario, cliente y
// proyecto, y los tres deben ser consistentes entre sí (el proyecto pertenece
// al cliente y el cliente al usuario).
//
// Una vez firmada (IsSigned=true) la transición es terminal: no se puede
// volver a "sin firmar" y el borrado físico queda prohibido.
type DeliveryNote struct {
	ID        string
	UserID    string
	ClientID  string
	ProjectID string

	Format   string // hours | material
	WorkDate time.Time

	Description string
	Hours       *decimal.Decimal // requerido si Format=hours, >= 0.1
	Quantity    *decimal.Decimal // requerido si Format=material, >= 0

	SignURL  string // URL de la imagen de firma en el pinning service
	IsSigned bool

	ObserverName string
	ObserverNIF  string
	Observations string

	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
	DeletedAt *time.Time
}

var minHours = decimal.NewFromFloat(0.1)

// ValidateMeasure comprueba que exactamente el campo de medida que corresponde
// al formato está presente y dentro de rango.
func (n *DeliveryNote) ValidateMeasure() bool {
	switch n.Format {
	case FormatHours:
		return n.Hours != nil && n.Quantity == nil && n.Hours.GreaterThanOrEqual(minHours)
	case FormatMaterial:
		return n.Quantity != nil && n.Hours == nil && !n.Quantity.IsNegative()
	default:
		return false
	}
}
