package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formatos de una entrada de precio unitario (y de un albarán).
const (
	FormatHours    = "hours"
	FormatMaterial = "material"
)

// ValidFormat indica si s es "hours" o "material".
func ValidFormat(s string) bool {
	return s == FormatHours || s == FormatMaterial
}

// UnitPrice entrada de tarifa del proyecto (material u horas).
type UnitPrice struct {
	Format  string // material | hours
	Unit    string
	Concept string
	Price   decimal.Decimal // >= 0
}

// Project representa una obra/proyecto de un cliente del usuario.
// Invariantes:
//   - el cliente referenciado pertenece al mismo usuario;
//   - (UserID, ClientID, ProjectCode) es único entre proyectos no archivados
//     cuando ProjectCode no está vacío (unicidad sparse).
type Project struct {
	ID          string
	UserID      string
	ClientID    string
	Name        string
	ProjectCode string // clave de negocio opcional; vacío nunca colisiona
	Code        string // código interno informativo
	Address     *Address
	Begin       string
	End         string
	Notes       string
	IsActive    bool
	UnitPrices  []UnitPrice
	Amount      *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Deleted     bool
	DeletedAt   *time.Time
}

// PricesByFormat filtra las tarifas por formato ("material" u "hours").
// Con formato vacío o "all" devuelve todas.
func (p *Project) PricesByFormat(format string) []UnitPrice {
	if format == "" || format == "all" {
		return p.UnitPrices
	}
	out := make([]UnitPrice, 0, len(p.UnitPrices))
	for _, up := range p.UnitPrices {
		if up.Format == format {
			out = append(out, up)
		}
	}
	return out
}
