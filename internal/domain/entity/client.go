package entity

import "time"

// Address dirección postal embebida (clientes y proyectos).
type Address struct {
	Street   string
	Number   string
	Postal   string
	City     string
	Province string
}

// Client representa un cliente final de un usuario.
// Invariante: (UserID, CIF) es único entre clientes no archivados del mismo
// usuario; usuarios distintos pueden compartir CIF.
type Client struct {
	ID        string
	UserID    string
	Name      string
	CIF       string
	Address   *Address
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
	DeletedAt *time.Time
}
