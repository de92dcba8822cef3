package entity

import "time"

// Roles válidos para User.
const (
	RoleUser     = "user"
	RoleAutonomo = "autonomo"
	RoleInvitado = "invitado"
)

// ValidRole indica si s es uno de los roles conocidos.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAutonomo || s == RoleInvitado
}

// Company datos de empresa embebidos en el usuario.
type Company struct {
	Name     string
	CIF      string
	Street   string
	Number   string
	Postal   string
	City     string
	Province string
}

// User representa una cuenta del sistema. Se crea sin verificar
// (Verified=false) y se activa con el código de un solo uso, o mediante el
// token de invitación si fue creada por otro usuario (role invitado).
type User struct {
	ID               string
	Email            string
	PasswordHash     string // bcrypt, nunca en claro después de persistir
	VerificationCode string // se limpia al verificar
	Verified         bool
	Role             string // user, autonomo, invitado
	Name             string
	Surname          string
	NIF              string
	Company          *Company
	LogoURL          string

	ResetToken   string
	ResetExpires *time.Time

	InvitationToken   string
	InvitationExpires *time.Time
	InvitedBy         string // ID del usuario que invitó

	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
	DeletedAt *time.Time
}

// CompanyForRole construye el perfil de empresa resultante de una
// actualización, según la variante de rol. Función total y pura:
//
//   - autonomo: la empresa refleja los datos personales (nombre y NIF del
//     usuario), y solo toma la dirección de la entrada.
//   - user / invitado: se fusiona la entrada sobre la empresa actual.
func CompanyForRole(u *User, in Company) Company {
	switch u.Role {
	case RoleAutonomo:
		return Company{
			Name:     u.Name,
			CIF:      u.NIF,
			Street:   in.Street,
			Number:   in.Number,
			Postal:   in.Postal,
			City:     in.City,
			Province: in.Province,
		}
	default:
		out := Company{}
		if u.Company != nil {
			out = *u.Company
		}
		merge(&out.Name, in.Name)
		merge(&out.CIF, in.CIF)
		merge(&out.Street, in.Street)
		merge(&out.Number, in.Number)
		merge(&out.Postal, in.Postal)
		merge(&out.City, in.City)
		merge(&out.Province, in.Province)
		return out
	}
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
