package dto

import "time"

// RegisterRequest body para POST /api/user/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest body para POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest body para PUT /api/user/validation.
type VerifyRequest struct {
	Code string `json:"code"`
}

// UpdatePersonalRequest body para PUT /api/user/personal.
type UpdatePersonalRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	NIF     string `json:"nif"`
}

// CompanyDTO empresa embebida en requests y responses.
type CompanyDTO struct {
	Name     string `json:"name,omitempty"`
	CIF      string `json:"cif,omitempty"`
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	Postal   string `json:"postal,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
}

// UpdateCompanyRequest body para PATCH /api/user/company.
type UpdateCompanyRequest struct {
	Company CompanyDTO `json:"company"`
}

// ForgotPasswordRequest body para POST /api/user/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest body para POST /api/user/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// InviteRequest body para POST /api/user/invite.
type InviteRequest struct {
	Email string `json:"email"`
}

// AcceptInvitationRequest body para POST /api/user/accept-invitation.
type AcceptInvitationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UserResponse usuario en respuestas (nunca incluye hash ni tokens).
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Verified  bool        `json:"verified"`
	Role      string      `json:"role"`
	Name      string      `json:"name,omitempty"`
	Surname   string      `json:"surname,omitempty"`
	NIF       string      `json:"nif,omitempty"`
	Company   *CompanyDTO `json:"company,omitempty"`
	LogoURL   string      `json:"logo_url,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TokenResponse token + usuario (registro y login).
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// LogoResponse respuesta de PATCH /api/user/logo.
type LogoResponse struct {
	Status  string `json:"status"`
	LogoURL string `json:"logo_url"`
}
