package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albaranes/albaranes-api/internal/application/auth"
	"github.com/albaranes/albaranes-api/internal/application/dto"
)

// AuthHandler maneja las peticiones de identidad: registro, login,
// verificación, recuperación de contraseña e invitaciones.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/user/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login POST /api/user/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Verify PUT /api/user/validation (protegido)
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Verify(c.Context(), GetUserID(c), in.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword POST /api/user/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ForgotPassword(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	// Misma respuesta exista o no la cuenta.
	return c.JSON(dto.AckResponse{Acknowledged: true, Message: "RESET_EMAIL_SENT_IF_ACCOUNT_EXISTS"})
}

// ResetPassword POST /api/user/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ResetPassword(c.Context(), in.Token, in.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AckResponse{Acknowledged: true, Message: "PASSWORD_RESET_SUCCESSFULLY"})
}

// Invite POST /api/user/invite (protegido)
func (h *AuthHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.InviteGuest(c.Context(), GetUserID(c), in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AcceptInvitation POST /api/user/accept-invitation
func (h *AuthHandler) AcceptInvitation(c *fiber.Ctx) error {
	var in dto.AcceptInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AcceptInvitation(c.Context(), in.Token, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
