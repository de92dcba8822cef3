package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
	"github.com/albaranes/albaranes-api/internal/domain"
)

// UserHandler maneja las peticiones del perfil de la cuenta autenticada.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetProfile GET /api/user
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePersonal PUT /api/user/personal
func (h *UserHandler) UpdatePersonal(c *fiber.Ctx) error {
	var in dto.UpdatePersonalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePersonal(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCompany PATCH /api/user/company
func (h *UserHandler) UpdateCompany(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCompany(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLogo PATCH /api/user/logo (multipart, campo "image")
func (h *UserHandler) UpdateLogo(c *fiber.Ctx) error {
	data, filename, err := multipartImage(c)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.UpdateLogo(c.Context(), GetUserID(c), data, filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAccount DELETE /api/user?soft=false
// Sin query el borrado es lógico; soft=false elimina físicamente.
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	soft := c.Query("soft", "true") != "false"
	out, err := h.uc.DeleteAccount(c.Context(), GetUserID(c), soft)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// multipartImage extrae el archivo "image" de un form multipart.
func multipartImage(c *fiber.Ctx) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}
