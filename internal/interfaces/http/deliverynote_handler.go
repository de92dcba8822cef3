package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
	"github.com/albaranes/albaranes-api/internal/domain"
)

// DeliveryNoteHandler maneja las peticiones HTTP de albaranes (protegido).
type DeliveryNoteHandler struct {
	uc *usecase.DeliveryNoteUseCase
}

// NewDeliveryNoteHandler construye el handler.
func NewDeliveryNoteHandler(uc *usecase.DeliveryNoteUseCase) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{uc: uc}
}

// Create POST /api/deliverynote
func (h *DeliveryNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/deliverynote
func (h *DeliveryNoteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/deliverynote/:id
func (h *DeliveryNoteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/deliverynote/:id?hard=true
// Los albaranes no se archivan: sin hard=true la petición es inválida, y una
// nota firmada no puede borrarse nunca.
func (h *DeliveryNoteHandler) Delete(c *fiber.Ctx) error {
	hard := c.Query("hard") == "true"
	out, err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id"), hard)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sign PATCH /api/deliverynote/sign/:id (multipart, campo "image")
func (h *DeliveryNoteHandler) Sign(c *fiber.Ctx) error {
	data, filename, err := multipartImage(c)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.Sign(c.Context(), GetUserID(c), c.Params("id"), data, filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GeneratePDF GET /api/deliverynote/pdf/:id
func (h *DeliveryNoteHandler) GeneratePDF(c *fiber.Ctx) error {
	out, err := h.uc.GeneratePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
