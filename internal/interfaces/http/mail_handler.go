package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
)

// MailHandler expone el envío genérico de correo (protegido).
type MailHandler struct {
	uc *usecase.MailUseCase
}

// NewMailHandler construye el handler.
func NewMailHandler(uc *usecase.MailUseCase) *MailHandler {
	return &MailHandler{uc: uc}
}

// Send POST /api/mail
func (h *MailHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Send(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AckResponse{Acknowledged: true, Message: "MAIL_SENT"})
}
