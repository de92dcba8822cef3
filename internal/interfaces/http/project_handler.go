package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albaranes/albaranes-api/internal/application/dto"
	"github.com/albaranes/albaranes-api/internal/application/usecase"
)

// ProjectHandler maneja las peticiones HTTP de proyectos (protegido).
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create POST /api/project
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/project?sort=asc|desc
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c), c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListArchived GET /api/project/archived
func (h *ProjectHandler) ListArchived(c *fiber.Ctx) error {
	out, err := h.uc.ListArchived(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListArchivedByClient GET /api/project/archived/:client
func (h *ProjectHandler) ListArchivedByClient(c *fiber.Ctx) error {
	out, err := h.uc.ListArchivedByClient(c.Context(), GetUserID(c), c.Params("client"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/project/one/:id?prices=material|hours|all
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"), c.Query("prices"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByClient GET /api/project/:client?sort=asc|desc
func (h *ProjectHandler) ListByClient(c *fiber.Ctx) error {
	out, err := h.uc.ListByClient(c.Context(), GetUserID(c), c.Params("client"), c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByClient GET /api/project/:client/:id
func (h *ProjectHandler) GetByClient(c *fiber.Ctx) error {
	out, err := h.uc.GetByClientAndID(c.Context(), GetUserID(c), c.Params("client"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/project/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/project/:id?hard=true
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	hard := c.Query("hard") == "true"
	out, err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id"), hard)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive PATCH /api/project/archive/:id
func (h *ProjectHandler) Archive(c *fiber.Ctx) error {
	out, err := h.uc.Archive(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Restore PATCH /api/project/restore/:id
func (h *ProjectHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activate PATCH /api/project/activate/:id
func (h *ProjectHandler) Activate(c *fiber.Ctx) error {
	var in dto.ActivateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Activate(c.Context(), GetUserID(c), c.Params("id"), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePrices PATCH /api/project/prices/:id
func (h *ProjectHandler) UpdatePrices(c *fiber.Ctx) error {
	var in dto.UpdatePricesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePrices(c.Context(), GetUserID(c), c.Params("id"), in.Prices)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAmount PATCH /api/project/amount/:id
func (h *ProjectHandler) UpdateAmount(c *fiber.Ctx) error {
	var in dto.UpdateAmountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateAmount(c.Context(), GetUserID(c), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
