package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"
	"curiovault/internal/catalogue/usecase"

	"github.com/gofiber/fiber/v2"
)

// CreateTemplate handles POST /schema-templates
func (h *CatalogueHTTPHandler) CreateTemplate(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	template, err := h.templates.Create(c.Context(), authHTTP.UserID(c), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// ListTemplates handles GET /schema-templates
func (h *CatalogueHTTPHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.templates.ListOwn(c.Context(), authHTTP.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"templates": templates})
}

// GetTemplate handles GET /schema-templates/:id
func (h *CatalogueHTTPHandler) GetTemplate(c *fiber.Ctx) error {
	detail, err := h.templates.Get(c.Context(), authHTTP.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// UpdateTemplate handles PATCH /schema-templates/:id
func (h *CatalogueHTTPHandler) UpdateTemplate(c *fiber.Ctx) error {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	template, err := h.templates.Update(c.Context(), authHTTP.UserID(c), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(template)
}

// DeleteTemplate handles DELETE /schema-templates/:id
func (h *CatalogueHTTPHandler) DeleteTemplate(c *fiber.Ctx) error {
	if err := h.templates.Delete(c.Context(), authHTTP.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TemplateFromCollection handles POST /schema-templates/from-collection/:collectionID
func (h *CatalogueHTTPHandler) TemplateFromCollection(c *fiber.Ctx) error {
	detail, err := h.templates.FromCollection(c.Context(), authHTTP.UserID(c), c.Params("collectionID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// ApplyTemplate handles POST /collections/:id/apply-template/:templateID
func (h *CatalogueHTTPHandler) ApplyTemplate(c *fiber.Ctx) error {
	fields, err := h.templates.ApplyToCollection(c.Context(), authHTTP.UserID(c),
		c.Params("id"), c.Params("templateID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"fields": fields})
}

// CreateTemplateField handles POST /schema-templates/:id/fields
func (h *CatalogueHTTPHandler) CreateTemplateField(c *fiber.Ctx) error {
	var req usecase.FieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	field, err := h.templates.CreateField(c.Context(), authHTTP.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(field)
}

// UpdateTemplateField handles PATCH /schema-templates/template-fields/:fieldID
func (h *CatalogueHTTPHandler) UpdateTemplateField(c *fiber.Ctx) error {
	var req usecase.FieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	field, err := h.templates.UpdateField(c.Context(), authHTTP.UserID(c), c.Params("fieldID"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(field)
}

// DeleteTemplateField handles DELETE /schema-templates/template-fields/:fieldID
func (h *CatalogueHTTPHandler) DeleteTemplateField(c *fiber.Ctx) error {
	if err := h.templates.DeleteField(c.Context(), authHTTP.UserID(c), c.Params("fieldID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReplaceTemplateFields handles PUT /schema-templates/:id/fields
func (h *CatalogueHTTPHandler) ReplaceTemplateFields(c *fiber.Ctx) error {
	var req struct {
		Fields []usecase.FieldInput `json:"fields"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields, err := h.templates.ReplaceFields(c.Context(), authHTTP.UserID(c), c.Params("id"), req.Fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"fields": fields})
}

// ReorderTemplateFields handles PUT /schema-templates/:id/fields/order
func (h *CatalogueHTTPHandler) ReorderTemplateFields(c *fiber.Ctx) error {
	var req struct {
		FieldIDs []string `json:"field_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields, err := h.templates.ReorderFields(c.Context(), authHTTP.UserID(c), c.Params("id"), req.FieldIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"fields": fields})
}
