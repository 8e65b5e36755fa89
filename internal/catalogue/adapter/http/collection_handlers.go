package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"
	"curiovault/internal/catalogue/usecase"

	"github.com/gofiber/fiber/v2"
)

// CreateCollection handles POST /collections
func (h *CatalogueHTTPHandler) CreateCollection(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPublic    bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	collection, err := h.collections.Create(c.Context(), authHTTP.UserID(c), req.Name, req.Description, req.IsPublic)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(collection)
}

// ListCollections handles GET /collections
func (h *CatalogueHTTPHandler) ListCollections(c *fiber.Ctx) error {
	summaries, err := h.collections.ListOwn(c.Context(), authHTTP.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"collections": summaries})
}

// GetCollection handles GET /collections/:id
func (h *CatalogueHTTPHandler) GetCollection(c *fiber.Ctx) error {
	detail, err := h.collections.Get(c.Context(), authHTTP.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// UpdateCollection handles PATCH /collections/:id
func (h *CatalogueHTTPHandler) UpdateCollection(c *fiber.Ctx) error {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	collection, err := h.collections.Update(c.Context(), authHTTP.UserID(c), c.Params("id"),
		req.Name, req.Description, req.IsPublic)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(collection)
}

// DeleteCollection handles DELETE /collections/:id
func (h *CatalogueHTTPHandler) DeleteCollection(c *fiber.Ctx) error {
	if err := h.collections.Delete(c.Context(), authHTTP.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateField handles POST /collections/:id/fields
func (h *CatalogueHTTPHandler) CreateField(c *fiber.Ctx) error {
	var req usecase.FieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	field, err := h.fields.Create(c.Context(), authHTTP.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(field)
}

// UpdateField handles PATCH /fields/:id
func (h *CatalogueHTTPHandler) UpdateField(c *fiber.Ctx) error {
	var req usecase.FieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	field, err := h.fields.Update(c.Context(), authHTTP.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(field)
}

// DeleteField handles DELETE /fields/:id
func (h *CatalogueHTTPHandler) DeleteField(c *fiber.Ctx) error {
	if err := h.fields.Delete(c.Context(), authHTTP.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderFields handles PUT /collections/:id/fields/order
func (h *CatalogueHTTPHandler) ReorderFields(c *fiber.Ctx) error {
	var req struct {
		FieldIDs []string `json:"field_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields, err := h.fields.Reorder(c.Context(), authHTTP.UserID(c), c.Params("id"), req.FieldIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"fields": fields})
}
