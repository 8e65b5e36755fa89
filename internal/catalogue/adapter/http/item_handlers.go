package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"
	"curiovault/internal/catalogue/usecase"

	"github.com/gofiber/fiber/v2"
)

// CreateItem handles POST /collections/:id/items
func (h *CatalogueHTTPHandler) CreateItem(c *fiber.Ctx) error {
	var req usecase.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.items.Create(c.Context(), authHTTP.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems handles GET /collections/:id/items
func (h *CatalogueHTTPHandler) ListItems(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)

	page, err := h.items.List(c.Context(), authHTTP.UserID(c), c.Params("id"), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// listParamsFromQuery pulls the shared list knobs out of the query string.
// filter may repeat.
func listParamsFromQuery(c *fiber.Ctx) usecase.ListParams {
	// filter may repeat, so walk the raw args instead of c.Queries()
	filters := make([]string, 0)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if string(key) == "filter" {
			filters = append(filters, string(value))
		}
	})

	return usecase.ListParams{
		Search:     c.Query("q"),
		RawFilters: filters,
		Sort:       c.Query("sort"),
		Offset:     c.QueryInt("offset", 0),
		Limit:      c.QueryInt("limit", 0),
	}
}

// GetItem handles GET /items/:id
func (h *CatalogueHTTPHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.items.Get(c.Context(), authHTTP.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// UpdateItem handles PATCH /items/:id
func (h *CatalogueHTTPHandler) UpdateItem(c *fiber.Ctx) error {
	var req usecase.ItemPatch
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.items.Update(c.Context(), authHTTP.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem handles DELETE /items/:id
func (h *CatalogueHTTPHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), authHTTP.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleHighlight handles POST /items/:id/highlight
func (h *CatalogueHTTPHandler) ToggleHighlight(c *fiber.Ctx) error {
	item, err := h.items.ToggleHighlight(c.Context(), authHTTP.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// SearchItems handles GET /search/items
func (h *CatalogueHTTPHandler) SearchItems(c *fiber.Ctx) error {
	page, err := h.items.Search(c.Context(), authHTTP.UserID(c),
		c.Query("q"), c.QueryInt("offset", 0), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
