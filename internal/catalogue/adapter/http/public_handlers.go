package http

import (
	"github.com/gofiber/fiber/v2"
)

// Featured handles GET /featured
func (h *CatalogueHTTPHandler) Featured(c *fiber.Ctx) error {
	view, err := h.public.Featured(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// PublicCollection handles GET /public/collections/:id
func (h *CatalogueHTTPHandler) PublicCollection(c *fiber.Ctx) error {
	collection, err := h.public.GetCollection(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(collection)
}

// PublicItems handles GET /public/collections/:id/items
func (h *CatalogueHTTPHandler) PublicItems(c *fiber.Ctx) error {
	page, err := h.public.ListItems(c.Context(), c.Params("id"), listParamsFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// PublicItem handles GET /public/items/:id
func (h *CatalogueHTTPHandler) PublicItem(c *fiber.Ctx) error {
	item, err := h.public.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
