package http

import (
	"github.com/gofiber/fiber/v2"
)

// AdminStats handles GET /admin/stats
func (h *CatalogueHTTPHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// AdminListUsers handles GET /admin/users
func (h *CatalogueHTTPHandler) AdminListUsers(c *fiber.Ctx) error {
	page, err := h.admin.ListUsers(c.Context(), c.Query("q"),
		c.QueryInt("offset", 0), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// AdminDeleteUser handles DELETE /admin/users/:id
func (h *CatalogueHTTPHandler) AdminDeleteUser(c *fiber.Ctx) error {
	if err := h.admin.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminLockUser handles POST /admin/users/:id/lock
func (h *CatalogueHTTPHandler) AdminLockUser(c *fiber.Ctx) error {
	var req struct {
		Locked *bool `json:"locked"`
	}
	if err := c.BodyParser(&req); err != nil || req.Locked == nil {
		return badRequest(c, "A locked flag is required")
	}

	user, err := h.admin.LockUser(c.Context(), c.Params("id"), *req.Locked)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// AdminListCollections handles GET /admin/collections
func (h *CatalogueHTTPHandler) AdminListCollections(c *fiber.Ctx) error {
	page, err := h.admin.ListCollections(c.Context(),
		c.QueryInt("offset", 0), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// AdminDeleteCollection handles DELETE /admin/collections/:id
func (h *CatalogueHTTPHandler) AdminDeleteCollection(c *fiber.Ctx) error {
	if err := h.admin.DeleteCollection(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminSetFeaturedCollection handles POST /admin/featured-collection
func (h *CatalogueHTTPHandler) AdminSetFeaturedCollection(c *fiber.Ctx) error {
	var req struct {
		CollectionID string `json:"collection_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.CollectionID == "" {
		return badRequest(c, "A collection_id is required")
	}

	view, err := h.admin.SetFeaturedCollection(c.Context(), req.CollectionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// AdminSetFeaturedItems handles PUT /admin/featured-items
func (h *CatalogueHTTPHandler) AdminSetFeaturedItems(c *fiber.Ctx) error {
	var req struct {
		ItemIDs []string `json:"item_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	view, err := h.admin.SetFeaturedItems(c.Context(), req.ItemIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}
