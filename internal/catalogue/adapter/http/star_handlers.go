package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"
	"curiovault/internal/catalogue/domain/model"

	"github.com/gofiber/fiber/v2"
)

// StarCollection handles PUT /collections/:id/star
func (h *CatalogueHTTPHandler) StarCollection(c *fiber.Ctx) error {
	return h.star(c, model.StarTargetCollection, true)
}

// UnstarCollection handles DELETE /collections/:id/star
func (h *CatalogueHTTPHandler) UnstarCollection(c *fiber.Ctx) error {
	return h.star(c, model.StarTargetCollection, false)
}

// StarItem handles PUT /items/:id/star
func (h *CatalogueHTTPHandler) StarItem(c *fiber.Ctx) error {
	return h.star(c, model.StarTargetItem, true)
}

// UnstarItem handles DELETE /items/:id/star
func (h *CatalogueHTTPHandler) UnstarItem(c *fiber.Ctx) error {
	return h.star(c, model.StarTargetItem, false)
}

func (h *CatalogueHTTPHandler) star(c *fiber.Ctx, targetType model.StarTargetType, add bool) error {
	callerID := authHTTP.UserID(c)
	targetID := c.Params("id")

	var (
		state *model.StarState
		err   error
	)
	if add {
		state, err = h.stars.Star(c.Context(), callerID, targetType, targetID)
	} else {
		state, err = h.stars.Unstar(c.Context(), callerID, targetType, targetID)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}
