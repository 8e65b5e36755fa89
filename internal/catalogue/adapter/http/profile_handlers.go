package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /profile
func (h *CatalogueHTTPHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.Get(c.Context(), authHTTP.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PATCH /profile
func (h *CatalogueHTTPHandler) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return badRequest(c, "A username is required")
	}

	profile, err := h.profiles.SetUsername(c.Context(), authHTTP.UserID(c), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateAvatar handles PUT /profile/avatar
func (h *CatalogueHTTPHandler) UpdateAvatar(c *fiber.Ctx) error {
	_, data, err := readUpload(c)
	if err != nil {
		return badRequest(c, "An image file is required")
	}

	profile, err := h.profiles.SetAvatar(c.Context(), authHTTP.UserID(c), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetPublicProfile handles GET /users/:username
func (h *CatalogueHTTPHandler) GetPublicProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.GetPublic(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
