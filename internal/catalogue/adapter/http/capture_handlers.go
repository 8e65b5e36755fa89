package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"

	"github.com/gofiber/fiber/v2"
)

// CaptureItem handles POST /capture/collections/:id/items
func (h *CatalogueHTTPHandler) CaptureItem(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return badRequest(c, "An image file is required")
	}

	result, err := h.capture.CaptureItem(c.Context(), authHTTP.UserID(c), c.Params("id"), filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// CaptureImage handles POST /capture/items/:id/images
func (h *CatalogueHTTPHandler) CaptureImage(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return badRequest(c, "An image file is required")
	}

	image, err := h.capture.AddImage(c.Context(), authHTTP.UserID(c), c.Params("id"), filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// CaptureSession handles GET /capture/collections/:id/session
func (h *CatalogueHTTPHandler) CaptureSession(c *fiber.Ctx) error {
	session, err := h.capture.Session(c.Context(), authHTTP.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}
