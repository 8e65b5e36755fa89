package http

import (
	"io"
	"strings"

	authHTTP "curiovault/internal/auth/adapter/http"
	"curiovault/internal/catalogue/domain/model"

	"github.com/gofiber/fiber/v2"
)

// readUpload pulls the multipart file out of the request. The field is named
// "image".
func readUpload(c *fiber.Ctx) (string, []byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil, err
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

// UploadImage handles POST /items/:id/images
func (h *CatalogueHTTPHandler) UploadImage(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return badRequest(c, "An image file is required")
	}

	image, err := h.images.Upload(c.Context(), authHTTP.UserID(c), c.Params("id"), filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// ListImages handles GET /items/:id/images
func (h *CatalogueHTTPHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.images.List(c.Context(), authHTTP.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"images": images})
}

// RepositionImage handles PUT /items/:id/images/:imageID/position
func (h *CatalogueHTTPHandler) RepositionImage(c *fiber.Ctx) error {
	var req struct {
		Position *int `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil || req.Position == nil {
		return badRequest(c, "A position is required")
	}

	images, err := h.images.Reposition(c.Context(), authHTTP.UserID(c), c.Params("imageID"), *req.Position)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"images": images})
}

// DeleteImage handles DELETE /images/:imageID
func (h *CatalogueHTTPHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.images.Delete(c.Context(), authHTTP.UserID(c), c.Params("imageID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ServeImage handles GET /images/:imageID/:variant
func (h *CatalogueHTTPHandler) ServeImage(c *fiber.Ctx) error {
	variant := model.ImageVariant(strings.TrimSuffix(c.Params("variant"), ".jpg"))

	file, err := h.images.OpenVariant(c.Context(), authHTTP.UserID(c), c.Params("imageID"), variant)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.SendStream(file)
}
