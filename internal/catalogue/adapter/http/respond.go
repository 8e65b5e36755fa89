package http

import (
	"errors"

	authModel "curiovault/internal/auth/domain/model"
	"curiovault/internal/catalogue/domain/model"
	appErrors "curiovault/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors onto HTTP responses. Validation failures
// carry their per-field breakdown.
func respondError(c *fiber.Ctx, err error) error {
	var ve *appErrors.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ve.Errors,
		})
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErrors.HTTPStatus(appErr)).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}

	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrCollectionNotFound),
		errors.Is(err, model.ErrFieldNotFound),
		errors.Is(err, model.ErrItemNotFound),
		errors.Is(err, model.ErrImageNotFound),
		errors.Is(err, model.ErrTemplateNotFound),
		errors.Is(err, authModel.ErrUserNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, model.ErrNotOwner),
		errors.Is(err, model.ErrCannotStarOwn),
		errors.Is(err, authModel.ErrUsernameReserved):
		return fiber.StatusForbidden

	case errors.Is(err, model.ErrFieldNameTaken),
		errors.Is(err, model.ErrTemplateNameTaken),
		errors.Is(err, model.ErrTemplateFieldTaken),
		errors.Is(err, model.ErrSchemaNotEmpty),
		errors.Is(err, authModel.ErrUsernameTaken):
		return fiber.StatusConflict

	case errors.Is(err, model.ErrImageTooLarge):
		return fiber.StatusRequestEntityTooLarge

	case errors.Is(err, model.ErrImageTypeInvalid):
		return fiber.StatusUnsupportedMediaType

	case errors.Is(err, model.ErrCollectionNameEmpty),
		errors.Is(err, model.ErrItemNameEmpty),
		errors.Is(err, model.ErrItemNotDraft),
		errors.Is(err, model.ErrFieldNameEmpty),
		errors.Is(err, model.ErrFieldTypeInvalid),
		errors.Is(err, model.ErrOptionsNotAllowed),
		errors.Is(err, model.ErrOptionsRequired),
		errors.Is(err, model.ErrFieldOrderMismatch),
		errors.Is(err, model.ErrImagePositionInvalid),
		errors.Is(err, model.ErrTemplateNameEmpty),
		errors.Is(err, model.ErrNotPublic),
		errors.Is(err, authModel.ErrUsernameInvalid):
		return fiber.StatusUnprocessableEntity
	}

	return fiber.StatusInternalServerError
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
