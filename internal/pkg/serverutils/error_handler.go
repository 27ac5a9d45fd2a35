package serverutils

import (
	"errors"

	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so services
// and repositories never touch fiber directly.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var verr *ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, apperror.ErrProjectNotFound),
			errors.Is(err, apperror.ErrHouseNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperror.ErrIncompleteRating),
			errors.Is(err, apperror.ErrUnknownEntry):
			status = fiber.StatusUnprocessableEntity
			message = err.Error()
		case errors.Is(err, apperror.ErrRoundAlreadyStarted),
			errors.Is(err, apperror.ErrProjectCompleted),
			errors.Is(err, apperror.ErrDuplicatePlacement):
			status = fiber.StatusConflict
			message = err.Error()
		case errors.As(err, &verr):
			status = fiber.StatusUnprocessableEntity
			message = verr.Error()
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		default:
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}

		return ctx.Status(status).JSON(FailResponse(message))
	}
}
