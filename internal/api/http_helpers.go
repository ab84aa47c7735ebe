package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/services"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Error: message})
}

func apiFieldsError(c *fiber.Ctx, status int, message string, fields []string) error {
	return c.Status(status).JSON(errorResponse{Error: message, Fields: fields})
}

// respondServiceError maps service failures onto HTTP statuses. Anything it
// does not recognise is logged and reported as fallback with a 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var missing *services.MissingRequiredFieldError
	var invalid *services.ValidationError

	switch {
	case errors.Is(err, services.ErrInvalidIdentity):
		return apiFieldsError(c, fiber.StatusBadRequest, "invalid identity number", []string{"identityNumber"})
	case errors.As(err, &missing):
		return apiFieldsError(c, fiber.StatusBadRequest, "missing required field", []string{missing.Field})
	case errors.As(err, &invalid):
		return apiFieldsError(c, fiber.StatusBadRequest, "validation failed", invalid.Fields)
	case errors.Is(err, services.ErrInvalidRole):
		return apiFieldsError(c, fiber.StatusBadRequest, "invalid role", []string{"role"})
	case errors.Is(err, services.ErrDuplicateIdentity):
		return apiError(c, fiber.StatusConflict, "identity number already registered")
	case errors.Is(err, services.ErrAuthenticationFailed):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrOwnerRequired):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	default:
		handler.logger.Error(fallback, zap.Error(err), zap.String("request_id", requestID(c)))
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func (handler *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}
	handler.logger.Error("unhandled error", zap.Error(err), zap.String("request_id", requestID(c)))
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

func parseJSONBody(c *fiber.Ctx, target any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	return c.BodyParser(target)
}
