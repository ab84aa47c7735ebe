package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/services"
	"go.uber.org/zap"
)

// AuthRequired loads the active session, refreshes its account from the
// account store and stores it on the request. Handlers behind it read the
// owner from there, never from input.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	session, ok, err := handler.sessions.Current()
	if err != nil {
		handler.logger.Error("load session", zap.Error(err), zap.String("request_id", requestID(c)))
		return apiError(c, fiber.StatusInternalServerError, "failed to load session")
	}
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	account, err := handler.accounts.FindByGeneratedID(session.GeneratedID)
	if errors.Is(err, services.ErrAccountNotFound) {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load session")
	}

	c.Locals(contextAccountKey, account)
	return c.Next()
}
