package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/metrics"
	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/services"
	"go.uber.org/zap"
)

type loginInput struct {
	IdentityNumber string `json:"identityNumber"`
	Secret         string `json:"secret"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var candidate models.AccountCandidate
	if err := parseJSONBody(c, &candidate); err != nil {
		handler.metrics.Registrations.WithLabelValues(metrics.StatusInvalid).Inc()
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	candidate.IdentityNumber = services.NormalizeIdentityInput(candidate.IdentityNumber)

	account, err := handler.accounts.Register(candidate)
	if err != nil {
		handler.metrics.Registrations.WithLabelValues(registrationStatus(err)).Inc()
		return handler.respondServiceError(c, err, "failed to create account")
	}
	handler.metrics.Registrations.WithLabelValues(metrics.StatusSuccess).Inc()
	handler.logger.Info("account registered",
		zap.String("generated_id", account.GeneratedID),
		zap.String("role", account.Role),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"account": account,
		"qr":      services.BuildQRPayload(account, handler.now()),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := parseJSONBody(c, &input); err != nil {
		handler.metrics.Logins.WithLabelValues(metrics.StatusInvalid).Inc()
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	identity := services.NormalizeIdentityInput(input.IdentityNumber)

	now := handler.now()
	limiterKey := loginLimiterKey(c, identity)
	if wait, limited := handler.loginThrottle.blocked(limiterKey, now); limited {
		handler.metrics.Logins.WithLabelValues(metrics.StatusLimited).Inc()
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(wait)))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	account, err := handler.accounts.Authenticate(identity, input.Secret)
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationFailed) {
			handler.loginThrottle.recordFailure(limiterKey, now)
		}
		handler.metrics.Logins.WithLabelValues(metrics.StatusFailure).Inc()
		return handler.respondServiceError(c, err, "failed to authenticate")
	}
	handler.loginThrottle.clear(limiterKey)

	if err := handler.sessions.Start(account); err != nil {
		handler.metrics.Logins.WithLabelValues(metrics.StatusFailure).Inc()
		return handler.respondServiceError(c, err, "failed to create session")
	}
	handler.metrics.Logins.WithLabelValues(metrics.StatusSuccess).Inc()

	return c.JSON(fiber.Map{"account": account})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if err := handler.sessions.End(); err != nil {
		return handler.respondServiceError(c, err, "failed to end session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CurrentSession(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"account": account})
}

// QRPayload responds with the exact bytes a QR code for the account encodes.
func (handler *Handler) QRPayload(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	encoded, err := services.EncodeQRPayload(services.BuildQRPayload(account, handler.now()))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build qr payload")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(encoded)
}

func registrationStatus(err error) string {
	var missing *services.MissingRequiredFieldError
	switch {
	case errors.Is(err, services.ErrInvalidIdentity),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrDuplicateIdentity),
		errors.As(err, &missing):
		return metrics.StatusInvalid
	default:
		return metrics.StatusFailure
	}
}
