package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(started)),
		zap.String("request_id", requestID(c)),
	}
	switch {
	case status >= fiber.StatusInternalServerError:
		handler.logger.Error("request", fields...)
	case status >= fiber.StatusBadRequest:
		handler.logger.Info("request", fields...)
	default:
		handler.logger.Debug("request", fields...)
	}
	return err
}
