package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/models"
)

const (
	contextAccountKey   = "current_account"
	contextRequestIDKey = "request_id"
)

func currentAccount(c *fiber.Ctx) (models.Account, bool) {
	account, ok := c.Locals(contextAccountKey).(models.Account)
	return account, ok
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(contextRequestIDKey).(string)
	return value
}
