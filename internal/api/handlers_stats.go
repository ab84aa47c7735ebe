package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) CycleStats(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.stats.BuildCycleSummary(account.GeneratedID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load stats")
	}
	return c.JSON(summary)
}

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.stats.BuildDashboard(account.GeneratedID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load dashboard")
	}
	return c.JSON(fiber.Map{
		"account": account,
		"summary": summary,
	})
}
