package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))
	app.Get("/favicon.ico", sendNoContent)

	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/session", handler.AuthRequired, handler.CurrentSession)
	api.Get("/qr", handler.AuthRequired, handler.QRPayload)

	records := api.Group("/records", handler.AuthRequired)
	records.Get("/medical", handler.ListMedicalRecords)
	records.Post("/medical", handler.AppendMedicalRecord)
	records.Get("/menstrual", handler.ListMenstrualEntries)
	records.Post("/menstrual", handler.AppendMenstrualEntry)
	records.Get("/pregnancy", handler.ListPregnancyEntries)
	records.Post("/pregnancy", handler.AppendPregnancyEntry)

	api.Get("/stats/cycle", handler.AuthRequired, handler.CycleStats)
	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)
	api.Get("/report/medical", handler.AuthRequired, handler.MedicalReport)

	export := api.Group("/export/medical", handler.AuthRequired)
	export.Get("/csv", handler.ExportMedicalCSV)
	export.Get("/json", handler.ExportMedicalJSON)
	export.Get("/xlsx", handler.ExportMedicalXLSX)

	api.Get("/exercises", handler.ListExercises)
	api.Get("/exercises/:id", handler.GetExercise)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
