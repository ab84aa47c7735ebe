package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/services"
)

// medicalReport builds the report for the session account. When ok is false
// the response has already been written and err is what the handler returns.
func (handler *Handler) medicalReport(c *fiber.Ctx) (services.MedicalReport, bool, error) {
	account, ok := currentAccount(c)
	if !ok {
		return services.MedicalReport{}, false, apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	report, err := handler.reports.BuildMedicalReport(account)
	if err != nil {
		return services.MedicalReport{}, false, handler.respondServiceError(c, err, "failed to load records")
	}
	return report, true, nil
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("healthbook-medical-records-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
