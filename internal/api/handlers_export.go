package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/services"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (handler *Handler) MedicalReport(c *fiber.Ctx) error {
	report, ok, err := handler.medicalReport(c)
	if !ok {
		return err
	}
	return c.JSON(report)
}

func (handler *Handler) ExportMedicalCSV(c *fiber.Ctx) error {
	report, ok, err := handler.medicalReport(c)
	if !ok {
		return err
	}

	var output bytes.Buffer
	if err := services.WriteMedicalCSV(&output, report); err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.now().In(handler.location), "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportMedicalJSON(c *fiber.Ctx) error {
	report, ok, err := handler.medicalReport(c)
	if !ok {
		return err
	}

	var output bytes.Buffer
	if err := services.WriteMedicalJSON(&output, report); err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(handler.now().In(handler.location), "json"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportMedicalXLSX(c *fiber.Ctx) error {
	report, ok, err := handler.medicalReport(c)
	if !ok {
		return err
	}

	content, err := services.BuildMedicalXLSX(report)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, mimeXLSX, buildExportFilename(handler.now().In(handler.location), "xlsx"))
	return c.Send(content)
}
