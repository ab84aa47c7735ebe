package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/metrics"
	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/services"
)

func (handler *Handler) ListMedicalRecords(c *fiber.Ctx) error {
	return listRecords(handler, c, handler.records.ListMedicalRecords)
}

func (handler *Handler) AppendMedicalRecord(c *fiber.Ctx) error {
	return appendRecord(handler, c, models.KindMedical, handler.records.AppendMedicalRecord)
}

func (handler *Handler) ListMenstrualEntries(c *fiber.Ctx) error {
	return listRecords(handler, c, handler.records.ListMenstrualEntries)
}

func (handler *Handler) AppendMenstrualEntry(c *fiber.Ctx) error {
	return appendRecord(handler, c, models.KindMenstrual, handler.records.AppendMenstrualEntry)
}

func (handler *Handler) ListPregnancyEntries(c *fiber.Ctx) error {
	return listRecords(handler, c, handler.records.ListPregnancyEntries)
}

func (handler *Handler) AppendPregnancyEntry(c *fiber.Ctx) error {
	return appendRecord(handler, c, models.KindPregnancy, handler.records.AppendPregnancyEntry)
}

func listRecords[T any](handler *Handler, c *fiber.Ctx, list func(string) ([]T, error)) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	records, err := list(account.GeneratedID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load records")
	}
	return c.JSON(fiber.Map{"records": records, "total": len(records)})
}

// appendRecord decodes the body into a fresh T. Identifiers and timestamps in
// the body are ignored; the store assigns them.
func appendRecord[T any](handler *Handler, c *fiber.Ctx, kind models.RecordKind, add func(string, T) (T, error)) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var candidate T
	if err := parseJSONBody(c, &candidate); err != nil {
		handler.metrics.RecordAppends.WithLabelValues(string(kind), metrics.StatusInvalid).Inc()
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := add(account.GeneratedID, candidate)
	if err != nil {
		status := metrics.StatusFailure
		var invalid *services.ValidationError
		if errors.As(err, &invalid) {
			status = metrics.StatusInvalid
		}
		handler.metrics.RecordAppends.WithLabelValues(string(kind), status).Inc()
		return handler.respondServiceError(c, err, "failed to save record")
	}
	handler.metrics.RecordAppends.WithLabelValues(string(kind), metrics.StatusSuccess).Inc()

	return c.Status(fiber.StatusCreated).JSON(record)
}
