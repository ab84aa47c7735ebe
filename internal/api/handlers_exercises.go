package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/services"
)

func (handler *Handler) ListExercises(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"exercises": models.DefaultExercises()})
}

// GetExercise returns one routine. An optional elapsed query (seconds) adds
// progress and clock fields for a running session.
func (handler *Handler) GetExercise(c *fiber.Ctx) error {
	exercise, ok := services.FindExercise(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "exercise not found")
	}

	elapsed := c.QueryInt("elapsed", 0)
	if elapsed < 0 {
		return apiFieldsError(c, fiber.StatusBadRequest, "invalid elapsed seconds", []string{"elapsed"})
	}
	if elapsed > exercise.DurationSeconds {
		elapsed = exercise.DurationSeconds
	}

	return c.JSON(fiber.Map{
		"exercise":       exercise,
		"elapsedSeconds": elapsed,
		"progress":       services.ExerciseProgress(elapsed, exercise.DurationSeconds),
		"elapsed":        services.FormatExerciseClock(elapsed),
		"remaining":      services.FormatExerciseClock(exercise.DurationSeconds - elapsed),
	})
}
