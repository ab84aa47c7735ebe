package services

import (
	"fmt"

	"github.com/terraincognita07/healthbook/internal/models"
)

func FindExercise(id string) (models.Exercise, bool) {
	for _, exercise := range models.DefaultExercises() {
		if exercise.ID == id {
			return exercise, true
		}
	}
	return models.Exercise{}, false
}

// ExerciseProgress is the completed share of a routine in percent, clamped to
// [0, 100].
func ExerciseProgress(elapsedSeconds int, durationSeconds int) float64 {
	if durationSeconds <= 0 || elapsedSeconds <= 0 {
		return 0
	}
	progress := float64(elapsedSeconds) / float64(durationSeconds) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

func FormatExerciseClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
