package services

import (
	"fmt"
	"math"

	"movie-recommendation/internal/models"
)

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d %w", entity, id, models.ErrNotFound)
}

// roundRating keeps one fractional digit, matching the numeric(3,1) columns.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
