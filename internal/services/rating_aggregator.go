package services

import (
	"context"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"
)

// RatingAggregator attaches the review average to movies at read time.
// Averages are never stored or cached: every call queries the reviews.
type RatingAggregator struct {
	reviews repository.ReviewRepository
}

func NewRatingAggregator(reviews repository.ReviewRepository) *RatingAggregator {
	return &RatingAggregator{reviews: reviews}
}

func (a *RatingAggregator) Attach(ctx context.Context, movies []models.Movie) ([]models.MovieResponse, error) {
	out := make([]models.MovieResponse, len(movies))
	if len(movies) == 0 {
		return out, nil
	}

	ids := make([]uint, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}

	rows, err := a.reviews.AverageRatings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate review ratings: %w", err)
	}

	averages := make(map[uint]float64, len(rows))
	for _, row := range rows {
		if row.Count > 0 {
			averages[row.MovieID] = row.Average
		}
	}

	for i, m := range movies {
		out[i] = models.MovieResponse{Movie: m}
		if avg, ok := averages[m.ID]; ok {
			avg := avg
			out[i].AverageRating = &avg
		}
	}
	return out, nil
}

func (a *RatingAggregator) AttachOne(ctx context.Context, movie *models.Movie) (*models.MovieResponse, error) {
	out, err := a.Attach(ctx, []models.Movie{*movie})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
