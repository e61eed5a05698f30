package repository

import (
	"context"
	"testing"

	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"
	"movie-recommendation/internal/testutil"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        *database.Database
	genres    GenreRepository
	movies    MovieRepository
	users     UserRepository
	watchlist WatchlistRepository
	reviews   ReviewRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDatabase(t)
	return &fixture{
		db:        db,
		genres:    NewGenreRepository(db),
		movies:    NewMovieRepository(db),
		users:     NewUserRepository(db),
		watchlist: NewWatchlistRepository(db),
		reviews:   NewReviewRepository(db),
	}
}

func (f *fixture) genre(t *testing.T, name string) *models.Genre {
	t.Helper()
	g := &models.Genre{Name: name}
	require.NoError(t, f.genres.Create(context.Background(), g))
	return g
}

func (f *fixture) movie(t *testing.T, title string, genreID uint, releaseDate string, rating float64) *models.Movie {
	t.Helper()
	m := &models.Movie{
		Title:       title,
		Description: title + " description",
		GenreID:     genreID,
		ReleaseDate: releaseDate,
		Rating:      rating,
	}
	require.NoError(t, f.movies.Create(context.Background(), m))
	return m
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, f.users.CreateWithProfile(context.Background(), u))
	return u
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}
