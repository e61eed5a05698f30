//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"movie-recommendation/internal/config"
	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newPostgresFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "movies",
			"POSTGRES_PASSWORD": "movies",
			"POSTGRES_DB":       "movies",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		_ = pg.Terminate(context.Background())
	})

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := database.Connect(config.DatabaseConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "movies",
		Password:        "movies",
		DBName:          "movies",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		QueryTimeout:    10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &fixture{
		db:        db,
		genres:    NewGenreRepository(db),
		movies:    NewMovieRepository(db),
		users:     NewUserRepository(db),
		watchlist: NewWatchlistRepository(db),
		reviews:   NewReviewRepository(db),
	}
}

func TestPostgres_EndToEnd(t *testing.T) {
	f := newPostgresFixture(t)
	ctx := context.Background()

	drama := f.genre(t, "Drama")
	scifi := f.genre(t, "Sci-Fi")
	dark := f.movie(t, "The Dark Knight", drama.ID, "2008-07-18", 9.0)
	f.movie(t, "Parasite", drama.ID, "2019-05-30", 8.0)
	f.movie(t, "Arrival", scifi.ID, "2016-11-11", 7.9)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	movies, total, err := f.movies.FindAll(ctx, models.MovieFilter{Title: "dARK", MinRating: ptr(8.0), MaxRating: ptr(9.0)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"The Dark Knight"}, titles(movies))

	require.NoError(t, f.watchlist.Create(ctx, &models.Watchlist{UserID: alice.ID, MovieID: dark.ID}))
	err = f.watchlist.Create(ctx, &models.Watchlist{UserID: alice.ID, MovieID: dark.ID})
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)

	require.NoError(t, f.reviews.Create(ctx, &models.Review{UserID: alice.ID, MovieID: dark.ID, Rating: 7.0}))
	require.NoError(t, f.reviews.Create(ctx, &models.Review{UserID: bob.ID, MovieID: dark.ID, Rating: 9.0}))
	averages, err := f.reviews.AverageRatings(ctx, []uint{dark.ID})
	require.NoError(t, err)
	require.Len(t, averages, 1)
	assert.InDelta(t, 8.0, averages[0].Average, 1e-9)

	_, err = f.users.ReplaceFavoriteGenres(ctx, alice.ID, []models.Genre{*drama})
	require.NoError(t, err)
	recs, err := f.movies.FindRecommended(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Parasite"}, titles(recs))

	require.NoError(t, f.genres.Delete(ctx, drama.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Movie{}))
	assert.Equal(t, int64(0), f.count(t, &models.Watchlist{}))
	assert.Equal(t, int64(0), f.count(t, &models.Review{}))
}
