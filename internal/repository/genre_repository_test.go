package repository

import (
	"context"
	"testing"

	"movie-recommendation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreRepository_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	drama := f.genre(t, "Drama")
	comedy := f.genre(t, "Comedy")

	all, err := f.genres.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Drama", all[0].Name)

	renamed, err := f.genres.Rename(ctx, drama.ID, "Dramatic")
	require.NoError(t, err)
	assert.Equal(t, "Dramatic", renamed.Name)

	found, err := f.genres.FindByID(ctx, drama.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dramatic", found.Name)

	some, err := f.genres.FindByIDs(ctx, []uint{comedy.ID, 999})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, comedy.ID, some[0].ID)

	_, err = f.genres.FindByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.genres.Rename(ctx, 999, "Nope")
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, f.genres.Delete(ctx, 999), models.ErrNotFound)
}

func TestGenreRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	drama := f.genre(t, "Drama")
	scifi := f.genre(t, "Sci-Fi")
	whiplash := f.movie(t, "Whiplash", drama.ID, "2014-10-10", 8.5)
	parasite := f.movie(t, "Parasite", drama.ID, "2019-05-30", 8.6)
	arrival := f.movie(t, "Arrival", scifi.ID, "2016-11-11", 7.9)
	u := f.user(t, "alice")

	for _, m := range []*models.Movie{whiplash, parasite, arrival} {
		require.NoError(t, f.watchlist.Create(ctx, &models.Watchlist{UserID: u.ID, MovieID: m.ID}))
		require.NoError(t, f.reviews.Create(ctx, &models.Review{UserID: u.ID, MovieID: m.ID, Rating: 7}))
	}
	_, err := f.users.ReplaceFavoriteGenres(ctx, u.ID, []models.Genre{*drama, *scifi})
	require.NoError(t, err)

	require.NoError(t, f.genres.Delete(ctx, drama.ID))

	assert.Equal(t, int64(1), f.count(t, &models.Genre{}))
	assert.Equal(t, int64(1), f.count(t, &models.Movie{}))
	assert.Equal(t, int64(1), f.count(t, &models.Watchlist{}))
	assert.Equal(t, int64(1), f.count(t, &models.Review{}))

	remaining, err := f.movies.FindByID(ctx, arrival.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arrival", remaining.Title)

	favorites, err := f.users.FavoriteGenreIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{scifi.ID}, favorites)
}
