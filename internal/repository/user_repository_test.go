package repository

import (
	"context"
	"testing"

	"movie-recommendation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateWithProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.user(t, "alice")
	assert.NotZero(t, u.ID)
	assert.Equal(t, int64(1), f.count(t, &models.UserProfile{}))

	err := f.users.CreateWithProfile(ctx, &models.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
	assert.Equal(t, int64(1), f.count(t, &models.User{}))
	assert.Equal(t, int64(1), f.count(t, &models.UserProfile{}))

	byName, err := f.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = f.users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepository_FavoriteGenres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	drama := f.genre(t, "Drama")
	scifi := f.genre(t, "Sci-Fi")
	u := f.user(t, "alice")

	profile, err := f.users.FindProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, profile.UserID)
	assert.NotNil(t, profile.FavoriteGenres)
	assert.Empty(t, profile.FavoriteGenres)

	profile, err = f.users.ReplaceFavoriteGenres(ctx, u.ID, []models.Genre{*scifi, *drama})
	require.NoError(t, err)
	require.Len(t, profile.FavoriteGenres, 2)
	assert.Equal(t, drama.ID, profile.FavoriteGenres[0].ID)

	ids, err := f.users.FavoriteGenreIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{drama.ID, scifi.ID}, ids)

	profile, err = f.users.ReplaceFavoriteGenres(ctx, u.ID, []models.Genre{*scifi})
	require.NoError(t, err)
	require.Len(t, profile.FavoriteGenres, 1)
	assert.Equal(t, "Sci-Fi", profile.FavoriteGenres[0].Name)

	profile, err = f.users.ReplaceFavoriteGenres(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, profile.FavoriteGenres)

	ids, err = f.users.FavoriteGenreIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUserRepository_FindProfileCreatesMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := &models.User{Username: "legacy", PasswordHash: "x"}
	require.NoError(t, f.db.Create(u).Error)

	profile, err := f.users.FindProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)
	assert.Equal(t, int64(1), f.count(t, &models.UserProfile{}))
}
