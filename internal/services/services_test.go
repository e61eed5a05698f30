package services

import (
	"context"
	"io"
	"testing"
	"time"

	"movie-recommendation/internal/auth"
	"movie-recommendation/internal/config"
	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"
	"movie-recommendation/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	genreRepo     repository.GenreRepository
	movieRepo     repository.MovieRepository
	userRepo      repository.UserRepository
	watchlistRepo repository.WatchlistRepository
	reviewRepo    repository.ReviewRepository

	aggregator      *RatingAggregator
	genres          GenreService
	movies          MovieService
	watchlist       WatchlistService
	reviews         ReviewService
	recommendations RecommendationService
	profiles        ProfileService
	auth            AuthService
}

type recordingRemover struct {
	removed []string
}

func (r *recordingRemover) RemovePoster(_ context.Context, posterURL string) error {
	r.removed = append(r.removed, posterURL)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newStack(t *testing.T, posters PosterRemover) *stack {
	t.Helper()
	db := testutil.NewDatabase(t)
	log := quietLogger()

	s := &stack{
		genreRepo:     repository.NewGenreRepository(db),
		movieRepo:     repository.NewMovieRepository(db),
		userRepo:      repository.NewUserRepository(db),
		watchlistRepo: repository.NewWatchlistRepository(db),
		reviewRepo:    repository.NewReviewRepository(db),
	}
	s.aggregator = NewRatingAggregator(s.reviewRepo)
	s.genres = NewGenreService(s.genreRepo, log)
	s.movies = NewMovieService(s.movieRepo, s.genreRepo, s.aggregator, posters, log)
	s.watchlist = NewWatchlistService(s.watchlistRepo, s.movieRepo, s.aggregator)
	s.reviews = NewReviewService(s.reviewRepo, s.movieRepo)
	s.recommendations = NewRecommendationService(s.movieRepo, s.userRepo, s.aggregator)
	s.profiles = NewProfileService(s.userRepo, s.genreRepo)
	s.auth = NewAuthService(s.userRepo, auth.NewTokenManager(config.AuthConfig{
		JWTSecret:  "0123456789abcdef0123456789abcdef",
		Issuer:     "test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}), log)
	return s
}

func (s *stack) genre(t *testing.T, name string) *models.Genre {
	t.Helper()
	g, err := s.genres.CreateGenre(context.Background(), name)
	require.NoError(t, err)
	return g
}

func (s *stack) movie(t *testing.T, title string, genreID uint, rating float64) *models.MovieResponse {
	t.Helper()
	m, err := s.movies.CreateMovie(context.Background(), &models.Movie{
		Title:       title,
		Description: title,
		GenreID:     genreID,
		ReleaseDate: "2010-01-01",
		Rating:      rating,
	})
	require.NoError(t, err)
	return m
}

func (s *stack) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := s.auth.Register(context.Background(), username, "secret-password", "")
	require.NoError(t, err)
	return u
}

func TestRatingAggregator(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	g := s.genre(t, "Drama")
	reviewed := s.movie(t, "Reviewed", g.ID, 5)
	unreviewed := s.movie(t, "Unreviewed", g.ID, 5)
	alice := s.user(t, "alice")
	bob := s.user(t, "bob")

	assert.Nil(t, reviewed.AverageRating, "new movies have no average")

	_, err := s.reviews.AddReview(ctx, alice.ID, reviewed.ID, 7.0, nil)
	require.NoError(t, err)
	_, err = s.reviews.AddReview(ctx, bob.ID, reviewed.ID, 9.0, nil)
	require.NoError(t, err)

	got, err := s.movies.GetMovieByID(ctx, reviewed.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AverageRating)
	assert.InDelta(t, 8.0, *got.AverageRating, 1e-9)

	got, err = s.movies.GetMovieByID(ctx, unreviewed.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AverageRating)

	list, total, err := s.movies.ListMovies(ctx, models.MovieFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].AverageRating)
	assert.InDelta(t, 8.0, *list[0].AverageRating, 1e-9)
	assert.Nil(t, list[1].AverageRating)

	empty, err := s.aggregator.Attach(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMovieService_CreateAndUpdate(t *testing.T) {
	remover := &recordingRemover{}
	s := newStack(t, remover)
	ctx := context.Background()

	g := s.genre(t, "Drama")
	other := s.genre(t, "Comedy")

	_, err := s.movies.CreateMovie(ctx, &models.Movie{Title: "x", Description: "x", GenreID: 999, ReleaseDate: "2000-01-01"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "genre 999")

	m := s.movie(t, "Whiplash", g.ID, 8.46)
	assert.Equal(t, 8.5, m.Rating)

	updated, err := s.movies.UpdateMovie(ctx, m.ID, models.MovieUpdate{Rating: ptr(7.5)})
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.Rating)
	assert.Equal(t, "Whiplash", updated.Title)
	assert.Equal(t, g.ID, updated.GenreID)

	_, err = s.movies.UpdateMovie(ctx, m.ID, models.MovieUpdate{GenreID: ptr(uint(999))})
	assert.ErrorIs(t, err, models.ErrNotFound)

	moved, err := s.movies.UpdateMovie(ctx, m.ID, models.MovieUpdate{GenreID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "Comedy", moved.Genre.Name)

	_, err = s.movies.UpdateMovie(ctx, 999, models.MovieUpdate{Title: ptr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "movie 999")

	_, err = s.movies.UpdateMovie(ctx, 999, models.MovieUpdate{GenreID: ptr(uint(999))})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "movie 999", "a missing movie is reported before a missing genre")

	_, err = s.movies.UpdateMovie(ctx, m.ID, models.MovieUpdate{PosterURL: ptr("http://cdn/posters/a.jpg")})
	require.NoError(t, err)
	_, err = s.movies.UpdateMovie(ctx, m.ID, models.MovieUpdate{PosterURL: ptr("http://cdn/posters/b.jpg")})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://cdn/posters/a.jpg"}, remover.removed)

	require.NoError(t, s.movies.DeleteMovie(ctx, m.ID))
	assert.Equal(t, []string{"http://cdn/posters/a.jpg", "http://cdn/posters/b.jpg"}, remover.removed)
	assert.ErrorIs(t, s.movies.DeleteMovie(ctx, m.ID), models.ErrNotFound)
}

func TestGenreService_DeleteCascades(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	g := s.genre(t, "Drama")
	m := s.movie(t, "Whiplash", g.ID, 8.5)
	u := s.user(t, "alice")
	_, err := s.watchlist.AddToWatchlist(ctx, u.ID, m.ID)
	require.NoError(t, err)
	_, err = s.reviews.AddReview(ctx, u.ID, m.ID, 9, nil)
	require.NoError(t, err)

	require.NoError(t, s.genres.DeleteGenre(ctx, g.ID))

	_, err = s.movies.GetMovieByID(ctx, m.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	entries, err := s.watchlist.ListWatchlist(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, s.genres.DeleteGenre(ctx, g.ID), models.ErrNotFound)
	_, err = s.genres.RenameGenre(ctx, g.ID, "x")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWatchlistService(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	g := s.genre(t, "Drama")
	m := s.movie(t, "Whiplash", g.ID, 8.5)
	u := s.user(t, "alice")

	entry, err := s.watchlist.AddToWatchlist(ctx, u.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Whiplash", entry.Movie.Title)
	assert.Nil(t, entry.Movie.AverageRating)

	_, err = s.watchlist.AddToWatchlist(ctx, u.ID, m.ID)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)

	count, err := s.watchlistRepo.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = s.watchlist.AddToWatchlist(ctx, u.ID, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, s.watchlist.RemoveFromWatchlist(ctx, u.ID, m.ID))
	assert.ErrorIs(t, s.watchlist.RemoveFromWatchlist(ctx, u.ID, m.ID), models.ErrNotFound)
	assert.ErrorIs(t, s.watchlist.RemoveFromWatchlist(ctx, u.ID, 999), models.ErrNotFound)
}

func TestReviewService(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	g := s.genre(t, "Drama")
	m := s.movie(t, "Whiplash", g.ID, 8.5)
	alice := s.user(t, "alice")
	bob := s.user(t, "bob")

	_, err := s.reviews.AddReview(ctx, alice.ID, 999, 5, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)

	review, err := s.reviews.AddReview(ctx, alice.ID, m.ID, 8.25, ptr("tight"))
	require.NoError(t, err)
	assert.Equal(t, 8.3, review.Rating)

	_, err = s.reviews.AddReview(ctx, alice.ID, m.ID, 5, nil)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)

	_, err = s.reviews.UpdateReview(ctx, review.ID, bob.ID, 1, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.reviews.DeleteReview(ctx, review.ID, bob.ID), models.ErrNotFound)

	updated, err := s.reviews.UpdateReview(ctx, review.ID, alice.ID, 6, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.Rating)
	assert.Nil(t, updated.Comment)

	list, err := s.reviews.ListReviews(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = s.reviews.ListReviews(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, s.reviews.DeleteReview(ctx, review.ID, alice.ID))
}

func TestRecommendationService(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	drama := s.genre(t, "Drama")
	horror := s.genre(t, "Horror")
	var dramaIDs []uint
	for i := 0; i < 12; i++ {
		dramaIDs = append(dramaIDs, s.movie(t, "Drama", drama.ID, 7).ID)
	}
	s.movie(t, "Hereditary", horror.ID, 7.3)
	u := s.user(t, "alice")

	recs, err := s.recommendations.Recommend(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	_, err = s.profiles.SetFavoriteGenres(ctx, u.ID, []uint{drama.ID})
	require.NoError(t, err)
	_, err = s.watchlist.AddToWatchlist(ctx, u.ID, dramaIDs[0])
	require.NoError(t, err)

	recs, err = s.recommendations.Recommend(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, recs, RecommendationLimit)
	for _, m := range recs {
		assert.Equal(t, drama.ID, m.GenreID)
		assert.NotEqual(t, dramaIDs[0], m.ID)
	}
}

func TestProfileService_SetFavoriteGenres(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	drama := s.genre(t, "Drama")
	scifi := s.genre(t, "Sci-Fi")
	u := s.user(t, "alice")

	profile, err := s.profiles.SetFavoriteGenres(ctx, u.ID, []uint{scifi.ID, drama.ID, scifi.ID})
	require.NoError(t, err)
	require.Len(t, profile.FavoriteGenres, 2)

	_, err = s.profiles.SetFavoriteGenres(ctx, u.ID, []uint{drama.ID, 999})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "genre 999")

	profile, err = s.profiles.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, profile.FavoriteGenres, 2, "failed update leaves favorites untouched")

	profile, err = s.profiles.SetFavoriteGenres(ctx, u.ID, []uint{})
	require.NoError(t, err)
	assert.Empty(t, profile.FavoriteGenres)
}

func TestAuthService(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	u := s.user(t, "alice")
	assert.NotEqual(t, "secret-password", u.PasswordHash)

	_, err := s.auth.Register(ctx, "alice", "other", "")
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)

	_, err = s.auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, "nobody", "secret-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	pair, err := s.auth.Login(ctx, "alice", "secret-password")
	require.NoError(t, err)

	userID, err := s.auth.Authenticate(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)

	_, err = s.auth.Authenticate(ctx, pair.Refresh)
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	access, err := s.auth.RefreshAccessToken(ctx, pair.Refresh)
	require.NoError(t, err)
	userID, err = s.auth.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)

	_, err = s.auth.RefreshAccessToken(ctx, pair.Access)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 8.5, roundRating(8.46))
	assert.Equal(t, 8.3, roundRating(8.25))
	assert.Equal(t, 0.0, roundRating(0.04))
	assert.Equal(t, 10.0, roundRating(10))
}

func ptr[T any](v T) *T {
	return &v
}
