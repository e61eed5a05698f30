package routes

import (
	"movie-recommendation/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Genre          *handlers.GenreHandler
	Movie          *handlers.MovieHandler
	Poster         *handlers.PosterHandler
	Review         *handlers.ReviewHandler
	Watchlist      *handlers.WatchlistHandler
	Recommendation *handlers.RecommendationHandler
	Profile        *handlers.ProfileHandler
}

// Setup mounts the API. Routing is not strict, so every path is also
// reachable with a trailing slash.
func Setup(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	// Public routes - account and tokens
	app.Post("/register", h.Auth.Register)
	app.Post("/login", h.Auth.Login)
	app.Post("/token/refresh", h.Auth.Refresh)

	genres := app.Group("/genres", requireAuth)
	{
		genres.Get("/", h.Genre.ListGenres)
		genres.Post("/", h.Genre.CreateGenre)
		genres.Put("/:id", h.Genre.UpdateGenre)
		genres.Delete("/:id", h.Genre.DeleteGenre)
	}

	movies := app.Group("/movies", requireAuth)
	{
		movies.Get("/", h.Movie.GetAllMovies)
		movies.Post("/", h.Movie.CreateMovie)
		movies.Get("/:id", h.Movie.GetMovieByID)
		movies.Put("/:id", h.Movie.UpdateMovie)
		movies.Delete("/:id", h.Movie.DeleteMovie)

		movies.Get("/:id/reviews", h.Review.ListReviews)
		movies.Post("/:id/reviews", h.Review.CreateReview)

		movies.Get("/:id/poster/presign", h.Poster.GetPresignedURL)
	}

	reviews := app.Group("/reviews", requireAuth)
	{
		reviews.Put("/:id", h.Review.UpdateReview)
		reviews.Delete("/:id", h.Review.DeleteReview)
	}

	watchlist := app.Group("/watchlist", requireAuth)
	{
		watchlist.Get("/", h.Watchlist.GetWatchlist)
		watchlist.Post("/", h.Watchlist.AddToWatchlist)
		watchlist.Delete("/:movie_id", h.Watchlist.RemoveFromWatchlist)
	}

	app.Get("/recommendations", requireAuth, h.Recommendation.GetRecommendations)

	profile := app.Group("/profile", requireAuth)
	{
		profile.Get("/", h.Profile.GetProfile)
		profile.Put("/favorite-genres", h.Profile.SetFavoriteGenres)
	}
}
