// Package server assembles the fiber application from configuration and a
// database handle.
package server

import (
	"fmt"
	"time"

	"movie-recommendation/internal/auth"
	"movie-recommendation/internal/config"
	"movie-recommendation/internal/database"
	"movie-recommendation/internal/handlers"
	"movie-recommendation/internal/middleware"
	"movie-recommendation/internal/repository"
	"movie-recommendation/internal/routes"
	"movie-recommendation/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

const (
	serviceName    = "movie-recommendation"
	serviceVersion = "1.0.0"
)

// Options tune New. The zero value serves the API without poster storage
// and with request logging enabled.
type Options struct {
	// Posters is nil when object storage is not configured.
	Posters *services.PosterService
	// DisableRequestLog turns off the per-request access log line.
	DisableRequestLog bool
}

// New wires repositories, services and handlers on top of db and returns the
// ready-to-listen application.
func New(cfg *config.Config, db *database.Database, log *logrus.Logger, opts Options) (*fiber.App, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	tokens := auth.NewTokenManager(cfg.Auth)

	genreRepo := repository.NewGenreRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	userRepo := repository.NewUserRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	aggregator := services.NewRatingAggregator(reviewRepo)

	var posterRemover services.PosterRemover
	var posterPresigner handlers.PosterPresigner
	if opts.Posters != nil {
		posterRemover = opts.Posters
		posterPresigner = opts.Posters
	}

	authService := services.NewAuthService(userRepo, tokens, log)
	genreService := services.NewGenreService(genreRepo, log)
	movieService := services.NewMovieService(movieRepo, genreRepo, aggregator, posterRemover, log)
	watchlistService := services.NewWatchlistService(watchlistRepo, movieRepo, aggregator)
	reviewService := services.NewReviewService(reviewRepo, movieRepo)
	recommendationService := services.NewRecommendationService(movieRepo, userRepo, aggregator)
	profileService := services.NewProfileService(userRepo, genreRepo)

	h := routes.Handlers{
		Auth:           handlers.NewAuthHandler(authService, log),
		Genre:          handlers.NewGenreHandler(genreService, log),
		Movie:          handlers.NewMovieHandler(movieService, log),
		Poster:         handlers.NewPosterHandler(posterPresigner, movieService, log),
		Review:         handlers.NewReviewHandler(reviewService, log),
		Watchlist:      handlers.NewWatchlistHandler(watchlistService, log),
		Recommendation: handlers.NewRecommendationHandler(recommendationService, log),
		Profile:        handlers.NewProfileHandler(profileService, log),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Movie Recommendation API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app, opts)

	app.Get("/health", healthCheckHandler(db))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, h, middleware.RequireAuth(authService, log))

	return app, nil
}

func setupMiddleware(app *fiber.App, opts Options) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	if !opts.DisableRequestLog {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   serviceName,
			"version":   serviceVersion,
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		status := "error"
		if code >= 500 {
			status = "fail"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":  status,
			"code":    code,
			"message": message,
		})
	}
}
