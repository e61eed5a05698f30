package handlers

import (
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register a user
// @Description Create a user account. The password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account"
// @Success 201 {object} utils.StandardResponse "User created"
// @Failure 400 {object} utils.StandardResponse "Invalid body or username already exists"
// @Router /register/ [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	user, err := h.service.Register(c.UserContext(), req.Username, req.Password, req.Email)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to register user")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a refresh and access token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} utils.StandardResponse "Token pair"
// @Failure 401 {object} utils.StandardResponse "Invalid username or password"
// @Router /login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	pair, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to log in")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Logged in successfully", pair)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} utils.StandardResponse "New access token"
// @Failure 401 {object} utils.StandardResponse "Invalid or expired refresh token"
// @Router /token/refresh/ [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	access, err := h.service.RefreshAccessToken(c.UserContext(), req.Refresh)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to refresh token")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Token refreshed successfully", RefreshResponse{Access: access})
}
