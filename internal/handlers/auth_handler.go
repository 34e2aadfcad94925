package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"starwars/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// A missing field is just another failed login.
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, msgWrongCredentials)
	}

	token, user, err := h.authService.LoginUser(*req.Username, *req.Password)
	if err != nil {
		log.Info().Str("username", *req.Username).Err(err).Msg("Login failed")
		return mapError(err, msgWrongCredentials, "")
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"identity": user.Serialize(),
	})
}
