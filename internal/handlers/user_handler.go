package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"starwars/internal/models"
	"starwars/internal/services"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users", h.HandleGetUsers)
	router.Post("/users", h.HandleCreateUser)
}

// CreateUserRequest is the body of POST /users. is_active defaults to true.
type CreateUserRequest struct {
	Username *string `json:"username" validate:"required"`
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
	IsActive *bool   `json:"is_active"`
}

// HandleGetUsers retrieves all users with their favorites.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return err
	}
	return c.JSON(models.SerializeUsers(users))
}

// HandleCreateUser registers a new account.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	in := services.NewUser{
		Username: *req.Username,
		Email:    *req.Email,
		Password: *req.Password,
		IsActive: true,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}

	user, err := h.service.CreateUser(in)
	if err != nil {
		return mapError(err, "user not found", "username or email already registered")
	}

	log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("User created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "user added successfully",
		"user": user.Serialize(),
	})
}
