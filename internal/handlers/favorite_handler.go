package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"starwars/internal/middleware"
	"starwars/internal/models"
	"starwars/internal/services"
)

// FavoriteHandler handles HTTP requests for the caller's favorites. Every
// route sits behind the auth middleware.
type FavoriteHandler struct {
	service *services.FavoriteService
	auth    fiber.Handler
}

// NewFavoriteHandler creates a new FavoriteHandler guarded by auth.
func NewFavoriteHandler(service *services.FavoriteService, auth fiber.Handler) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		auth:    auth,
	}
}

// RegisterRoutes registers the favorite routes with the Fiber app.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/favorites", h.auth, h.HandleListFavorites)

	favRoutes := router.Group("/favorite", h.auth)
	favRoutes.Post("/planet/:id", h.add(models.PlanetTarget, "wrong planet id"))
	favRoutes.Delete("/planet/:id", h.remove(models.PlanetTarget, "wrong planet id", "favorite planet deleted"))
	favRoutes.Post("/people/:id", h.add(models.PersonTarget, "wrong char id"))
	favRoutes.Delete("/people/:id", h.remove(models.PersonTarget, "wrong character id", "favorite character deleted"))
}

// HandleListFavorites returns the caller's current favorites.
func (h *FavoriteHandler) HandleListFavorites(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	favs, err := h.service.ListFavorites(userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SerializeFavorites(favs))
}

func (h *FavoriteHandler) add(target func(uint) models.FavoriteTarget, notFoundMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserID(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		fav, err := h.service.AddFavorite(userID, target(id))
		if err != nil {
			return mapError(err, notFoundMsg, "already in favorites")
		}

		log.Info().Uint("user_id", userID).Stringer("target", target(id)).Msg("Favorite added")
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"msg":      "Favorite added",
			"favorite": fav.Serialize(),
		})
	}
}

func (h *FavoriteHandler) remove(target func(uint) models.FavoriteTarget, notFoundMsg, okMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := middleware.UserID(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		if _, err := h.service.RemoveFavorite(userID, target(id)); err != nil {
			return mapError(err, notFoundMsg, "")
		}

		log.Info().Uint("user_id", userID).Stringer("target", target(id)).Msg("Favorite removed")
		return c.JSON(fiber.Map{"msg": okMsg})
	}
}
