package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"starwars/internal/models"
	"starwars/internal/services"
)

// PlanetHandler handles HTTP requests for planets.
type PlanetHandler struct {
	service  *services.PlanetService
	validate *validator.Validate
}

// NewPlanetHandler creates a new PlanetHandler.
func NewPlanetHandler(service *services.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the planet routes with the Fiber app.
func (h *PlanetHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/planets", h.HandleGetPlanets)
	router.Post("/planets", h.HandleCreatePlanet)
	router.Get("/planet/:id", h.HandleGetPlanetByID)
}

// CreatePlanetRequest is the body of POST /planets.
type CreatePlanetRequest struct {
	Name       *string `json:"name" validate:"required"`
	Diameter   *int    `json:"diameter" validate:"required"`
	Population *int    `json:"population" validate:"required"`
	Climate    *string `json:"climate" validate:"required"`
	Terrain    *string `json:"terrain" validate:"required"`
}

// HandleGetPlanets retrieves all planets.
func (h *PlanetHandler) HandleGetPlanets(c *fiber.Ctx) error {
	planets, err := h.service.GetAllPlanets()
	if err != nil {
		return err
	}
	return c.JSON(models.SerializePlanets(planets))
}

// HandleGetPlanetByID retrieves a single planet by its ID.
func (h *PlanetHandler) HandleGetPlanetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	planet, err := h.service.GetPlanetByID(id)
	if err != nil {
		return mapError(err, "wrong planet id", "")
	}
	return c.JSON(planet.Serialize())
}

// HandleCreatePlanet creates a new planet.
func (h *PlanetHandler) HandleCreatePlanet(c *fiber.Ctx) error {
	var req CreatePlanetRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	planet := models.Planet{
		Name:       *req.Name,
		Diameter:   *req.Diameter,
		Population: *req.Population,
		Climate:    *req.Climate,
		Terrain:    *req.Terrain,
	}
	if err := h.service.CreatePlanet(&planet); err != nil {
		return mapError(err, "wrong planet id", "planet already exists")
	}

	log.Info().Uint("planet_id", planet.ID).Str("name", planet.Name).Msg("Planet created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":    "planet added successfully",
		"planet": planet.Serialize(),
	})
}
