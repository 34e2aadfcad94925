package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"starwars/internal/models"
	"starwars/internal/services"
)

// PeopleHandler handles HTTP requests for characters.
type PeopleHandler struct {
	service  *services.PeopleService
	validate *validator.Validate
}

// NewPeopleHandler creates a new PeopleHandler.
func NewPeopleHandler(service *services.PeopleService) *PeopleHandler {
	return &PeopleHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the character routes with the Fiber app.
func (h *PeopleHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/people", h.HandleGetPeople)
	router.Post("/people", h.HandleCreatePerson)
	router.Get("/people/:id", h.HandleGetPersonByID)
}

// CreatePersonRequest is the body of POST /people.
type CreatePersonRequest struct {
	Name         *string `json:"name" validate:"required"`
	HairColor    *string `json:"hair_color" validate:"required"`
	HomeplanetID *uint   `json:"homeplanet_id"`
}

// HandleGetPeople retrieves all characters.
func (h *PeopleHandler) HandleGetPeople(c *fiber.Ctx) error {
	people, err := h.service.GetAllPeople()
	if err != nil {
		return err
	}
	return c.JSON(models.SerializePeople(people))
}

// HandleGetPersonByID retrieves a single character by its ID.
func (h *PeopleHandler) HandleGetPersonByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	person, err := h.service.GetPersonByID(id)
	if err != nil {
		return mapError(err, "wrong character id", "")
	}
	return c.JSON(person.Serialize())
}

// HandleCreatePerson creates a new character.
func (h *PeopleHandler) HandleCreatePerson(c *fiber.Ctx) error {
	var req CreatePersonRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	person := models.Person{
		Name:         *req.Name,
		HairColor:    req.HairColor,
		HomeplanetID: req.HomeplanetID,
	}
	if err := h.service.CreatePerson(&person); err != nil {
		return mapError(err, "wrong planet id", "character already exists")
	}

	log.Info().Uint("person_id", person.ID).Str("name", person.Name).Msg("Character created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":       "char added successfully",
		"character": person.Serialize(),
	})
}
