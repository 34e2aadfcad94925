package services

import (
	"errors"
	"fmt"

	"starwars/internal/models"
	"starwars/internal/repositories"
)

// PeopleService handles business logic related to characters.
type PeopleService struct {
	repo       repositories.PersonRepository
	planetRepo repositories.PlanetRepository
}

// NewPeopleService creates a new PeopleService.
func NewPeopleService(repo repositories.PersonRepository, planetRepo repositories.PlanetRepository) *PeopleService {
	return &PeopleService{
		repo:       repo,
		planetRepo: planetRepo,
	}
}

// GetAllPeople retrieves all characters.
func (s *PeopleService) GetAllPeople() ([]models.Person, error) {
	return s.repo.GetAll()
}

// GetPersonByID retrieves a single character by its ID.
func (s *PeopleService) GetPersonByID(id uint) (*models.Person, error) {
	return s.repo.GetByID(id)
}

// CreatePerson creates a new character. An unknown home planet is reported
// as repositories.ErrInvalidReference.
func (s *PeopleService) CreatePerson(person *models.Person) error {
	if person.HomeplanetID != nil {
		if _, err := s.planetRepo.GetByID(*person.HomeplanetID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("home planet %d: %w", *person.HomeplanetID, repositories.ErrInvalidReference)
			}
			return err
		}
	}
	return s.repo.Create(person)
}
