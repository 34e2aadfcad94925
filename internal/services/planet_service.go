package services

import (
	"starwars/internal/models"
	"starwars/internal/repositories"
)

// PlanetService handles business logic related to planets.
type PlanetService struct {
	repo repositories.PlanetRepository
}

// NewPlanetService creates a new PlanetService.
func NewPlanetService(repo repositories.PlanetRepository) *PlanetService {
	return &PlanetService{
		repo: repo,
	}
}

// GetAllPlanets retrieves all planets.
func (s *PlanetService) GetAllPlanets() ([]models.Planet, error) {
	return s.repo.GetAll()
}

// GetPlanetByID retrieves a single planet by its ID.
func (s *PlanetService) GetPlanetByID(id uint) (*models.Planet, error) {
	return s.repo.GetByID(id)
}

// CreatePlanet creates a new planet.
func (s *PlanetService) CreatePlanet(planet *models.Planet) error {
	return s.repo.Create(planet)
}
