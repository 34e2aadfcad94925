package repositories

import (
	"errors"

	"gorm.io/gorm"

	"starwars/internal/models"
)

// GORMPlanetRepository is a GORM implementation of PlanetRepository.
type GORMPlanetRepository struct {
	db *gorm.DB
}

// NewGORMPlanetRepository creates a new instance of GORMPlanetRepository.
func NewGORMPlanetRepository(db *gorm.DB) *GORMPlanetRepository {
	return &GORMPlanetRepository{
		db: db,
	}
}

// GetAll retrieves all planets from the database.
func (r *GORMPlanetRepository) GetAll() ([]models.Planet, error) {
	var planets []models.Planet
	if err := r.db.Order("id").Find(&planets).Error; err != nil {
		return nil, wrap("failed to get all planets", err)
	}
	return planets, nil
}

// GetByID retrieves a single planet by its ID from the database.
func (r *GORMPlanetRepository) GetByID(id uint) (*models.Planet, error) {
	var planet models.Planet
	if err := r.db.First(&planet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("planet", "id", id)
		}
		return nil, wrap("failed to get planet", err)
	}
	return &planet, nil
}

// Create creates a new planet in the database.
func (r *GORMPlanetRepository) Create(planet *models.Planet) error {
	if err := r.db.Create(planet).Error; err != nil {
		return wrap("failed to create planet", err)
	}
	return nil
}
