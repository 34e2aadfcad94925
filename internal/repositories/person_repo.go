package repositories

import "starwars/internal/models"

// PersonRepository defines the interface for character data access.
type PersonRepository interface {
	GetAll() ([]models.Person, error)
	GetByID(id uint) (*models.Person, error)
	Create(person *models.Person) error
}
