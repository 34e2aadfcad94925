package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starwars/internal/models"
)

// GORMPersonRepository is a GORM implementation of PersonRepository.
type GORMPersonRepository struct {
	db *gorm.DB
}

// NewGORMPersonRepository creates a new instance of GORMPersonRepository.
func NewGORMPersonRepository(db *gorm.DB) *GORMPersonRepository {
	return &GORMPersonRepository{
		db: db,
	}
}

// GetAll retrieves all characters from the database.
func (r *GORMPersonRepository) GetAll() ([]models.Person, error) {
	var people []models.Person
	if err := r.db.Order("id").Find(&people).Error; err != nil {
		return nil, wrap("failed to get all people", err)
	}
	return people, nil
}

// GetByID retrieves a single character by its ID from the database.
func (r *GORMPersonRepository) GetByID(id uint) (*models.Person, error) {
	var person models.Person
	if err := r.db.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("people", "id", id)
		}
		return nil, wrap("failed to get people", err)
	}
	return &person, nil
}

// Create creates a new character. A home planet that does not exist is
// reported as ErrInvalidReference.
func (r *GORMPersonRepository) Create(person *models.Person) error {
	if err := r.db.Omit(clause.Associations).Create(person).Error; err != nil {
		return wrap("failed to create people", err)
	}
	return nil
}
