package repositories

import "starwars/internal/models"

// UserRepository defines the interface for user data access.
// Returned users have their favorites preloaded.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
