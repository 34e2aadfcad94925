package repositories

import (
	"errors"

	"gorm.io/gorm"

	"starwars/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

func withFavorites(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Favorites", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Favorites.User").
		Preload("Favorites.Planet").
		Preload("Favorites.People")
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrap("failed to create user", err)
	}
	return nil
}

// GetAll retrieves all users ordered by id.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := withFavorites(r.db).Order("id").Find(&users).Error; err != nil {
		return nil, wrap("failed to get all users", err)
	}
	return users, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	return r.first("id", id)
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first("username", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email", email)
}

func (r *GORMUserRepository) first(column string, value any) (*models.User, error) {
	var user models.User
	if err := withFavorites(r.db).Where(map[string]any{column: value}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user", column, value)
		}
		return nil, wrap("failed to get user by "+column, err)
	}
	return &user, nil
}
