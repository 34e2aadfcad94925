package repositories

import "starwars/internal/models"

// FavoriteRepository defines the interface for favorite data access.
// Returned favorites have their user, planet and people preloaded.
type FavoriteRepository interface {
	Create(fav *models.Favorite) error
	ListByUser(userID uint) ([]models.Favorite, error)
	FindByUserAndTarget(userID uint, target models.FavoriteTarget) (*models.Favorite, error)
	DeleteByUserAndTarget(userID uint, target models.FavoriteTarget) (*models.Favorite, error)
}
