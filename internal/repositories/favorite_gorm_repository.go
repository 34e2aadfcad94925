package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starwars/internal/models"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Planet").Preload("People")
}

func byUserAndTarget(db *gorm.DB, userID uint, target models.FavoriteTarget) *gorm.DB {
	return db.Where(map[string]any{"user_id": userID, target.Column(): target.ID()})
}

// Create stores fav and reloads it with its relations.
func (r *GORMFavoriteRepository) Create(fav *models.Favorite) error {
	if _, ok := fav.Target(); !ok {
		return fmt.Errorf("favorite must reference exactly one planet or people: %w", ErrInvalidInput)
	}
	if err := r.db.Omit(clause.Associations).Create(fav).Error; err != nil {
		return wrap("failed to create favorite", err)
	}
	if err := withRelations(r.db).First(fav, fav.ID).Error; err != nil {
		return wrap("failed to reload favorite", err)
	}
	return nil
}

// ListByUser returns the favorites of userID ordered by id.
func (r *GORMFavoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := withRelations(r.db).Where("user_id = ?", userID).Order("id").Find(&favs).Error; err != nil {
		return nil, wrap("failed to list favorites", err)
	}
	return favs, nil
}

// FindByUserAndTarget returns the favorite userID holds on target.
func (r *GORMFavoriteRepository) FindByUserAndTarget(userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	var fav models.Favorite
	if err := withRelations(byUserAndTarget(r.db, userID, target)).First(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("favorite", target.Kind().String(), target.ID())
		}
		return nil, wrap("failed to find favorite", err)
	}
	return &fav, nil
}

// DeleteByUserAndTarget removes the favorite userID holds on target and
// returns it. Lookup and delete share one transaction.
func (r *GORMFavoriteRepository) DeleteByUserAndTarget(userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	var fav models.Favorite
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := withRelations(byUserAndTarget(tx, userID, target)).First(&fav).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("favorite", target.Kind().String(), target.ID())
			}
			return err
		}
		return tx.Delete(&models.Favorite{}, fav.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, wrap("failed to delete favorite", err)
	}
	return &fav, nil
}
