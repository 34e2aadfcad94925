package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"starwars/internal/models"
	"starwars/internal/repositories"
	"starwars/pkg/rabbitmq"
)

// FavoriteEventPublisher receives an event for every favorite change.
type FavoriteEventPublisher interface {
	PublishFavoriteEvent(ev rabbitmq.FavoriteEvent) error
}

// FavoriteService handles business logic related to favorites.
type FavoriteService struct {
	favRepo    repositories.FavoriteRepository
	planetRepo repositories.PlanetRepository
	personRepo repositories.PersonRepository
	publisher  FavoriteEventPublisher
}

// NewFavoriteService creates a new FavoriteService. publisher may be nil.
func NewFavoriteService(
	favRepo repositories.FavoriteRepository,
	planetRepo repositories.PlanetRepository,
	personRepo repositories.PersonRepository,
	publisher FavoriteEventPublisher,
) *FavoriteService {
	return &FavoriteService{
		favRepo:    favRepo,
		planetRepo: planetRepo,
		personRepo: personRepo,
		publisher:  publisher,
	}
}

// ListFavorites returns the current favorites of userID.
func (s *FavoriteService) ListFavorites(userID uint) ([]models.Favorite, error) {
	return s.favRepo.ListByUser(userID)
}

// AddFavorite records that userID favorites target.
//
// A target that does not exist matches repositories.ErrNotFound; a target
// the user already holds matches repositories.ErrDuplicate.
func (s *FavoriteService) AddFavorite(userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("favorite target %s: %w", target, repositories.ErrInvalidInput)
	}
	if err := s.ensureTargetExists(target); err != nil {
		return nil, err
	}

	if _, err := s.favRepo.FindByUserAndTarget(userID, target); err == nil {
		return nil, fmt.Errorf("%s already in favorites: %w", target, repositories.ErrDuplicate)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	fav := models.NewFavorite(userID, target)
	if err := s.favRepo.Create(&fav); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.FavoriteAdded, &fav, target)
	return &fav, nil
}

// RemoveFavorite deletes the favorite userID holds on target.
func (s *FavoriteService) RemoveFavorite(userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("favorite target %s: %w", target, repositories.ErrInvalidInput)
	}

	fav, err := s.favRepo.DeleteByUserAndTarget(userID, target)
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.FavoriteRemoved, fav, target)
	return fav, nil
}

func (s *FavoriteService) ensureTargetExists(target models.FavoriteTarget) error {
	var err error
	switch target.Kind() {
	case models.TargetPlanet:
		_, err = s.planetRepo.GetByID(target.ID())
	case models.TargetPerson:
		_, err = s.personRepo.GetByID(target.ID())
	}
	return err
}

// publish logs publisher errors instead of returning them.
func (s *FavoriteService) publish(eventType string, fav *models.Favorite, target models.FavoriteTarget) {
	if s.publisher == nil {
		return
	}
	ev := rabbitmq.FavoriteEvent{
		Type:       eventType,
		FavoriteID: fav.ID,
		UserID:     fav.UserID,
		Target:     target.Kind().String(),
		TargetID:   target.ID(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishFavoriteEvent(ev); err != nil {
		log.Warn().Err(err).Str("type", eventType).Uint("favorite_id", fav.ID).Msg("Failed to publish favorite event")
	}
}
