package services

import (
	"errors"
	"fmt"

	"starwars/internal/models"
	"starwars/internal/repositories"
)

// NewUser is the input for creating an account.
type NewUser struct {
	Username string
	Email    string
	Password string
	IsActive bool
}

// UserService handles business logic related to users.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllUsers retrieves all users with their favorites.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUserByID retrieves a single user with live favorites.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// CreateUser stores a new user with a hashed password. A taken username or
// email is reported as repositories.ErrDuplicate.
func (s *UserService) CreateUser(in NewUser) (*models.User, error) {
	if err := s.ensureFree("username", in.Username, s.repo.GetByUsername); err != nil {
		return nil, err
	}
	if err := s.ensureFree("email", in.Email, s.repo.GetByEmail); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		IsActive: in.IsActive,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ensureFree(field, value string, lookup func(string) (*models.User, error)) error {
	existing, err := lookup(value)
	switch {
	case err == nil && existing != nil:
		return fmt.Errorf("%s '%s' already registered: %w", field, value, repositories.ErrDuplicate)
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return err
	default:
		return nil
	}
}
