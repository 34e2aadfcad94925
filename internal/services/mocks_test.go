package services_test

import (
	"github.com/stretchr/testify/mock"

	"starwars/internal/models"
	"starwars/pkg/rabbitmq"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	return m.user(m.Called(id))
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	return m.user(m.Called(username))
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return m.user(m.Called(email))
}

func (m *MockUserRepository) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPlanetRepository is a mock implementation of repositories.PlanetRepository
type MockPlanetRepository struct {
	mock.Mock
}

func (m *MockPlanetRepository) GetAll() ([]models.Planet, error) {
	args := m.Called()
	return args.Get(0).([]models.Planet), args.Error(1)
}

func (m *MockPlanetRepository) GetByID(id uint) (*models.Planet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Planet), args.Error(1)
}

func (m *MockPlanetRepository) Create(planet *models.Planet) error {
	args := m.Called(planet)
	return args.Error(0)
}

// MockPersonRepository is a mock implementation of repositories.PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) GetAll() ([]models.Person, error) {
	args := m.Called()
	return args.Get(0).([]models.Person), args.Error(1)
}

func (m *MockPersonRepository) GetByID(id uint) (*models.Person, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Person), args.Error(1)
}

func (m *MockPersonRepository) Create(person *models.Person) error {
	args := m.Called(person)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of repositories.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(fav *models.Favorite) error {
	args := m.Called(fav)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) FindByUserAndTarget(userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	args := m.Called(userID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByUserAndTarget(userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	args := m.Called(userID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

// MockPublisher is a mock implementation of services.FavoriteEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishFavoriteEvent(ev rabbitmq.FavoriteEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}
