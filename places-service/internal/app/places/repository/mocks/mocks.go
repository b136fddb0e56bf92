package mocks

import (
	"context"
	"time"

	"wanderlog/places-service/internal/app/places/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPlaceRepository мок для PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *entity.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetAll(ctx context.Context) ([]entity.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Place, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetByTag(ctx context.Context, tag string, minScore, maxScore float64) ([]entity.Place, error) {
	args := m.Called(ctx, tag, minScore, maxScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Place), args.Error(1)
}

func (m *MockPlaceRepository) Search(ctx context.Context, text string) ([]entity.Place, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Place), args.Error(1)
}

func (m *MockPlaceRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

// MockCommentRepository мок для CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByPlaceID(ctx context.Context, placeID string) ([]entity.Comment, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Comment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

// MockListingCache мок для ListingCache
type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) SetPlacesWithComments(ctx context.Context, places []entity.PlaceWithComments, ttl time.Duration) error {
	args := m.Called(ctx, places, ttl)
	return args.Error(0)
}

func (m *MockListingCache) GetPlacesWithComments(ctx context.Context) ([]entity.PlaceWithComments, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PlaceWithComments), args.Error(1)
}

func (m *MockListingCache) DeletePlacesWithComments(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockScorerClient мок для ScorerClient
type MockScorerClient struct {
	mock.Mock
}

func (m *MockScorerClient) Score(ctx context.Context, text string) (float64, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(float64), args.Error(1)
}
