package mocks

import (
	"context"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPlaceRepository - мок PlaceRepository для unit-тестов
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) GetAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPlaceRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

// MockCommentRepository - мок CommentRepository для unit-тестов
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) GetByPlaceID(ctx context.Context, placeID string) ([]entity.Comment, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

// MockScoreRepository - мок ScoreRepository для unit-тестов
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Get(ctx context.Context, commentID string) (*entity.CachedScore, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CachedScore), args.Error(1)
}

func (m *MockScoreRepository) Set(ctx context.Context, score *entity.CachedScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepository) Exists(ctx context.Context, commentID string) (bool, error) {
	args := m.Called(ctx, commentID)
	return args.Bool(0), args.Error(1)
}
