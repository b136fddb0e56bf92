package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"wanderlog/pkg/logger"
	"wanderlog/pkg/scoring"
	"wanderlog/places-service/internal/app/places/entity"
	"wanderlog/places-service/internal/app/places/repository"
	"wanderlog/places-service/internal/app/places/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("places-service-test", "error", io.Discard)
	m.Run()
}

func newTestComment(placeID uuid.UUID, text string) entity.Comment {
	return entity.Comment{
		ID:          primitive.NewObjectID(),
		PlaceID:     placeID.String(),
		CommentText: text,
		Email:       "traveler@example.com",
		Name:        "Traveler",
		CommentedAt: time.Now(),
	}
}

func newRatingService(
	placeRepo repository.PlaceRepository,
	commentRepo repository.CommentRepository,
	scorer ScorerClient,
	cache *mocks.MockListingCache,
) *RatingService {
	return NewRatingService(
		placeRepo, commentRepo, scorer,
		scoring.NewDefaultAggregator(), cache, 10*time.Second,
	)
}

func TestUpdatePlaceRating_Success(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	placeRepo := new(mocks.MockPlaceRepository)
	commentRepo := new(mocks.MockCommentRepository)
	scorer := new(mocks.MockScorerClient)
	cache := new(mocks.MockListingCache)

	comments := []entity.Comment{
		newTestComment(placeID, "lovely beach"),
		newTestComment(placeID, "too crowded"),
	}
	commentRepo.On("GetByPlaceID", mock.Anything, placeID.String()).Return(comments, nil)
	scorer.On("Score", mock.Anything, "lovely beach").Return(0.9, nil)
	scorer.On("Score", mock.Anything, "too crowded").Return(0.3, nil)
	// Среднее (0.9+0.3)/2 = 0.6, шкала [0,5] -> 3.0
	placeRepo.On("UpdateRating", mock.Anything, placeID, 3.0).Return(nil)
	cache.On("DeletePlacesWithComments", mock.Anything).Return(nil)

	svc := newRatingService(placeRepo, commentRepo, scorer, cache)

	rating, err := svc.UpdatePlaceRating(ctx, placeID)

	require.NoError(t, err)
	assert.InDelta(t, 3.0, rating, 1e-9)
	placeRepo.AssertExpectations(t)
	scorer.AssertExpectations(t)
}

func TestUpdatePlaceRating_NoComments(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	placeRepo := new(mocks.MockPlaceRepository)
	commentRepo := new(mocks.MockCommentRepository)
	scorer := new(mocks.MockScorerClient)
	cache := new(mocks.MockListingCache)

	commentRepo.On("GetByPlaceID", mock.Anything, placeID.String()).Return([]entity.Comment{}, nil)

	svc := newRatingService(placeRepo, commentRepo, scorer, cache)

	rating, err := svc.UpdatePlaceRating(ctx, placeID)

	assert.ErrorIs(t, err, ErrNoComments)
	assert.Zero(t, rating)
	// До модели и записи дело не доходит
	scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything)
	placeRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePlaceRating_ScorerFailureAborts(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	placeRepo := new(mocks.MockPlaceRepository)
	commentRepo := new(mocks.MockCommentRepository)
	scorer := new(mocks.MockScorerClient)
	cache := new(mocks.MockListingCache)

	comments := []entity.Comment{
		newTestComment(placeID, "ok"),
		newTestComment(placeID, "bad-input"),
	}
	commentRepo.On("GetByPlaceID", mock.Anything, placeID.String()).Return(comments, nil)
	scorer.On("Score", mock.Anything, "ok").Return(0.8, nil)
	scorer.On("Score", mock.Anything, "bad-input").Return(0.0, ErrScorerUnavailable)

	svc := newRatingService(placeRepo, commentRepo, scorer, cache)

	_, err := svc.UpdatePlaceRating(ctx, placeID)

	// Ошибка модели прерывает весь пересчёт, рейтинг не перезаписывается
	assert.ErrorIs(t, err, ErrScorerUnavailable)
	placeRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePlaceRating_PlaceNotFound(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	placeRepo := new(mocks.MockPlaceRepository)
	commentRepo := new(mocks.MockCommentRepository)
	scorer := new(mocks.MockScorerClient)
	cache := new(mocks.MockListingCache)

	comments := []entity.Comment{newTestComment(placeID, "nice")}
	commentRepo.On("GetByPlaceID", mock.Anything, placeID.String()).Return(comments, nil)
	scorer.On("Score", mock.Anything, "nice").Return(0.5, nil)
	placeRepo.On("UpdateRating", mock.Anything, placeID, 2.5).Return(repository.ErrPlaceNotFound)

	svc := newRatingService(placeRepo, commentRepo, scorer, cache)

	_, err := svc.UpdatePlaceRating(ctx, placeID)

	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestUpdatePlaceRating_Idempotent(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	placeRepo := new(mocks.MockPlaceRepository)
	commentRepo := new(mocks.MockCommentRepository)
	scorer := new(mocks.MockScorerClient)
	cache := new(mocks.MockListingCache)

	comments := []entity.Comment{
		newTestComment(placeID, "great view"),
		newTestComment(placeID, "nice food"),
	}
	commentRepo.On("GetByPlaceID", mock.Anything, placeID.String()).Return(comments, nil)
	// Детерминированная модель: одинаковые тексты - одинаковые оценки
	scorer.On("Score", mock.Anything, "great view").Return(0.8, nil)
	scorer.On("Score", mock.Anything, "nice food").Return(0.4, nil)
	placeRepo.On("UpdateRating", mock.Anything, placeID, 3.0).Return(nil)
	cache.On("DeletePlacesWithComments", mock.Anything).Return(nil)

	svc := newRatingService(placeRepo, commentRepo, scorer, cache)

	first, err := svc.UpdatePlaceRating(ctx, placeID)
	require.NoError(t, err)

	second, err := svc.UpdatePlaceRating(ctx, placeID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	placeRepo.AssertNumberOfCalls(t, "UpdateRating", 2)
}

// ===================== Concurrency =====================

// racePlaceRepo записывает рейтинг атомарно и запоминает последнее значение
type racePlaceRepo struct {
	mu     sync.Mutex
	stored float64
}

func (r *racePlaceRepo) Create(ctx context.Context, place *entity.Place) error { return nil }
func (r *racePlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	return nil, repository.ErrPlaceNotFound
}
func (r *racePlaceRepo) GetAll(ctx context.Context) ([]entity.Place, error) { return nil, nil }
func (r *racePlaceRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Place, error) {
	return nil, nil
}
func (r *racePlaceRepo) GetByTag(ctx context.Context, tag string, minScore, maxScore float64) ([]entity.Place, error) {
	return nil, nil
}
func (r *racePlaceRepo) Search(ctx context.Context, text string) ([]entity.Place, error) {
	return nil, nil
}
func (r *racePlaceRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = rating
	return nil
}

type fixedCommentRepo struct {
	comments []entity.Comment
}

func (r *fixedCommentRepo) Create(ctx context.Context, comment *entity.Comment) error { return nil }
func (r *fixedCommentRepo) GetByPlaceID(ctx context.Context, placeID string) ([]entity.Comment, error) {
	return r.comments, nil
}
func (r *fixedCommentRepo) GetByUserID(ctx context.Context, userID string) ([]entity.Comment, error) {
	return nil, nil
}

type fixedScorer struct {
	score float64
}

func (s *fixedScorer) Score(ctx context.Context, text string) (float64, error) {
	return s.score, nil
}

type noopCache struct{}

func (noopCache) SetPlacesWithComments(ctx context.Context, places []entity.PlaceWithComments, ttl time.Duration) error {
	return nil
}
func (noopCache) GetPlacesWithComments(ctx context.Context) ([]entity.PlaceWithComments, error) {
	return nil, errors.New("cache empty")
}
func (noopCache) DeletePlacesWithComments(ctx context.Context) error { return nil }
func (noopCache) Close() error                                      { return nil }

// Два конкурентных пересчёта одного места: в базе должен оказаться
// рейтинг, реально посчитанный одним из них, а не смесь двух записей
func TestUpdatePlaceRating_ConcurrentWritesDoNotInterleave(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	repo := &racePlaceRepo{}
	comments := &fixedCommentRepo{comments: []entity.Comment{newTestComment(placeID, "fine")}}

	// Две модели дают разные оценки: 0.2 -> 1.0 и 0.8 -> 4.0
	svcLow := NewRatingService(repo, comments, &fixedScorer{score: 0.2},
		scoring.NewDefaultAggregator(), noopCache{}, time.Second)
	svcHigh := NewRatingService(repo, comments, &fixedScorer{score: 0.8},
		scoring.NewDefaultAggregator(), noopCache{}, time.Second)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svcLow.UpdatePlaceRating(ctx, placeID)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svcHigh.UpdatePlaceRating(ctx, placeID)
		assert.NoError(t, err)
	}()
	wg.Wait()

	repo.mu.Lock()
	final := repo.stored
	repo.mu.Unlock()

	// Побеждает одна из записей целиком
	assert.True(t, final == 1.0 || final == 4.0,
		"stored rating %f was never produced by either update", final)
}
