package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wanderlog/pkg/logger"
	"wanderlog/pkg/metrics"
	"wanderlog/pkg/scoring"
	"wanderlog/places-service/internal/app/places/repository"
	"wanderlog/places-service/internal/app/places/util"

	"github.com/google/uuid"
)

var (
	// ErrNoComments - у места нет комментариев, пересчитывать нечего.
	// Отличается от ErrPlaceNotFound: место существует, но не оценивается.
	ErrNoComments = errors.New("place has no comments to score")
)

// RatingService пересчитывает рейтинг места по его комментариям.
// Последовательность: выборка комментариев -> оценка каждого текста
// моделью -> агрегация -> атомарная запись нового рейтинга.
type RatingService struct {
	placeRepo    repository.PlaceRepository
	commentRepo  repository.CommentRepository
	scorer       ScorerClient
	aggregator   *scoring.Aggregator
	listingCache util.ListingCache
	scoreTimeout time.Duration
}

// NewRatingService создает новый сервис пересчёта рейтинга
func NewRatingService(
	placeRepo repository.PlaceRepository,
	commentRepo repository.CommentRepository,
	scorer ScorerClient,
	aggregator *scoring.Aggregator,
	listingCache util.ListingCache,
	scoreTimeout time.Duration,
) *RatingService {
	return &RatingService{
		placeRepo:    placeRepo,
		commentRepo:  commentRepo,
		scorer:       scorer,
		aggregator:   aggregator,
		listingCache: listingCache,
		scoreTimeout: scoreTimeout,
	}
}

// UpdatePlaceRating пересчитывает и сохраняет рейтинг места.
//
// Комментарии оцениваются в порядке выборки. Любая ошибка модели
// прерывает весь пересчёт, рейтинг в базе остается прежним: частичная
// агрегация дала бы рейтинг, не соответствующий полному набору
// комментариев. При детерминированной модели повторный запуск
// по тому же набору комментариев дает тот же рейтинг.
func (s *RatingService) UpdatePlaceRating(ctx context.Context, placeID uuid.UUID) (float64, error) {
	comments, err := s.commentRepo.GetByPlaceID(ctx, placeID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to get comments: %w", err)
	}

	// Место без комментариев не оценивается: пустой набор не должен
	// дойти до агрегатора
	if len(comments) == 0 {
		metrics.RatingUpdates.WithLabelValues("no_comments").Inc()
		return 0, ErrNoComments
	}

	scores := make([]float64, 0, len(comments))
	for _, comment := range comments {
		score, err := s.scoreWithTimeout(ctx, comment.CommentText)
		if err != nil {
			metrics.RatingUpdates.WithLabelValues("scorer_error").Inc()
			return 0, fmt.Errorf("failed to score comment %s: %w", comment.ID.Hex(), err)
		}
		scores = append(scores, score)
	}

	rating, err := s.aggregator.Aggregate(scores)
	if err != nil {
		// Недостижимо при выставленной выше проверке на пустой набор
		return 0, fmt.Errorf("failed to aggregate scores: %w", err)
	}

	if err := s.placeRepo.UpdateRating(ctx, placeID, rating); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			metrics.RatingUpdates.WithLabelValues("not_found").Inc()
			return 0, ErrPlaceNotFound
		}
		return 0, fmt.Errorf("failed to update place rating: %w", err)
	}

	metrics.RatingUpdates.WithLabelValues("success").Inc()
	metrics.RatingScore.Observe(rating)

	// Рейтинг в листинге изменился
	if err := s.listingCache.DeletePlacesWithComments(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate places listing cache")
	}

	logger.Info().
		Str("place_id", placeID.String()).
		Int("comments", len(comments)).
		Float64("rating_score", rating).
		Msg("place rating updated")

	return rating, nil
}

// scoreWithTimeout оценивает один текст с ограничением по времени,
// чтобы медленная модель не блокировала запрос бесконечно
func (s *RatingService) scoreWithTimeout(ctx context.Context, text string) (float64, error) {
	scoreCtx, cancel := context.WithTimeout(ctx, s.scoreTimeout)
	defer cancel()

	return s.scorer.Score(scoreCtx, text)
}
