package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wanderlog/pkg/logger"
	"wanderlog/pkg/metrics"
	"wanderlog/pkg/scoring"
	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"
	"wanderlog/scoring-worker-service/internal/app/scoring-worker/repository"

	"github.com/google/uuid"
)

var (
	// ErrNoComments - у места нет комментариев, пересчитывать нечего
	ErrNoComments = errors.New("place has no comments to score")

	// ErrPlaceNotFound - место исчезло между выборкой и записью рейтинга
	ErrPlaceNotFound = errors.New("place not found")
)

// RescoreService выполняет фоновый пересчёт рейтингов мест.
// В отличие от синхронного пересчёта в Places Service оценки отдельных
// комментариев кешируются в Redis: тексты неизменяемы, поэтому при полном
// обходе модель вызывается только для новых комментариев.
type RescoreService struct {
	placeRepo   repository.PlaceRepository
	commentRepo repository.CommentRepository
	scoreRepo   repository.ScoreRepository
	scorer      ScorerClient
	aggregator  *scoring.Aggregator
}

// NewRescoreService создает новый сервис фонового пересчёта
func NewRescoreService(
	placeRepo repository.PlaceRepository,
	commentRepo repository.CommentRepository,
	scoreRepo repository.ScoreRepository,
	scorer ScorerClient,
	aggregator *scoring.Aggregator,
) *RescoreService {
	return &RescoreService{
		placeRepo:   placeRepo,
		commentRepo: commentRepo,
		scoreRepo:   scoreRepo,
		scorer:      scorer,
		aggregator:  aggregator,
	}
}

// RescorePlace пересчитывает рейтинг одного места.
// Ошибка модели прерывает пересчёт этого места целиком: частичная
// агрегация дала бы рейтинг, не соответствующий полному набору комментариев.
func (s *RescoreService) RescorePlace(ctx context.Context, placeID uuid.UUID) (float64, error) {
	start := time.Now()

	comments, err := s.commentRepo.GetByPlaceID(ctx, placeID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to get comments: %w", err)
	}

	if len(comments) == 0 {
		return 0, ErrNoComments
	}

	scores := make([]float64, 0, len(comments))
	for _, comment := range comments {
		score, err := s.scoreComment(ctx, &comment)
		if err != nil {
			return 0, fmt.Errorf("failed to score comment %s: %w", comment.ID.Hex(), err)
		}
		scores = append(scores, score)
	}

	rating, err := s.aggregator.Aggregate(scores)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate scores: %w", err)
	}

	if err := s.placeRepo.UpdateRating(ctx, placeID, rating); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return 0, ErrPlaceNotFound
		}
		return 0, fmt.Errorf("failed to update place rating: %w", err)
	}

	metrics.WorkerRescoreDuration.Observe(time.Since(start).Seconds())
	metrics.RatingScore.Observe(rating)

	logger.Info().
		Str("place_id", placeID.String()).
		Int("comments", len(comments)).
		Float64("rating_score", rating).
		Msg("place rescored")

	return rating, nil
}

// RescoreAll пересчитывает рейтинги всех мест.
// Сбой на одном месте не останавливает обход: место логируется
// и пропускается, возвращается число успешно пересчитанных мест.
func (s *RescoreService) RescoreAll(ctx context.Context) (int, error) {
	ids, err := s.placeRepo.GetAllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list places: %w", err)
	}

	rescored := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return rescored, ctx.Err()
		}

		_, err := s.RescorePlace(ctx, id)
		switch {
		case err == nil:
			metrics.WorkerPlacesRescored.WithLabelValues("success").Inc()
			rescored++
		case errors.Is(err, ErrNoComments):
			metrics.WorkerPlacesRescored.WithLabelValues("skipped").Inc()
		default:
			metrics.WorkerPlacesRescored.WithLabelValues("failed").Inc()
			logger.Warn().
				Err(err).
				Str("place_id", id.String()).
				Msg("failed to rescore place, skipping")
		}
	}

	logger.Info().
		Int("places_total", len(ids)).
		Int("places_rescored", rescored).
		Msg("rescore sweep completed")

	return rescored, nil
}

// scoreComment возвращает оценку комментария из кеша или от модели.
// Ошибка записи в кеш не фатальна: оценка уже получена.
func (s *RescoreService) scoreComment(ctx context.Context, comment *entity.Comment) (float64, error) {
	commentID := comment.ID.Hex()

	cached, err := s.scoreRepo.Get(ctx, commentID)
	if err != nil {
		logger.Warn().Err(err).Str("comment_id", commentID).Msg("score cache read failed")
	}
	if cached != nil {
		return cached.Score, nil
	}

	score, err := s.scorer.Score(ctx, comment.CommentText)
	if err != nil {
		return 0, err
	}

	if err := s.scoreRepo.Set(ctx, &entity.CachedScore{
		CommentID: commentID,
		Score:     score,
		ScoredAt:  time.Now(),
	}); err != nil {
		logger.Warn().Err(err).Str("comment_id", commentID).Msg("score cache write failed")
	}

	return score, nil
}
