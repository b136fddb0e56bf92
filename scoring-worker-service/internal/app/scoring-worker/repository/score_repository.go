package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"

	"github.com/redis/go-redis/v9"
)

// scoreRepository реализует ScoreRepository поверх Redis.
// Оценки отдельных комментариев кешируются, чтобы полный пересчёт
// не дергал модель по уже оцененным текстам.
type scoreRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreRepository создает новый кеш оценок комментариев
func NewScoreRepository(client *redis.Client, ttl time.Duration) ScoreRepository {
	return &scoreRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get возвращает кешированную оценку комментария.
// Промах кеша не является ошибкой: возвращается (nil, nil).
func (r *scoreRepository) Get(ctx context.Context, commentID string) (*entity.CachedScore, error) {
	key := entity.GetRedisKeyForScore(commentID)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score from redis: %w", err)
	}

	var score entity.CachedScore
	if err := json.Unmarshal([]byte(data), &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached score: %w", err)
	}

	return &score, nil
}

// Set сохраняет оценку комментария в Redis с TTL
func (r *scoreRepository) Set(ctx context.Context, score *entity.CachedScore) error {
	key := entity.GetRedisKeyForScore(score.CommentID)

	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set score in redis: %w", err)
	}

	return nil
}

// Exists проверяет наличие оценки в кеше
func (r *scoreRepository) Exists(ctx context.Context, commentID string) (bool, error) {
	key := entity.GetRedisKeyForScore(commentID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check score existence: %w", err)
	}

	return exists > 0, nil
}
