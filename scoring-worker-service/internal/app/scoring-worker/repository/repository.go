package repository

import (
	"context"
	"errors"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"

	"github.com/google/uuid"
)

// ErrPlaceNotFound - место отсутствует в БД Places Service
var ErrPlaceNotFound = errors.New("place not found")

// PlaceRepository интерфейс для работы с местами в PostgreSQL
type PlaceRepository interface {
	// GetAllIDs возвращает идентификаторы всех мест для полного пересчёта
	GetAllIDs(ctx context.Context) ([]uuid.UUID, error)

	// UpdateRating обновляет агрегированный рейтинг места
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

// CommentRepository интерфейс для чтения комментариев из MongoDB
type CommentRepository interface {
	// GetByPlaceID возвращает комментарии места в порядке создания
	GetByPlaceID(ctx context.Context, placeID string) ([]entity.Comment, error)
}

// ScoreRepository интерфейс для кеша оценок комментариев в Redis
type ScoreRepository interface {
	// Get возвращает кешированную оценку или (nil, nil) при промахе
	Get(ctx context.Context, commentID string) (*entity.CachedScore, error)

	// Set сохраняет оценку комментария с TTL
	Set(ctx context.Context, score *entity.CachedScore) error

	// Exists проверяет наличие оценки в кеше
	Exists(ctx context.Context, commentID string) (bool, error)
}
