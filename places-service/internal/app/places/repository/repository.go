package repository

import (
	"context"
	"errors"

	"wanderlog/places-service/internal/app/places/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrPlaceNotFound   = errors.New("place not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type PlaceRepository interface {
	Create(ctx context.Context, place *entity.Place) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Place, error)
	GetAll(ctx context.Context) ([]entity.Place, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Place, error)
	GetByTag(ctx context.Context, tag string, minScore, maxScore float64) ([]entity.Place, error)
	Search(ctx context.Context, text string) ([]entity.Place, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByPlaceID(ctx context.Context, placeID string) ([]entity.Comment, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Comment, error)
}
