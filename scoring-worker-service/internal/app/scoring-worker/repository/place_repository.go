package repository

import (
	"context"
	"errors"
	"fmt"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// placeRepository реализует PlaceRepository поверх БД Places Service через GORM
type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository создает новый репозиторий мест
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// GetAllIDs возвращает идентификаторы всех мест.
// Полный пересчёт обходит места по одному, поэтому тянуть целые строки не нужно.
func (r *placeRepository) GetAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	result := r.db.WithContext(ctx).
		Model(&entity.Place{}).
		Order("id").
		Pluck("id", &ids)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list place ids: %w", result.Error)
	}

	return ids, nil
}

// UpdateRating перезаписывает рейтинг места одной транзакцией.
// Строка блокируется через SELECT ... FOR UPDATE: воркер и Places Service
// могут пересчитывать одно место одновременно, побеждает поздняя запись целиком.
func (r *placeRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var place entity.Place
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&place, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}
			return err
		}

		return tx.Model(&entity.Place{}).
			Where("id = ?", id).
			Update("rating_score", rating).Error
	})
}
