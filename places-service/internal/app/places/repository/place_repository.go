package repository

import (
	"context"
	"errors"

	"wanderlog/places-service/internal/app/places/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository создает новый репозиторий мест
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// Create создает новое место
func (r *placeRepository) Create(ctx context.Context, place *entity.Place) error {
	result := r.db.WithContext(ctx).Create(place)
	return result.Error
}

// GetByID получает место по ID
func (r *placeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	var place entity.Place
	result := r.db.WithContext(ctx).First(&place, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, result.Error
	}

	return &place, nil
}

// GetAll получает все места
func (r *placeRepository) GetAll(ctx context.Context) ([]entity.Place, error) {
	var places []entity.Place
	result := r.db.WithContext(ctx).Order("posted_date DESC").Find(&places)

	if result.Error != nil {
		return nil, result.Error
	}

	return places, nil
}

// GetByUserID получает все места пользователя
func (r *placeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Place, error) {
	var places []entity.Place
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("posted_date DESC").
		Find(&places)

	if result.Error != nil {
		return nil, result.Error
	}

	return places, nil
}

// GetByTag получает места по тегу с фильтром по рейтингу
func (r *placeRepository) GetByTag(ctx context.Context, tag string, minScore, maxScore float64) ([]entity.Place, error) {
	var places []entity.Place
	result := r.db.WithContext(ctx).
		Where("tags ILIKE ?", "%"+tag+"%").
		Where("rating_score BETWEEN ? AND ?", minScore, maxScore).
		Order("rating_score DESC").
		Find(&places)

	if result.Error != nil {
		return nil, result.Error
	}

	return places, nil
}

// Search ищет места по подстроке в заголовке или тексте
func (r *placeRepository) Search(ctx context.Context, text string) ([]entity.Place, error) {
	var places []entity.Place
	pattern := "%" + text + "%"
	result := r.db.WithContext(ctx).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("posted_date DESC").
		Find(&places)

	if result.Error != nil {
		return nil, result.Error
	}

	return places, nil
}

// UpdateRating перезаписывает рейтинг места одной транзакцией.
// Строка блокируется через SELECT ... FOR UPDATE, чтобы два одновременных
// пересчёта не переплетались на уровне записи: побеждает поздняя запись целиком.
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
