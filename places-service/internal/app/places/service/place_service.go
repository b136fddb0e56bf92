package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wanderlog/pkg/logger"
	"wanderlog/pkg/metrics"
	"wanderlog/places-service/internal/app/places/entity"
	"wanderlog/places-service/internal/app/places/repository"
	"wanderlog/places-service/internal/app/places/util"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrPlaceNotFound = errors.New("place not found")
	ErrInvalidTag    = errors.New("invalid tag")
)

// listingCacheTTL - время жизни кеша собранного листинга
const listingCacheTTL = time.Hour

// PlaceService обрабатывает бизнес-логику мест:
// создание, выборки и сборку мест с комментариями (композицию).
type PlaceService struct {
	placeRepo    repository.PlaceRepository
	commentRepo  repository.CommentRepository
	listingCache util.ListingCache
}

// NewPlaceService создает новый сервис мест с внедрением зависимостей
func NewPlaceService(
	placeRepo repository.PlaceRepository,
	commentRepo repository.CommentRepository,
	listingCache util.ListingCache,
) *PlaceService {
	return &PlaceService{
		placeRepo:    placeRepo,
		commentRepo:  commentRepo,
		listingCache: listingCache,
	}
}

// CreatePlace создает новое место.
// Теги проверяются на разделитель до записи: тег с запятой сломал бы
// декодирование и отклоняется как ошибка валидации.
func (s *PlaceService) CreatePlace(ctx context.Context, userID uuid.UUID, req *entity.CreatePlaceRequest) (*entity.Place, error) {
	encodedTags, err := entity.EncodeTags(req.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTag, err)
	}

	place := &entity.Place{
		ID:           uuid.New(),
		Img:          req.Img,
		Title:        req.Title,
		UserID:       userID,
		UserFullName: req.UserFullName,
		PostedDate:   time.Now(),
		Content:      req.Content,
		RatingScore:  req.RatingScore,
		Tags:         encodedTags,
	}

	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	metrics.PlacesCreated.Inc()

	// Инвалидируем кеш листинга, чтобы новое место появилось в выдаче
	if err := s.listingCache.DeletePlacesWithComments(ctx); err != nil {
		// Место уже создано, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to invalidate places listing cache")
	}

	return place, nil
}

// GetPlaceByID получает место по ID
func (s *PlaceService) GetPlaceByID(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	return place, nil
}

// GetPlacesByUser получает все места пользователя
func (s *PlaceService) GetPlacesByUser(ctx context.Context, userID uuid.UUID) ([]entity.Place, error) {
	places, err := s.placeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get places by user: %w", err)
	}

	return places, nil
}

// GetPlacesByTag получает места по тегу с фильтром по рейтингу
func (s *PlaceService) GetPlacesByTag(ctx context.Context, tag string, minScore, maxScore float64) ([]entity.Place, error) {
	places, err := s.placeRepo.GetByTag(ctx, tag, minScore, maxScore)
	if err != nil {
		return nil, fmt.Errorf("failed to get places by tag: %w", err)
	}

	return places, nil
}

// GetAllPlacesWithComments собирает все места с их комментариями.
// Места и комментарии живут в разных хранилищах (PostgreSQL и MongoDB),
// поэтому единого JOIN нет: на каждое место выполняется один запрос
// по индексу place_id, а готовый листинг кешируется в Redis.
func (s *PlaceService) GetAllPlacesWithComments(ctx context.Context) ([]entity.PlaceWithComments, error) {
	// Пытаемся получить из кеша Redis
	cached, err := s.listingCache.GetPlacesWithComments(ctx)
	if err == nil && cached != nil {
		return cached, nil
	}

	places, err := s.placeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get places: %w", err)
	}

	composed := make([]entity.PlaceWithComments, 0, len(places))
	for _, place := range places {
		comments, err := s.commentRepo.GetByPlaceID(ctx, place.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get comments for place %s: %w", place.ID, err)
		}
		composed = append(composed, entity.ComposePlace(place, comments))
	}

	if err := s.listingCache.SetPlacesWithComments(ctx, composed, listingCacheTTL); err != nil {
		// Данные собраны, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache places listing")
	}

	return composed, nil
}

// GetPlaceWithComments собирает одно место с его комментариями
func (s *PlaceService) GetPlaceWithComments(ctx context.Context, id uuid.UUID) (*entity.PlaceWithComments, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	comments, err := s.commentRepo.GetByPlaceID(ctx, place.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	composed := entity.ComposePlace(*place, comments)
	return &composed, nil
}

// SearchPlacesWithComments ищет места по тексту и собирает их с комментариями
func (s *PlaceService) SearchPlacesWithComments(ctx context.Context, text string) ([]entity.PlaceWithComments, error) {
	places, err := s.placeRepo.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	composed := make([]entity.PlaceWithComments, 0, len(places))
	for _, place := range places {
		comments, err := s.commentRepo.GetByPlaceID(ctx, place.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get comments for place %s: %w", place.ID, err)
		}
		composed = append(composed, entity.ComposePlace(place, comments))
	}

	return composed, nil
}
