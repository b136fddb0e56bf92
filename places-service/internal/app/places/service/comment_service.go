package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wanderlog/pkg/logger"
	"wanderlog/pkg/metrics"
	"wanderlog/places-service/internal/app/places/entity"
	"wanderlog/places-service/internal/app/places/repository"
	"wanderlog/places-service/internal/app/places/util"
)

// CommentService обрабатывает бизнес-логику комментариев.
// Координирует работу репозитория, Kafka и кеша листинга.
type CommentService struct {
	commentRepo   repository.CommentRepository
	kafkaProducer util.MessagePublisher
	listingCache  util.ListingCache
}

// NewCommentService создает новый сервис комментариев с внедрением зависимостей
func NewCommentService(
	commentRepo repository.CommentRepository,
	kafkaProducer util.MessagePublisher,
	listingCache util.ListingCache,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		kafkaProducer: kafkaProducer,
		listingCache:  listingCache,
	}
}

// CreateComment создает новый комментарий
// 1. Сохраняет комментарий в MongoDB
// 2. Отправляет событие COMMENT_CREATED в Kafka для пересчёта рейтинга
func (s *CommentService) CreateComment(ctx context.Context, req *entity.CreateCommentRequest) (*entity.Comment, error) {
	comment := &entity.Comment{
		UserID:      req.UserID, // пустой для гостевого комментария
		PlaceID:     req.PlaceID,
		CommentText: req.CommentText,
		Email:       req.Email,
		Name:        req.Name,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()

	// Отправляем событие COMMENT_CREATED в Kafka:
	// Scoring Worker пересчитает рейтинг места по этому событию
	event := entity.CommentEvent{
		EventType: entity.EventCommentCreated,
		CommentID: comment.ID.Hex(),
		PlaceID:   comment.PlaceID,
		UserID:    comment.UserID,
		Timestamp: time.Now(),
	}

	if err := s.publishCommentEvent(ctx, event); err != nil {
		// Комментарий уже создан, проблемы с Kafka не критичны:
		// периодический пересчёт всё равно подхватит его по расписанию
		logger.Warn().Err(err).Str("comment_id", event.CommentID).
			Msg("failed to publish comment created event")
	}

	// Инвалидируем кеш листинга: в выдаче появился новый комментарий
	if err := s.listingCache.DeletePlacesWithComments(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate places listing cache")
	}

	return comment, nil
}

// GetCommentsByPlace получает все комментарии места
func (s *CommentService) GetCommentsByPlace(ctx context.Context, placeID string) ([]entity.Comment, error) {
	comments, err := s.commentRepo.GetByPlaceID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

// GetCommentsByUser получает все комментарии пользователя
func (s *CommentService) GetCommentsByUser(ctx context.Context, userID string) ([]entity.Comment, error) {
	comments, err := s.commentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user comments: %w", err)
	}

	return comments, nil
}

// publishCommentEvent отправляет событие о комментарии в Kafka.
// Ключ - PlaceID, чтобы события одного места попадали в одну партицию.
func (s *CommentService) publishCommentEvent(ctx context.Context, event entity.CommentEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.PlaceID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
