package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"wanderlog/places-service/internal/app/places/entity"
	"wanderlog/places-service/internal/app/places/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_PublishesEventAndInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New().String()

	commentRepo := new(mocks.MockCommentRepository)
	producer := new(mocks.MockMessagePublisher)
	cache := new(mocks.MockListingCache)

	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.PlaceID == placeID && c.CommentText == "great place" && c.UserID == ""
	})).Return(nil)

	var published []byte
	producer.On("PublishMessage", mock.Anything, placeID, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).
		Return(nil)
	cache.On("DeletePlacesWithComments", mock.Anything).Return(nil)

	svc := NewCommentService(commentRepo, producer, cache)

	req := &entity.CreateCommentRequest{
		PlaceID:     placeID,
		CommentText: "great place",
		Email:       "guest@example.com",
		Name:        "Guest",
	}

	comment, err := svc.CreateComment(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, placeID, comment.PlaceID)
	assert.False(t, comment.CommentedAt.IsZero())

	// Событие несёт тип и идентификатор места
	var event entity.CommentEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, entity.EventCommentCreated, event.EventType)
	assert.Equal(t, placeID, event.PlaceID)

	cache.AssertExpectations(t)
}

func TestCreateComment_KafkaFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New().String()

	commentRepo := new(mocks.MockCommentRepository)
	producer := new(mocks.MockMessagePublisher)
	cache := new(mocks.MockListingCache)

	commentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishMessage", mock.Anything, placeID, mock.Anything).
		Return(errors.New("kafka: broker not available"))
	cache.On("DeletePlacesWithComments", mock.Anything).Return(nil)

	svc := NewCommentService(commentRepo, producer, cache)

	req := &entity.CreateCommentRequest{
		PlaceID:     placeID,
		CommentText: "still saved",
		Email:       "guest@example.com",
		Name:        "Guest",
	}

	// Комментарий сохранён, недоступность брокера не роняет запрос
	_, err := svc.CreateComment(ctx, req)
	require.NoError(t, err)
}

func TestCreateComment_RepositoryError(t *testing.T) {
	ctx := context.Background()

	commentRepo := new(mocks.MockCommentRepository)
	producer := new(mocks.MockMessagePublisher)
	cache := new(mocks.MockListingCache)

	commentRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	svc := NewCommentService(commentRepo, producer, cache)

	req := &entity.CreateCommentRequest{
		PlaceID:     uuid.New().String(),
		CommentText: "never saved",
		Email:       "guest@example.com",
		Name:        "Guest",
	}

	_, err := svc.CreateComment(ctx, req)

	assert.Error(t, err)
	producer.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCommentsByPlace(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	commentRepo := new(mocks.MockCommentRepository)
	producer := new(mocks.MockMessagePublisher)
	cache := new(mocks.MockListingCache)

	comments := []entity.Comment{
		newTestComment(placeID, "one"),
		newTestComment(placeID, "two"),
	}
	commentRepo.On("GetByPlaceID", mock.Anything, placeID.String()).Return(comments, nil)

	svc := NewCommentService(commentRepo, producer, cache)

	got, err := svc.GetCommentsByPlace(ctx, placeID.String())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
