package repository

import (
	"context"
	"fmt"
	"time"

	"wanderlog/places-service/internal/app/places/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository создает новый репозиторий комментариев.
// Автоматически создает индексы по place_id и user_id для быстрой выборки.
func NewCommentRepository(db *mongo.Database) CommentRepository {
	collection := db.Collection("comments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	placeIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "place_id", Value: 1},
		},
		Options: options.Index().SetName("place_id_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, placeIndexModel)
	if err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on place_id: %v\n", err)
	}

	userIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetName("user_id_idx"),
	}

	_, err = collection.Indexes().CreateOne(ctx, userIndexModel)
	if err != nil {
		fmt.Printf("Warning: failed to create index on user_id: %v\n", err)
	}

	return &commentRepository{
		collection: collection,
	}
}

// Create создает новый комментарий в MongoDB
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	comment.CommentedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}

	return nil
}

// GetByPlaceID получает все комментарии места, отсортированные по времени.
// Порядок выборки фиксирован, чтобы пересчёт рейтинга был воспроизводимым.
func (r *commentRepository) GetByPlaceID(ctx context.Context, placeID string) ([]entity.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "commented_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"place_id": placeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []entity.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// GetByUserID получает все комментарии пользователя
func (r *commentRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "commented_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []entity.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}
