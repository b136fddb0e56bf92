package repository

import (
	"context"
	"fmt"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// commentRepository читает комментарии из коллекции Comments Service.
// Воркер работает с той же базой, что и Places Service, но только на чтение.
type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository создает новый репозиторий комментариев
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{
		collection: db.Collection("comments"),
	}
}

// GetByPlaceID возвращает комментарии места, отсортированные по времени.
// Порядок фиксирован, чтобы пересчёт был воспроизводимым.
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
