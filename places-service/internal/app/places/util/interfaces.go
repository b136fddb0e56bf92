package util

import (
	"context"
	"time"

	"wanderlog/places-service/internal/app/places/entity"
)

// ListingCache интерфейс для кеша собранного списка мест с комментариями.
// Используется для dependency injection и упрощения тестирования.
type ListingCache interface {
	SetPlacesWithComments(ctx context.Context, places []entity.PlaceWithComments, ttl time.Duration) error
	GetPlacesWithComments(ctx context.Context) ([]entity.PlaceWithComments, error)
	DeletePlacesWithComments(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
