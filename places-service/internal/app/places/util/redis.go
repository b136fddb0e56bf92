package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wanderlog/pkg/metrics"
	"wanderlog/places-service/internal/app/places/entity"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName          = "places-service"
	listingCacheKey      = "places_with_comments:all"
	listingCacheKeyShort = "places_with_comments"
)

// RedisClient кеширует собранный список мест с комментариями.
// Сборка листинга требует одного запроса к Mongo на каждое место,
// поэтому результат держится в кеше и сбрасывается при записи.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetPlacesWithComments(ctx context.Context, places []entity.PlaceWithComments, ttl time.Duration) error {
	data, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("failed to marshal places listing: %w", err)
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, listingCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set places listing in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetPlacesWithComments(ctx context.Context) ([]entity.PlaceWithComments, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, listingCacheKeyShort)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get places listing from cache: %w", err)
	}

	var places []entity.PlaceWithComments
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("failed to unmarshal places listing: %w", err)
	}

	metrics.RecordCacheHit(serviceName, listingCacheKeyShort)
	return places, nil
}

func (r *RedisClient) DeletePlacesWithComments(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, listingCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete places listing from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
