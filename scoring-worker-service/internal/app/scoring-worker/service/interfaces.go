package service

import (
	"context"

	"github.com/google/uuid"
)

// RescoreServiceInterface определяет интерфейс пересчёта рейтингов
type RescoreServiceInterface interface {
	// RescorePlace пересчитывает рейтинг одного места
	RescorePlace(ctx context.Context, placeID uuid.UUID) (float64, error)
	// RescoreAll пересчитывает рейтинги всех мест, пропуская сбойные
	RescoreAll(ctx context.Context) (int, error)
}

// ScorerClient определяет интерфейс внешней модели оценки текста
type ScorerClient interface {
	// Score возвращает оценку текста в диапазоне [0,1]
	Score(ctx context.Context, text string) (float64, error)
}
