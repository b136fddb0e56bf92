package service

import (
	"context"
)

// ScorerClient - граница с внешней моделью оценки текста.
// За интерфейсом может стоять HTTP клиент, кеш или батч-обертка:
// управляющая логика пересчёта рейтинга от этого не зависит.
type ScorerClient interface {
	// Score возвращает оценку качества текста в диапазоне [0,1]
	Score(ctx context.Context, text string) (float64, error)
}
