package scoring

import "errors"

// RatingScale - каноничный масштаб рейтинга места.
// Модель возвращает оценку в [0,1], в колонке rating_score хранится шкала [0,5].
const RatingScale = 5.0

var (
	// ErrNoScores возвращается при попытке агрегировать пустой набор оценок.
	// Caller обязан отсечь этот случай заранее (место без комментариев).
	ErrNoScores = errors.New("no scores to aggregate")
)

// Aggregator сводит набор оценок модели в один рейтинг места.
// Scale - именованная политика масштабирования: 1.0 означает "сырое среднее",
// RatingScale переводит среднее из [0,1] в шкалу [0,5].
type Aggregator struct {
	scale float64
}

// NewAggregator создает агрегатор с явным масштабом
func NewAggregator(scale float64) *Aggregator {
	return &Aggregator{scale: scale}
}

// NewDefaultAggregator создает агрегатор с каноничной шкалой [0,5]
func NewDefaultAggregator() *Aggregator {
	return &Aggregator{scale: RatingScale}
}

// Scale возвращает текущий масштаб агрегатора
func (a *Aggregator) Scale() float64 {
	return a.scale
}

// Aggregate вычисляет среднее арифметическое оценок и масштабирует его.
// Округление не выполняется, результат сохраняется как есть.
func (a *Aggregator) Aggregate(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrNoScores
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}

	return sum / float64(len(scores)) * a.scale, nil
}
