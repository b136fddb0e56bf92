package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Place - проекция места из БД Places Service.
// Воркеру нужен только идентификатор и рейтинг, остальные колонки не читаются.
type Place struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RatingScore float64   `json:"rating_score"`
}

func (Place) TableName() string {
	return "places"
}

// Comment - комментарий к месту из MongoDB Comments Service
type Comment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	PlaceID     string             `json:"place_id" bson:"place_id"`
	CommentText string             `json:"comment_text" bson:"comment_text"`
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name" bson:"name"`
	CommentedAt time.Time          `json:"commented_at" bson:"commented_at"`
}

// CommentEvent - событие из топика comment_events.
// Формат должен совпадать с producer'ом в Places Service.
type CommentEvent struct {
	EventType string    `json:"event_type"`
	CommentID string    `json:"comment_id"`
	PlaceID   string    `json:"place_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CachedScore - оценка одного комментария, сохраненная в Redis.
// Текст комментария неизменяем, поэтому оценку можно переиспользовать
// между пересчётами вместо повторного вызова модели.
type CachedScore struct {
	CommentID string    `json:"comment_id"`
	Score     float64   `json:"score"`      // Оценка модели в [0,1]
	ScoredAt  time.Time `json:"scored_at"`  // Время вызова модели
}

const (
	EventCommentCreated = "COMMENT_CREATED"
)

const (
	RedisKeyPrefixScore = "scores:" // Префикс ключей оценок: scores:<comment_id>
)

func GetRedisKeyForScore(commentID string) string {
	return RedisKeyPrefixScore + commentID
}
