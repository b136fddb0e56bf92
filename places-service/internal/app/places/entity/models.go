package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Place представляет место (пост о путешествии) в PostgreSQL.
// Теги хранятся одной строкой через запятую и декодируются на границе API.
type Place struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Img          string    `json:"img"` // URL изображения в объектном хранилище
	Title        string    `json:"title"`
	UserID       uuid.UUID `json:"user_id"`
	UserFullName string    `json:"user_full_name"`
	PostedDate   time.Time `json:"posted_date"`
	Content      string    `json:"content"`
	RatingScore  float64   `json:"rating_score"` // Агрегированный рейтинг по шкале [0,5]
	Tags         string    `json:"-"`            // Закодированные теги, наружу не отдаются
}

func (Place) TableName() string {
	return "places"
}

// Comment представляет комментарий к месту в MongoDB.
// UserID пустой для гостевых комментариев, не привязанных к пользователю.
type Comment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`   // UUID пользователя из Auth Service
	PlaceID     string             `json:"place_id" bson:"place_id"` // UUID места
	CommentText string             `json:"comment_text" bson:"comment_text"`
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name" bson:"name"`
	CommentedAt time.Time          `json:"commented_at" bson:"commented_at"`
}

// CommentView - комментарий в форме ответа API
type CommentView struct {
	CommentID   string    `json:"comment_id"`
	CommentText string    `json:"comment_text"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CommentedAt time.Time `json:"commented_at"`
	UserID      string    `json:"user_id"`
	PlaceID     string    `json:"place_id"`
}

// NewCommentView преобразует комментарий в форму ответа
func NewCommentView(c Comment) CommentView {
	return CommentView{
		CommentID:   c.ID.Hex(),
		CommentText: c.CommentText,
		Email:       c.Email,
		Name:        c.Name,
		CommentedAt: c.CommentedAt,
		UserID:      c.UserID,
		PlaceID:     c.PlaceID,
	}
}

// PlaceWithComments - денормализованная проекция места с его комментариями.
// Собирается по запросу, никогда не сохраняется.
type PlaceWithComments struct {
	ID           uuid.UUID     `json:"id"`
	Img          string        `json:"img"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Tags         []string      `json:"tags"`
	UserID       uuid.UUID     `json:"user_id"`
	UserFullName string        `json:"user_full_name"`
	RatingScore  float64       `json:"rating_score"`
	PostedDate   time.Time     `json:"posted_date"`
	Comments     []CommentView `json:"comments"`
}

// ComposePlace собирает место с комментариями в одну проекцию.
// Порядок комментариев сохраняется в порядке выборки из хранилища.
func ComposePlace(place Place, comments []Comment) PlaceWithComments {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewCommentView(c))
	}

	return PlaceWithComments{
		ID:           place.ID,
		Img:          place.Img,
		Title:        place.Title,
		Content:      place.Content,
		Tags:         DecodeTags(place.Tags),
		UserID:       place.UserID,
		UserFullName: place.UserFullName,
		RatingScore:  place.RatingScore,
		PostedDate:   place.PostedDate,
		Comments:     views,
	}
}

// CommentEvent представляет событие о комментарии для Kafka
type CommentEvent struct {
	EventType string    `json:"event_type"` // COMMENT_CREATED
	CommentID string    `json:"comment_id"`
	PlaceID   string    `json:"place_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

const EventCommentCreated = "COMMENT_CREATED"
