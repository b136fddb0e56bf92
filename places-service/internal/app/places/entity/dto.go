package entity

import (
	"time"

	"github.com/google/uuid"
)

// CreatePlaceRequest - запрос на создание места.
// Изображение уже загружено в объектное хранилище, передается только URL.
type CreatePlaceRequest struct {
	Img          string   `json:"img" validate:"required,url"`
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Content      string   `json:"content" validate:"required,min=10"`
	Tags         []string `json:"tags" validate:"max=20,dive,max=50"`
	UserFullName string   `json:"user_full_name" validate:"required,max=100"`
	RatingScore  float64  `json:"rating_score" validate:"min=0,max=5"`
}

// PlaceByUserIDRequest - запрос мест по ID пользователя
type PlaceByUserIDRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// PlaceByPlaceIDRequest - запрос места по его ID
type PlaceByPlaceIDRequest struct {
	PlaceID uuid.UUID `json:"place_id" validate:"required"`
}

// PlacesByTagRequest - запрос мест по тегу с фильтром по рейтингу
type PlacesByTagRequest struct {
	Tag      string  `json:"tag" validate:"required,max=50"`
	MinScore float64 `json:"minscore" validate:"min=0,max=5"`
	MaxScore float64 `json:"maxscore" validate:"min=0,max=5"`
}

// CreateCommentRequest - запрос на создание комментария.
// UserID не обязателен: гостевые комментарии привязаны только к email и имени.
type CreateCommentRequest struct {
	PlaceID     string `json:"place_id" validate:"required,uuid"`
	CommentText string `json:"comment_text" validate:"required,min=2,max=2000"`
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required,max=100"`
	UserID      string `json:"user_id" validate:"omitempty,uuid"`
}

// PlaceResponse - место в форме ответа с декодированными тегами
type PlaceResponse struct {
	ID           uuid.UUID `json:"id"`
	Img          string    `json:"img"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Tags         []string  `json:"tags"`
	UserID       uuid.UUID `json:"user_id"`
	UserFullName string    `json:"user_full_name"`
	RatingScore  float64   `json:"rating_score"`
	PostedDate   time.Time `json:"posted_date"`
}

// NewPlaceResponse декодирует теги и отдает место в форме ответа
func NewPlaceResponse(place Place) PlaceResponse {
	return PlaceResponse{
		ID:           place.ID,
		Img:          place.Img,
		Title:        place.Title,
		Content:      place.Content,
		Tags:         DecodeTags(place.Tags),
		UserID:       place.UserID,
		UserFullName: place.UserFullName,
		RatingScore:  place.RatingScore,
		PostedDate:   place.PostedDate,
	}
}

// NewPlaceResponses преобразует список мест
func NewPlaceResponses(places []Place) []PlaceResponse {
	responses := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		responses = append(responses, NewPlaceResponse(p))
	}
	return responses
}

// RatingResponse - тело успешного ответа эндпоинта пересчёта рейтинга
type RatingResponse struct {
	RatingScore float64 `json:"rating_score"`
}

// Response - единый конверт ответа API: {status, message, data}
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ListData - вложенный уровень data для списочных эндпоинтов,
// сохранен для совместимости с клиентами: {"data": {"data": [...]}}
type ListData struct {
	Data interface{} `json:"data"`
}
