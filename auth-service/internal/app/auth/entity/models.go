package entity

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет пользователя в системе
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // не возвращаем в JSON
	Role         string    `json:"role" db:"role"`
	UserImg      string    `json:"user_img" db:"user_img"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TokenPair содержит access токен и время его жизни
type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // время жизни access token в секундах
}
