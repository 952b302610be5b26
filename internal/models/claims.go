package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ContextKey - отдельный тип для ключей контекста, чтобы избежать коллизий.
type ContextKey string

// UserContextKey - ключ, под которым middleware кладет ID пользователя в контекст.
const UserContextKey ContextKey = "userID"

// Claims - пользовательские клеймы JWT access токена.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
