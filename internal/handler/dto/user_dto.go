package dto

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для клиента
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
	}
}

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"max=100"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse - ответ на успешную регистрацию или вход
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// UpdateProfileRequest - запрос обновления профиля
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// PushTokenRequest - запрос сохранения push-токена устройства
type PushTokenRequest struct {
	PushToken string `json:"push_token" binding:"required,max=255"`
}
