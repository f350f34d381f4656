package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	"github.com/yourusername/quizpack-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
	"github.com/yourusername/quizpack-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и аутентификации
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(username, email, password, name string) (*entity.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email уже занят", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: имя пользователя уже занято", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Name:     name,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[AuthService] Зарегистрирован пользователь: id=%d username=%s", user.ID, user.Username)
	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя с JWT-токеном
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
