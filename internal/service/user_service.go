package service

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
	"github.com/yourusername/quizpack-api/internal/domain/repository"
)

// UserService предоставляет методы для работы с профилями пользователей
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByIDs возвращает пользователей по списку ID (для обогащения ленты)
func (s *UserService) GetByIDs(ids []uint) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	return s.userRepo.GetByIDs(ids)
}

// UpdateProfile обновляет отображаемое имя пользователя
func (s *UserService) UpdateProfile(userID uint, name string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPushToken сохраняет push-токен устройства пользователя
func (s *UserService) SetPushToken(userID uint, pushToken string) error {
	return s.userRepo.UpdatePushToken(userID, pushToken)
}
