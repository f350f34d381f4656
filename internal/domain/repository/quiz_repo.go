package repository

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с паками
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	GetAll() ([]entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	Delete(id uint) error
}
