package repository

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// NotificationRepository определяет методы для работы с уведомлениями
// "результаты готовы".
type NotificationRepository interface {
	// CreateIfAbsent атомарно вставляет запись, если тройки (quizID, selfID, friendID)
	// ещё нет. Возвращает true, если запись была создана этим вызовом.
	// Конкурирующие вставки разрешаются уникальным индексом на стороне БД,
	// а не проверкой перед вставкой.
	CreateIfAbsent(notification *entity.ResultNotification) (bool, error)

	// GetBySubject возвращает все уведомления, где selfID - субъект пака
	GetBySubject(selfID uint) ([]entity.ResultNotification, error)

	// GetByQuiz возвращает все уведомления по паку
	GetByQuiz(quizID uint) ([]entity.ResultNotification, error)
}
