package postgres

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// NotificationRepo реализует repository.NotificationRepository
type NotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo создает новый репозиторий уведомлений
func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// CreateIfAbsent атомарно вставляет уведомление через ON CONFLICT DO NOTHING.
// Дедупликация выполняется уникальным индексом idx_notification_triple,
// поэтому гонка "проверил - вставил" между клиентами невозможна:
// из конкурирующих вставок ровно одна вернет true.
func (r *NotificationRepo) CreateIfAbsent(notification *entity.ResultNotification) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "quiz_id"}, {Name: "self_id"}, {Name: "friend_id"}},
		DoNothing: true,
	}).Create(notification)
	if result.Error != nil {
		log.Printf("[NotificationRepo] Ошибка вставки уведомления (quiz=%d, self=%d, friend=%d): %v",
			notification.QuizID, notification.SelfID, notification.FriendID, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetBySubject возвращает все уведомления, где selfID - субъект пака
func (r *NotificationRepo) GetBySubject(selfID uint) ([]entity.ResultNotification, error) {
	var notifications []entity.ResultNotification
	err := r.db.Where("self_id = ?", selfID).Order("created_at").Find(&notifications).Error
	return notifications, err
}

// GetByQuiz возвращает все уведомления по паку
func (r *NotificationRepo) GetByQuiz(quizID uint) ([]entity.ResultNotification, error) {
	var notifications []entity.ResultNotification
	err := r.db.Where("quiz_id = ?", quizID).Order("created_at").Find(&notifications).Error
	return notifications, err
}
