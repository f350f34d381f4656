package entity

import (
	"time"
)

// ResultNotification фиксирует факт отправки уведомления "результаты готовы"
// для пары (пак, субъект, друг).
// Уникальный индекс по тройке - ключ идемпотентности: конкурирующие клиенты
// могут одновременно вывести одно и то же событие, но вставится только одна запись.
type ResultNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"not null;index;uniqueIndex:idx_notification_triple" json:"quiz_id"`
	SelfID    uint      `gorm:"not null;index;uniqueIndex:idx_notification_triple" json:"self_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_notification_triple" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ResultNotification) TableName() string {
	return "result_notifications"
}
