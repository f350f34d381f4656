package entity

import (
	"time"
)

// SelfAnswer представляет ответ пользователя на вопрос о себе
type SelfAnswer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_self_user_question" json:"user_id"`
	QuestionID  uint      `gorm:"not null;index;uniqueIndex:idx_self_user_question" json:"question_id"`
	OptionIndex int       `gorm:"not null" json:"option_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (SelfAnswer) TableName() string {
	return "self_answers"
}

// FriendAnswer представляет ответ пользователя FriendID на вопрос
// о другом пользователе SelfID.
// Составной идентификатор завершённости пака - тройка (quizID, selfID, friendID),
// при этом quizID всегда выводится через QuestionID -> Question.QuizID.
type FriendAnswer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FriendID    uint      `gorm:"not null;index;uniqueIndex:idx_friend_self_question" json:"friend_id"`
	SelfID      uint      `gorm:"not null;index;uniqueIndex:idx_friend_self_question" json:"self_id"`
	QuestionID  uint      `gorm:"not null;index;uniqueIndex:idx_friend_self_question" json:"question_id"`
	OptionIndex int       `gorm:"not null" json:"option_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (FriendAnswer) TableName() string {
	return "friend_answers"
}
