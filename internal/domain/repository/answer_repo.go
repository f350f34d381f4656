package repository

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с ответами на вопросы паков.
// Ответы не обновляются и не удаляются: лента всегда пересчитывается
// по полному текущему набору записей.
type AnswerRepository interface {
	SaveSelfAnswer(answer *entity.SelfAnswer) error
	SaveFriendAnswer(answer *entity.FriendAnswer) error

	// GetSelfAnswersByUser возвращает все ответы пользователя о себе
	GetSelfAnswersByUser(userID uint) ([]entity.SelfAnswer, error)

	// GetFriendAnswersBySubject возвращает все ответы друзей о пользователе selfID
	GetFriendAnswersBySubject(selfID uint) ([]entity.FriendAnswer, error)

	// GetFriendAnswersByFriend возвращает все ответы пользователя friendID о его друзьях
	GetFriendAnswersByFriend(friendID uint) ([]entity.FriendAnswer, error)

	// GetFriendAnswersForPair возвращает ответы friendID о selfID
	GetFriendAnswersForPair(selfID, friendID uint) ([]entity.FriendAnswer, error)

	// GetAllSelfAnswers возвращает все ответы о себе (для отчётов)
	GetAllSelfAnswers() ([]entity.SelfAnswer, error)

	// GetAllFriendAnswers возвращает все ответы о друзьях (для отчётов)
	GetAllFriendAnswers() ([]entity.FriendAnswer, error)
}
