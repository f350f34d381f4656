package packfeed

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// ResultReady - выведенное событие "результаты пака разблокированы".
// Получатель уведомления - субъект пака (SelfID).
type ResultReady struct {
	QuizID   uint `json:"quiz_id"`
	SelfID   uint `json:"self_id"`
	FriendID uint `json:"friend_id"`
}

// FriendsAwaitingResults вычисляет, какие друзья уже завершили пак quizID
// о пользователе userID. Вызывается после того, как пользователь закончил
// отвечать на вопросы пака о себе: для каждого такого друга результаты
// разблокируются немедленно.
// Возвращает ID друзей в порядке первого появления в ответах.
func FriendsAwaitingResults(
	quizID uint,
	userID uint,
	questions []entity.Question,
	friendAnswers []entity.FriendAnswer,
) ([]uint, error) {
	ix := newQuestionIndex(questions)
	required, err := ix.required(quizID)
	if err != nil {
		return nil, err
	}

	// Тройки только этого пака и этого субъекта
	keys := make([]PairCompletion, 0, len(friendAnswers))
	for _, a := range friendAnswers {
		answerQuizID, err := ix.resolveQuizID(a.QuestionID)
		if err != nil {
			return nil, err
		}
		if answerQuizID != quizID || a.SelfID != userID {
			continue
		}
		keys = append(keys, PairCompletion{QuizID: quizID, SelfID: userID, FriendID: a.FriendID})
	}

	friendIDs := make([]uint, 0)
	for _, group := range Collect(keys, func(k PairCompletion) PairCompletion { return k }) {
		if len(group) >= required {
			friendIDs = append(friendIDs, group[0].FriendID)
		}
	}

	return friendIDs, nil
}

// ReadyAfterFriendAnswer решает, разблокировал ли только что записанный
// ответ друга результаты пака. friendAnswers уже содержит новый ответ.
//
// Событие выводится, когда выполняются все три условия:
//  1. количество ответов friendID о selfID по вопросам пака достигло
//     количества вопросов пака;
//  2. субъект selfID независимо завершил этот пак о себе;
//  3. для тройки (quizID, selfID, friendID) ещё нет уведомления.
//
// Проверка по existing - локальное решение вызывающего кода; гарантию
// "ровно один раз" при конкурирующих клиентах даёт уникальное ограничение
// хранилища (NotificationRepository.CreateIfAbsent), а не этот список.
func ReadyAfterFriendAnswer(
	quizID uint,
	selfID uint,
	friendID uint,
	questions []entity.Question,
	selfAnswers []entity.SelfAnswer,
	friendAnswers []entity.FriendAnswer,
	existing []entity.ResultNotification,
) (*ResultReady, error) {
	ix := newQuestionIndex(questions)
	required, err := ix.required(quizID)
	if err != nil {
		return nil, err
	}

	// 1. Ответы друга по точной тройке
	friendCount := 0
	for _, a := range friendAnswers {
		answerQuizID, err := ix.resolveQuizID(a.QuestionID)
		if err != nil {
			return nil, err
		}
		if answerQuizID == quizID && a.SelfID == selfID && a.FriendID == friendID {
			friendCount++
		}
	}
	if friendCount < required {
		return nil, nil
	}

	// 2. Субъект завершил пак о себе
	selfCount := 0
	for _, a := range selfAnswers {
		answerQuizID, err := ix.resolveQuizID(a.QuestionID)
		if err != nil {
			return nil, err
		}
		if answerQuizID == quizID && a.UserID == selfID {
			selfCount++
		}
	}
	if selfCount < required {
		return nil, nil
	}

	// 3. Уведомления для тройки ещё нет
	for _, n := range existing {
		if n.QuizID == quizID && n.SelfID == selfID && n.FriendID == friendID {
			return nil, nil
		}
	}

	return &ResultReady{QuizID: quizID, SelfID: selfID, FriendID: friendID}, nil
}
