package service

import (
	"fmt"
	"log"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	"github.com/yourusername/quizpack-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
	"github.com/yourusername/quizpack-api/internal/service/packfeed"
	"github.com/yourusername/quizpack-api/internal/websocket"
)

// EventSender - часть WebSocket-хаба, используемая сервисами
type EventSender interface {
	SendJSONToUser(userID uint, event websocket.Event) error
}

// AnswerService обрабатывает ответы на вопросы паков и выводит из них
// события "результаты готовы"
type AnswerService struct {
	answerRepo       repository.AnswerRepository
	questionRepo     repository.QuestionRepository
	quizRepo         repository.QuizRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	feedService      *FeedService
	events           EventSender
	notifier         Notifier
}

// NewAnswerService создает новый сервис ответов
func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	feedService *FeedService,
	events EventSender,
	notifier Notifier,
) *AnswerService {
	return &AnswerService{
		answerRepo:       answerRepo,
		questionRepo:     questionRepo,
		quizRepo:         quizRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		feedService:      feedService,
		events:           events,
		notifier:         notifier,
	}
}

// SubmitSelfAnswer записывает ответ пользователя о себе.
// Если этот ответ завершил пак, для каждого друга, уже прошедшего пак
// о пользователе, разблокируются результаты.
func (s *AnswerService) SubmitSelfAnswer(userID, questionID uint, optionIndex int) (*entity.SelfAnswer, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if !question.IsValidOption(optionIndex) {
		return nil, fmt.Errorf("%w: индекс варианта %d вне диапазона вопроса %d",
			apperrors.ErrValidation, optionIndex, questionID)
	}

	answer := &entity.SelfAnswer{
		UserID:      userID,
		QuestionID:  questionID,
		OptionIndex: optionIndex,
	}
	if err := s.answerRepo.SaveSelfAnswer(answer); err != nil {
		return nil, err
	}

	s.feedService.InvalidateFeed(userID)

	if done, err := s.selfPackCompleted(question.QuizID, userID); err != nil {
		log.Printf("[AnswerService] Ошибка проверки завершённости пака %d user=%d: %v",
			question.QuizID, userID, err)
	} else if done {
		s.unlockAwaitingFriends(question.QuizID, userID)
	}

	return answer, nil
}

// SubmitFriendAnswer записывает ответ пользователя friendID о друге selfID.
// Если этот ответ завершил пак и субъект уже прошёл его о себе,
// результаты разблокируются для пары.
func (s *AnswerService) SubmitFriendAnswer(friendID, selfID, questionID uint, optionIndex int) (*entity.FriendAnswer, error) {
	if friendID == selfID {
		return nil, fmt.Errorf("%w: нельзя отвечать о друге от своего имени", apperrors.ErrValidation)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if !question.IsValidOption(optionIndex) {
		return nil, fmt.Errorf("%w: индекс варианта %d вне диапазона вопроса %d",
			apperrors.ErrValidation, optionIndex, questionID)
	}

	answer := &entity.FriendAnswer{
		FriendID:    friendID,
		SelfID:      selfID,
		QuestionID:  questionID,
		OptionIndex: optionIndex,
	}
	if err := s.answerRepo.SaveFriendAnswer(answer); err != nil {
		return nil, err
	}

	// Новый ответ меняет обе ленты: theirQuizzes отвечавшего
	// и потенциально yourQuizzes субъекта
	s.feedService.InvalidateFeed(friendID, selfID)

	if err := s.unlockAfterFriendAnswer(question.QuizID, selfID, friendID); err != nil {
		log.Printf("[AnswerService] Ошибка разблокировки результатов quiz=%d self=%d friend=%d: %v",
			question.QuizID, selfID, friendID, err)
	}

	return answer, nil
}

// selfPackCompleted проверяет, завершил ли пользователь пак о себе
func (s *AnswerService) selfPackCompleted(quizID, userID uint) (bool, error) {
	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return false, err
	}
	selfAnswers, err := s.answerRepo.GetSelfAnswersByUser(userID)
	if err != nil {
		return false, err
	}
	completed, err := packfeed.CompletedSelfPacks(questions, onlyQuizQuestions(questions, selfAnswers))
	if err != nil {
		return false, err
	}
	for _, c := range completed {
		if c.QuizID == quizID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// onlyQuizQuestions отбрасывает ответы на вопросы других паков:
// каталог здесь загружен частично, и ссылки наружу не являются ошибкой данных
func onlyQuizQuestions(questions []entity.Question, answers []entity.SelfAnswer) []entity.SelfAnswer {
	known := make(map[uint]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	filtered := make([]entity.SelfAnswer, 0, len(answers))
	for _, a := range answers {
		if known[a.QuestionID] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// unlockAwaitingFriends разблокирует результаты пака для всех друзей,
// которые прошли его о пользователе раньше, чем он сам о себе.
// Ошибки отдельных друзей не прерывают обработку остальных.
func (s *AnswerService) unlockAwaitingFriends(quizID, userID uint) {
	questions, err := s.questionRepo.GetAll()
	if err != nil {
		log.Printf("[AnswerService] Ошибка загрузки вопросов: %v", err)
		return
	}
	friendAnswers, err := s.answerRepo.GetFriendAnswersBySubject(userID)
	if err != nil {
		log.Printf("[AnswerService] Ошибка загрузки ответов друзей user=%d: %v", userID, err)
		return
	}

	friendIDs, err := packfeed.FriendsAwaitingResults(quizID, userID, questions, friendAnswers)
	if err != nil {
		log.Printf("[AnswerService] Ошибка вычисления ожидающих друзей quiz=%d user=%d: %v",
			quizID, userID, err)
		return
	}

	for _, friendID := range friendIDs {
		created, err := s.notificationRepo.CreateIfAbsent(&entity.ResultNotification{
			QuizID:   quizID,
			SelfID:   userID,
			FriendID: friendID,
		})
		if err != nil {
			log.Printf("[AnswerService] Ошибка записи уведомления quiz=%d self=%d friend=%d: %v",
				quizID, userID, friendID, err)
			continue
		}
		if created {
			s.dispatchResultsReady(friendID, packfeed.ResultReady{QuizID: quizID, SelfID: userID, FriendID: friendID})
		}
	}
}

// unlockAfterFriendAnswer проверяет, разблокировал ли новый ответ друга
// результаты пака для пары (selfID, friendID)
func (s *AnswerService) unlockAfterFriendAnswer(quizID, selfID, friendID uint) error {
	questions, err := s.questionRepo.GetAll()
	if err != nil {
		return err
	}
	selfAnswers, err := s.answerRepo.GetSelfAnswersByUser(selfID)
	if err != nil {
		return err
	}
	friendAnswers, err := s.answerRepo.GetFriendAnswersForPair(selfID, friendID)
	if err != nil {
		return err
	}
	existing, err := s.notificationRepo.GetBySubject(selfID)
	if err != nil {
		return err
	}

	ready, err := packfeed.ReadyAfterFriendAnswer(
		quizID, selfID, friendID, questions, selfAnswers, friendAnswers, existing)
	if err != nil {
		return err
	}
	if ready == nil {
		return nil
	}

	created, err := s.notificationRepo.CreateIfAbsent(&entity.ResultNotification{
		QuizID:   quizID,
		SelfID:   selfID,
		FriendID: friendID,
	})
	if err != nil {
		return err
	}
	// created == false означает, что конкурирующий запрос успел раньше;
	// уведомление уже ушло, повторять его нельзя
	if created {
		s.dispatchResultsReady(selfID, *ready)
	}
	return nil
}

// dispatchResultsReady доставляет событие "результаты готовы" получателю.
// При завершении своего пака получатель - каждый уже ответивший друг,
// при завершающем ответе друга - субъект пака.
// Запись в БД уже сделана, поэтому ошибки доставки только логируются:
// клиент увидит разблокированный пак при следующем запросе ленты.
func (s *AnswerService) dispatchResultsReady(recipientID uint, ready packfeed.ResultReady) {
	log.Printf("[AnswerService] Результаты разблокированы: quiz=%d self=%d friend=%d recipient=%d",
		ready.QuizID, ready.SelfID, ready.FriendID, recipientID)

	s.feedService.InvalidateFeed(ready.SelfID, ready.FriendID)

	if s.events != nil {
		event := websocket.Event{Type: websocket.EventResultsReady, Data: ready}
		if err := s.events.SendJSONToUser(recipientID, event); err != nil {
			log.Printf("[AnswerService] Ошибка отправки WS-события: %v", err)
		}
	}

	if s.notifier == nil {
		return
	}
	counterpartID := ready.FriendID
	if recipientID == ready.FriendID {
		counterpartID = ready.SelfID
	}
	user, err := s.userRepo.GetByID(recipientID)
	if err != nil {
		log.Printf("[AnswerService] Ошибка загрузки пользователя %d: %v", recipientID, err)
		return
	}
	friend, err := s.userRepo.GetByID(counterpartID)
	if err != nil {
		log.Printf("[AnswerService] Ошибка загрузки пользователя %d: %v", counterpartID, err)
		return
	}
	quiz, err := s.quizRepo.GetByID(ready.QuizID)
	if err != nil {
		log.Printf("[AnswerService] Ошибка загрузки пака %d: %v", ready.QuizID, err)
		return
	}
	if err := s.notifier.ResultsReady(user, quiz, friend); err != nil {
		log.Printf("[AnswerService] Ошибка email-уведомления user=%d: %v", user.ID, err)
	}
}
