package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	"github.com/yourusername/quizpack-api/internal/websocket"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetAll() ([]entity.Quiz, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetAll() ([]entity.Question, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) SaveSelfAnswer(answer *entity.SelfAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) SaveFriendAnswer(answer *entity.FriendAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetSelfAnswersByUser(userID uint) ([]entity.SelfAnswer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SelfAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetFriendAnswersBySubject(selfID uint) ([]entity.FriendAnswer, error) {
	args := m.Called(selfID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FriendAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetFriendAnswersByFriend(friendID uint) ([]entity.FriendAnswer, error) {
	args := m.Called(friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FriendAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetFriendAnswersForPair(selfID, friendID uint) ([]entity.FriendAnswer, error) {
	args := m.Called(selfID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FriendAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetAllSelfAnswers() ([]entity.SelfAnswer, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SelfAnswer), args.Error(1)
}

func (m *MockAnswerRepository) GetAllFriendAnswers() ([]entity.FriendAnswer, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FriendAnswer), args.Error(1)
}

// MockNotificationRepository реализует repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateIfAbsent(notification *entity.ResultNotification) (bool, error) {
	args := m.Called(notification)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) GetBySubject(selfID uint) ([]entity.ResultNotification, error) {
	args := m.Called(selfID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ResultNotification), args.Error(1)
}

func (m *MockNotificationRepository) GetByQuiz(quizID uint) ([]entity.ResultNotification, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ResultNotification), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ids []uint) ([]entity.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePushToken(userID uint, pushToken string) error {
	args := m.Called(userID, pushToken)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockBroadcaster реализует Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastJSON(event websocket.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockEventSender реализует EventSender
type MockEventSender struct {
	mock.Mock
}

func (m *MockEventSender) SendJSONToUser(userID uint, event websocket.Event) error {
	args := m.Called(userID, event)
	return args.Error(0)
}

// MockNotifier реализует Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ResultsReady(user *entity.User, quiz *entity.Quiz, friend *entity.User) error {
	args := m.Called(user, quiz, friend)
	return args.Error(0)
}
