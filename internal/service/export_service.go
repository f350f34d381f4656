package service

import (
	"fmt"

	"github.com/yourusername/quizpack-api/internal/domain/repository"
	"github.com/yourusername/quizpack-api/internal/service/packfeed"
)

// QuizCompletionRow - сводная строка отчёта по паку
type QuizCompletionRow struct {
	QuizID            uint
	QuizName          string
	QuestionCount     int
	SelfCompletions   int
	FriendCompletions int
	UnlockedPairs     int
}

// PairCompletionRow - строка отчёта по паре (субъект, отвечавший)
type PairCompletionRow struct {
	QuizID         uint
	QuizName       string
	SelfUsername   string
	FriendUsername string
	Unlocked       bool
}

// ExportService собирает данные для админских отчётов о прохождении паков
type ExportService struct {
	quizRepo         repository.QuizRepository
	questionRepo     repository.QuestionRepository
	answerRepo       repository.AnswerRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewExportService создает новый сервис отчётов
func NewExportService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *ExportService {
	return &ExportService{
		quizRepo:         quizRepo,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// CompletionReport строит отчёт о прохождении всех паков:
// сводку по пакам и детализацию по парам друзей.
// Завершённость пересчитывается с нуля по полному набору ответов,
// тем же кодом, что и пользовательская лента.
func (s *ExportService) CompletionReport() ([]QuizCompletionRow, []PairCompletionRow, error) {
	quizzes, err := s.quizRepo.GetAll()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки паков: %w", err)
	}
	questions, err := s.questionRepo.GetAll()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки вопросов: %w", err)
	}
	selfAnswers, err := s.answerRepo.GetAllSelfAnswers()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки ответов о себе: %w", err)
	}
	friendAnswers, err := s.answerRepo.GetAllFriendAnswers()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки ответов о друзьях: %w", err)
	}

	completedSelf, err := packfeed.CompletedSelfPacks(questions, selfAnswers)
	if err != nil {
		return nil, nil, err
	}
	completedPairs, err := packfeed.CompletedFriendPacks(questions, friendAnswers)
	if err != nil {
		return nil, nil, err
	}

	selfDone := make(map[packfeed.SelfCompletion]bool, len(completedSelf))
	selfByQuiz := make(map[uint]int)
	for _, c := range completedSelf {
		selfDone[c] = true
		selfByQuiz[c.QuizID]++
	}
	pairsByQuiz := make(map[uint]int)
	for _, p := range completedPairs {
		pairsByQuiz[p.QuizID]++
	}
	questionsByQuiz := make(map[uint]int)
	for _, q := range questions {
		questionsByQuiz[q.QuizID]++
	}

	quizNames := make(map[uint]string, len(quizzes))
	summary := make([]QuizCompletionRow, 0, len(quizzes))
	for _, quiz := range quizzes {
		quizNames[quiz.ID] = quiz.Name
		notifications, err := s.notificationRepo.GetByQuiz(quiz.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("ошибка загрузки уведомлений пака %d: %w", quiz.ID, err)
		}
		summary = append(summary, QuizCompletionRow{
			QuizID:            quiz.ID,
			QuizName:          quiz.Name,
			QuestionCount:     questionsByQuiz[quiz.ID],
			SelfCompletions:   selfByQuiz[quiz.ID],
			FriendCompletions: pairsByQuiz[quiz.ID],
			UnlockedPairs:     len(notifications),
		})
	}

	usernames, err := s.loadUsernames(completedPairs)
	if err != nil {
		return nil, nil, err
	}

	pairs := make([]PairCompletionRow, 0, len(completedPairs))
	for _, p := range completedPairs {
		pairs = append(pairs, PairCompletionRow{
			QuizID:         p.QuizID,
			QuizName:       quizNames[p.QuizID],
			SelfUsername:   usernames[p.SelfID],
			FriendUsername: usernames[p.FriendID],
			Unlocked:       selfDone[packfeed.SelfCompletion{QuizID: p.QuizID, UserID: p.SelfID}],
		})
	}

	return summary, pairs, nil
}

// loadUsernames возвращает имена всех участников завершённых пар
func (s *ExportService) loadUsernames(pairs []packfeed.PairCompletion) (map[uint]string, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	for _, p := range pairs {
		for _, id := range []uint{p.SelfID, p.FriendID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки пользователей: %w", err)
	}
	usernames := make(map[uint]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}
	return usernames, nil
}
