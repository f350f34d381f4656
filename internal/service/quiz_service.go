package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	"github.com/yourusername/quizpack-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
	"github.com/yourusername/quizpack-api/internal/websocket"
)

// Ключ и время жизни кеша каталога паков.
// Каталог меняется только админскими операциями, поэтому TTL длинный,
// а каждая операция записи сбрасывает кеш явно.
const (
	catalogCacheKey = "quizzes:catalog"
	catalogCacheTTL = 10 * time.Minute
)

// Broadcaster - часть WebSocket-хаба, рассылающая событие всем клиентам
type Broadcaster interface {
	BroadcastJSON(event websocket.Event) error
}

// QuizService предоставляет методы для работы с каталогом паков
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
	events       Broadcaster
}

// NewQuizService создает новый сервис паков
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
	events Broadcaster,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
		events:       events,
	}
}

// GetCatalog возвращает все паки без вопросов
func (s *QuizService) GetCatalog() ([]entity.Quiz, error) {
	if s.cacheRepo != nil {
		var cached []entity.Quiz
		if err := s.cacheRepo.GetJSON(catalogCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Ошибка чтения кеша каталога: %v", err)
		}
	}

	quizzes, err := s.quizRepo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(catalogCacheKey, quizzes, catalogCacheTTL); err != nil {
			log.Printf("[QuizService] Ошибка записи кеша каталога: %v", err)
		}
	}
	return quizzes, nil
}

// GetWithQuestions возвращает пак вместе с его вопросами
func (s *QuizService) GetWithQuestions(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(id)
}

// CreateQuiz создает пак вместе с вопросами.
// Пак без вопросов не допускается: порог завершённости такого пака
// был бы нулевым и он считался бы пройденным всеми.
func (s *QuizService) CreateQuiz(quiz *entity.Quiz, questions []entity.Question) (*entity.Quiz, error) {
	if quiz.Name == "" {
		return nil, fmt.Errorf("%w: название пака обязательно", apperrors.ErrValidation)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: пак должен содержать хотя бы один вопрос", apperrors.ErrValidation)
	}
	for i := range questions {
		if questions[i].OptionsCount() < 2 {
			return nil, fmt.Errorf("%w: вопрос %d должен иметь минимум два варианта ответа",
				apperrors.ErrValidation, i+1)
		}
		for _, opt := range questions[i].Options {
			switch opt.Side {
			case entity.OptionSideLeft, entity.OptionSideRight, entity.OptionSideNeither, entity.OptionSideNew:
			default:
				return nil, fmt.Errorf("%w: недопустимая сторона варианта %q в вопросе %d",
					apperrors.ErrValidation, opt.Side, i+1)
			}
		}
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].QuizID = quiz.ID
	}
	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	quiz.Questions = questions

	s.catalogChanged()
	log.Printf("[QuizService] Создан пак: id=%d name=%q questions=%d", quiz.ID, quiz.Name, len(questions))
	return quiz, nil
}

// QuizUpdate - частичное обновление метаданных пака.
// Нулевой указатель означает "оставить поле как есть".
type QuizUpdate struct {
	Name                 *string
	LeftLabel            *string
	RightLabel           *string
	SubtitleSecondPerson *string
	SubtitleThirdPerson  *string
	ResultLabels         *entity.ResultLabelArray
}

// UpdateQuiz обновляет метаданные пака (вопросы не меняются)
func (s *QuizService) UpdateQuiz(id uint, upd QuizUpdate) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: название пака обязательно", apperrors.ErrValidation)
		}
		quiz.Name = *upd.Name
	}
	if upd.LeftLabel != nil {
		quiz.LeftLabel = *upd.LeftLabel
	}
	if upd.RightLabel != nil {
		quiz.RightLabel = *upd.RightLabel
	}
	if upd.SubtitleSecondPerson != nil {
		quiz.SubtitleSecondPerson = *upd.SubtitleSecondPerson
	}
	if upd.SubtitleThirdPerson != nil {
		quiz.SubtitleThirdPerson = *upd.SubtitleThirdPerson
	}
	if upd.ResultLabels != nil {
		quiz.ResultLabels = *upd.ResultLabels
	}

	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}
	s.catalogChanged()
	log.Printf("[QuizService] Обновлён пак: id=%d name=%q", quiz.ID, quiz.Name)
	return quiz, nil
}

// DeleteQuiz удаляет пак из каталога
func (s *QuizService) DeleteQuiz(id uint) error {
	if err := s.quizRepo.Delete(id); err != nil {
		return err
	}
	s.catalogChanged()
	return nil
}

// catalogChanged сбрасывает кеш каталога и просит всех подключенных
// клиентов перечитать свои ленты
func (s *QuizService) catalogChanged() {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(catalogCacheKey); err != nil {
			log.Printf("[QuizService] Ошибка инвалидации кеша каталога: %v", err)
		}
	}
	if s.events != nil {
		if err := s.events.BroadcastJSON(websocket.Event{Type: websocket.EventFeedUpdated}); err != nil {
			log.Printf("[QuizService] Ошибка рассылки события обновления каталога: %v", err)
		}
	}
}
