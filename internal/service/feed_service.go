package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizpack-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
	"github.com/yourusername/quizpack-api/internal/service/packfeed"
)

// FeedService строит и кеширует ленту паков пользователя
type FeedService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewFeedService создает новый сервис ленты.
// cacheTTL равный нулю отключает кеширование.
func NewFeedService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *FeedService {
	return &FeedService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// feedCacheKey формирует ключ кеша ленты пользователя
func feedCacheKey(userID uint) string {
	return fmt.Sprintf("feed:%d", userID)
}

// GetFeed возвращает ленту пользователя: паки о себе с ответившими друзьями
// и паки о друзьях. Лента всегда пересчитывается с нуля по текущему
// полному набору ответов; кеш служит только ускорением и инвалидируется
// при каждом новом ответе любого участника.
func (s *FeedService) GetFeed(userID uint) (*packfeed.FeedLists, error) {
	if s.cacheTTL > 0 {
		var cached packfeed.FeedLists
		err := s.cacheRepo.GetJSON(feedCacheKey(userID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			// Ошибка кеша не фатальна, лента строится по БД
			log.Printf("[FeedService] Ошибка чтения кеша ленты user=%d: %v", userID, err)
		}
	}

	feed, err := s.buildFeed(userID)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(feedCacheKey(userID), feed, s.cacheTTL); err != nil {
			log.Printf("[FeedService] Ошибка записи кеша ленты user=%d: %v", userID, err)
		}
	}

	return feed, nil
}

// buildFeed собирает снимок данных и классифицирует его
func (s *FeedService) buildFeed(userID uint) (*packfeed.FeedLists, error) {
	quizzes, err := s.quizRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки паков: %w", err)
	}
	questions, err := s.questionRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки вопросов: %w", err)
	}
	selfAnswers, err := s.answerRepo.GetSelfAnswersByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки ответов о себе: %w", err)
	}

	// Для классификации нужны обе стороны: ответы друзей о пользователе
	// (yourQuizzes) и ответы пользователя о друзьях (theirQuizzes)
	aboutUser, err := s.answerRepo.GetFriendAnswersBySubject(userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки ответов друзей: %w", err)
	}
	byUser, err := s.answerRepo.GetFriendAnswersByFriend(userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки ответов о друзьях: %w", err)
	}

	snap := packfeed.Snapshot{
		Quizzes:       quizzes,
		Questions:     questions,
		SelfAnswers:   selfAnswers,
		FriendAnswers: append(aboutUser, byUser...),
	}

	feed, err := packfeed.BuildFeed(snap, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка классификации ленты user=%d: %w", userID, err)
	}
	return feed, nil
}

// InvalidateFeed сбрасывает кеш ленты перечисленных пользователей
func (s *FeedService) InvalidateFeed(userIDs ...uint) {
	if s.cacheTTL <= 0 {
		return
	}
	for _, id := range userIDs {
		if err := s.cacheRepo.Delete(feedCacheKey(id)); err != nil {
			log.Printf("[FeedService] Ошибка инвалидации кеша ленты user=%d: %v", id, err)
		}
	}
}
