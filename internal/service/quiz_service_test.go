package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
	"github.com/yourusername/quizpack-api/internal/websocket"
)

func strPtr(s string) *string { return &s }

func TestQuizService_UpdateQuiz_PartialUpdate(t *testing.T) {
	// Arrange: меняется только название, остальные поля сохраняются
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	mockBroadcaster := new(MockBroadcaster)

	existing := &entity.Quiz{
		ID:        1,
		Name:      "Кто ты на вечеринке",
		LeftLabel: "Душа компании",
	}
	mockQuizRepo.On("GetByID", uint(1)).Return(existing, nil)
	mockQuizRepo.On("Update", mock.MatchedBy(func(q *entity.Quiz) bool {
		return q.ID == 1 && q.Name == "Кто ты в отпуске" && q.LeftLabel == "Душа компании"
	})).Return(nil)
	mockCacheRepo.On("Delete", "quizzes:catalog").Return(nil)
	mockBroadcaster.On("BroadcastJSON", mock.Anything).Return(nil)

	svc := NewQuizService(mockQuizRepo, nil, mockCacheRepo, mockBroadcaster)

	// Act
	quiz, err := svc.UpdateQuiz(1, QuizUpdate{Name: strPtr("Кто ты в отпуске")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Кто ты в отпуске", quiz.Name)
	assert.Equal(t, "Душа компании", quiz.LeftLabel, "Непереданные поля не должны меняться")
	mockQuizRepo.AssertExpectations(t)
}

func TestQuizService_UpdateQuiz_EmptyNameRejected(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1, Name: "Пак"}, nil)

	svc := NewQuizService(mockQuizRepo, nil, nil, nil)

	_, err := svc.UpdateQuiz(1, QuizUpdate{Name: strPtr("")})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockQuizRepo.AssertNotCalled(t, "Update")
}

func TestQuizService_UpdateQuiz_UnknownQuiz(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := NewQuizService(mockQuizRepo, nil, nil, nil)

	_, err := svc.UpdateQuiz(99, QuizUpdate{Name: strPtr("Новое имя")})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuizService_CatalogChange_InvalidatesCacheAndBroadcasts(t *testing.T) {
	// Arrange: изменение каталога должно сбросить кеш и разослать
	// всем клиентам событие feed:updated
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	mockBroadcaster := new(MockBroadcaster)

	mockQuizRepo.On("Delete", uint(1)).Return(nil)
	mockCacheRepo.On("Delete", "quizzes:catalog").Return(nil)
	mockBroadcaster.On("BroadcastJSON", mock.MatchedBy(func(e websocket.Event) bool {
		return e.Type == websocket.EventFeedUpdated
	})).Return(nil)

	svc := NewQuizService(mockQuizRepo, nil, mockCacheRepo, mockBroadcaster)

	// Act
	err := svc.DeleteQuiz(1)

	// Assert
	require.NoError(t, err)
	mockCacheRepo.AssertExpectations(t)
	mockBroadcaster.AssertExpectations(t)
}
