package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
	"github.com/yourusername/quizpack-api/internal/service/packfeed"
)

// handleServiceError переводит ошибки сервисного слоя в HTTP-статусы.
// Ошибки целостности каталога (неизвестный пак/вопрос в ответах)
// означают повреждённые данные и отдаются как 500, а не прячутся.
func handleServiceError(c *gin.Context, err error) {
	var unknownQuiz *packfeed.UnknownQuizError
	var unknownQuestion *packfeed.UnknownQuestionError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.As(err, &unknownQuiz), errors.As(err, &unknownQuestion):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Data integrity error", "error_type": "catalog_inconsistent"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID возвращает ID пользователя, установленный AuthMiddleware
func currentUserID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}
