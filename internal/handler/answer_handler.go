package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizpack-api/internal/handler/dto"
	"github.com/yourusername/quizpack-api/internal/service"
)

// AnswerHandler обрабатывает запись ответов на вопросы паков
type AnswerHandler struct {
	answerService *service.AnswerService
}

// NewAnswerHandler создает новый обработчик ответов
func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// SubmitSelfAnswer записывает ответ текущего пользователя о себе
func (h *AnswerHandler) SubmitSelfAnswer(c *gin.Context) {
	var req dto.SubmitSelfAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answerService.SubmitSelfAnswer(currentUserID(c), req.QuestionID, *req.OptionIndex)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// SubmitFriendAnswer записывает ответ текущего пользователя о друге
func (h *AnswerHandler) SubmitFriendAnswer(c *gin.Context) {
	var req dto.SubmitFriendAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answerService.SubmitFriendAnswer(currentUserID(c), req.SelfID, req.QuestionID, *req.OptionIndex)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}
