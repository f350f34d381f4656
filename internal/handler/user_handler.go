package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizpack-api/internal/handler/dto"
	"github.com/yourusername/quizpack-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с профилями пользователей
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetByID(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe обновляет профиль текущего пользователя
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(currentUserID(c), req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SetPushToken сохраняет push-токен устройства текущего пользователя
func (h *UserHandler) SetPushToken(c *gin.Context) {
	var req dto.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetPushToken(currentUserID(c), req.PushToken); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetUser возвращает публичный профиль пользователя по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	user, err := h.userService.GetByID(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Email не раскрывается в чужом профиле
	resp := dto.NewUserResponse(user)
	resp.Email = ""
	c.JSON(http.StatusOK, resp)
}
