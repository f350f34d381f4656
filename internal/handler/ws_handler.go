package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/quizpack-api/internal/websocket"
	"github.com/yourusername/quizpack-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket соединения
type WSHandler struct {
	hub        *websocket.Hub
	jwtService *auth.JWTService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *websocket.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
	}
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Пустой Origin - не браузерный клиент (мобильное приложение)
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		allowedOrigins := []string{
			"http://localhost:8081",
			"http://localhost:19006",
		}
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("[WS] Отклонён неразрешённый origin: %s", origin)
		return false
	},
}

// HandleConnection апгрейдит соединение и подключает клиента к хабу.
// Токен передаётся query-параметром, поскольку мобильный WebSocket-клиент
// не может выставить заголовок Authorization.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Ошибка апгрейда соединения: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, claims.UserID)
	go client.WritePump()
	go client.ReadPump()
}
