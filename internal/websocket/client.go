package websocket

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту
	writeWait = 10 * time.Second

	// Время, которое разрешено клиенту читать следующее сообщение
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 512

	// Размер буфера канала отправки сообщений клиенту
	clientBufferSize = 64
)

// Client является посредником между WebSocket соединением и хабом.
// Клиент только получает события сервера; входящие сообщения,
// кроме служебных, игнорируются.
type Client struct {
	// ID пользователя
	UserID uint

	// Уникальный ID для каждого соединения
	ConnectionID string

	hub  *Hub
	conn *websocket.Conn

	// Буферизованный канал для исходящих сообщений
	send chan []byte
}

// NewClient создает клиента и регистрирует его в хабе
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	client := &Client{
		UserID:       userID,
		ConnectionID: uuid.New().String(),
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, clientBufferSize),
	}
	hub.register <- client
	return client
}

// ReadPump читает сообщения из соединения, пока оно не закроется.
// Чтение нужно только для обработки pong и обнаружения отключения.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Ошибка чтения: user=%d conn=%s: %v", c.UserID, c.ConnectionID, err)
			}
			return
		}
	}
}

// WritePump пишет сообщения из канала send в соединение
// и периодически отправляет ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
