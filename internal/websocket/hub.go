package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Event - сообщение, отправляемое клиентам через WebSocket
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Типы событий, отправляемых сервером
const (
	// EventResultsReady - результаты пака разблокированы для пары друзей
	EventResultsReady = "results:ready"

	// EventFeedUpdated - ленту пользователя нужно перечитать
	EventFeedUpdated = "feed:updated"
)

// Hub поддерживает набор активных клиентов и маршрутизирует сообщения.
// Один пользователь может иметь несколько одновременных соединений
// (несколько устройств), сообщение доставляется на каждое из них.
type Hub struct {
	// Зарегистрированные клиенты по ID пользователя
	clients map[uint]map[*Client]bool

	// Канал регистрации клиентов
	register chan *Client

	// Канал отмены регистрации клиентов
	unregister chan *Client

	// Мьютекс для доступа к clients из методов отправки
	mu sync.RWMutex
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run запускает цикл обработки регистраций. Вызывается в отдельной горутине.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()
			log.Printf("[Hub] Клиент зарегистрирован: user=%d conn=%s", client.UserID, client.ConnectionID)

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("[Hub] Клиент отключен: user=%d conn=%s", client.UserID, client.ConnectionID)
		}
	}
}

// SendJSONToUser отправляет структуру JSON всем соединениям пользователя.
// Отсутствие активных соединений не является ошибкой: клиент получит
// актуальное состояние при следующем запросе ленты.
func (h *Hub) SendJSONToUser(userID uint, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события %q: %w", event.Type, err)
	}

	// Блокировка удерживается на время отправки: Run закрывает канал send
	// под write-блокировкой, и отправка в закрытый канал исключена.
	// Отправки неблокирующие, поэтому секция короткая.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			// Буфер клиента переполнен, сообщение пропускается
			log.Printf("[Hub] Буфер переполнен, сообщение %q потеряно: user=%d conn=%s",
				event.Type, userID, c.ConnectionID)
		}
	}
	return nil
}

// BroadcastJSON отправляет структуру JSON всем подключенным клиентам
func (h *Hub) BroadcastJSON(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события %q: %w", event.Type, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conns := range h.clients {
		for c := range conns {
			select {
			case c.send <- data:
			default:
			}
		}
	}
	return nil
}

// ClientCount возвращает количество активных соединений
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, conns := range h.clients {
		count += len(conns)
	}
	return count
}
