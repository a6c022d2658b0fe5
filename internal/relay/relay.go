package relay

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const sendBuffer = 64

// Hub - ретранслятор общего канала. Играет роль среды доставки между
// экземплярами: каждый полученный кадр рассылается всем подключениям,
// кроме отправителя. Кадры нигде не сохраняются и не воспроизводятся
// для экземпляров, подключившихся позже.
type Hub struct {
	clients  map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub создает ретранслятор
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP принимает websocket-подключение экземпляра
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("relay: не удалось обновить подключение: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer h.drop(c)

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		h.broadcast(c, frame)
	}
}

func (h *Hub) writeLoop(c *client) {
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

// broadcast рассылает кадр всем, кроме отправителя
func (h *Hub) broadcast(from *client, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c == from {
			continue
		}
		select {
		case c.send <- frame:
		default:
			// медленный получатель теряет кадр
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	c.conn.Close()
}

// Count возвращает число подключенных экземпляров
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
