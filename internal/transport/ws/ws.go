package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

const inboxBuffer = 64

// Client - подключение экземпляра к ретранслятору по websocket.
// Ретранслятор рассылает каждый кадр всем остальным подключениям,
// поэтому собственные кадры сюда не возвращаются.
type Client struct {
	conn    *websocket.Conn
	inbox   chan []byte
	writeMu sync.Mutex
	once    sync.Once

	// onState вызывается при подключении (true) и обрыве (false)
	onState func(online bool)
}

// Dial подключается к ретранслятору по указанному адресу
func Dial(url string, onState func(online bool)) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:    conn,
		inbox:   make(chan []byte, inboxBuffer),
		onState: onState,
	}
	if c.onState != nil {
		c.onState(true)
	}

	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	// inbox закрывает только цикл чтения, чтобы Publish/Close не могли
	// столкнуться с отправкой в закрытый канал
	defer func() {
		if c.onState != nil {
			c.onState(false)
		}
		close(c.inbox)
	}()

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case c.inbox <- frame:
		default:
			log.Printf("ws: входящий буфер переполнен, кадр отброшен")
		}
	}
}

// Publish отправляет кадр ретранслятору
func (c *Client) Publish(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Messages возвращает кадры, ретранслированные от других экземпляров
func (c *Client) Messages() <-chan []byte {
	return c.inbox
}

// Close разрывает подключение; повторный вызов безопасен
func (c *Client) Close() error {
	c.once.Do(func() { c.conn.Close() })
	return nil
}
