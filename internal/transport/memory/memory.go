package memory

import (
	"sync"
)

// размер буфера доставки; при переполнении кадр отбрасывается
const endpointBuffer = 64

// Channel - внутрипроцессный широковещательный канал, соединяющий
// несколько экземпляров в одном процессе. Доставка идет всем точкам
// подключения, кроме отправителя.
type Channel struct {
	name      string
	endpoints map[*Endpoint]struct{}
	mu        sync.RWMutex
}

// Endpoint - точка подключения одного экземпляра к каналу
type Endpoint struct {
	channel *Channel
	inbox   chan []byte
	once    sync.Once
}

// NewChannel создает канал с указанным именем
func NewChannel(name string) *Channel {
	return &Channel{
		name:      name,
		endpoints: make(map[*Endpoint]struct{}),
	}
}

// Name возвращает имя канала
func (c *Channel) Name() string {
	return c.name
}

// Join подключает новую точку к каналу
func (c *Channel) Join() *Endpoint {
	ep := &Endpoint{
		channel: c,
		inbox:   make(chan []byte, endpointBuffer),
	}

	c.mu.Lock()
	c.endpoints[ep] = struct{}{}
	c.mu.Unlock()

	return ep
}

// broadcast доставляет кадр всем точкам, кроме отправителя
func (c *Channel) broadcast(from *Endpoint, frame []byte) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for ep := range c.endpoints {
		if ep == from {
			continue
		}
		select {
		case ep.inbox <- frame:
		default:
			// переполненный получатель теряет кадр
		}
	}
}

// Publish отправляет кадр остальным точкам канала
func (e *Endpoint) Publish(frame []byte) error {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	e.channel.broadcast(e, cp)
	return nil
}

// Messages возвращает входящие кадры
func (e *Endpoint) Messages() <-chan []byte {
	return e.inbox
}

// Close отключает точку от канала; повторный вызов безопасен
func (e *Endpoint) Close() error {
	e.once.Do(func() {
		e.channel.mu.Lock()
		delete(e.channel.endpoints, e)
		e.channel.mu.Unlock()
		close(e.inbox)
	})
	return nil
}
