package bus

import (
	"log"
	"sync"

	"github.com/ButyrinIA/kioteca/internal/events"
	"github.com/ButyrinIA/kioteca/internal/transport"
)

// Handler - обработчик входящего события
type Handler func(ev events.Event)

// Subscription - идентичность одной регистрации обработчика. Функции в Go
// несравнимы, поэтому контракт "отписка по идентичности" выражен через
// указатель на регистрацию: Unsubscribe снимает ровно ту подписку,
// которую вернул Subscribe.
type Subscription struct {
	kind    events.Kind
	handler Handler
}

// Bus - типизированная шина событий одного экземпляра поверх транспорта.
// Publish уходит только в транспорт и никогда не доставляется локальным
// обработчикам: локальное состояние экземпляр обновляет сам, оптимистично.
type Bus struct {
	tr   transport.Transport
	subs map[events.Kind][]*Subscription
	mu   sync.RWMutex
	done chan struct{}
	once sync.Once
}

// New создает шину и запускает цикл диспетчеризации входящих кадров
func New(tr transport.Transport) *Bus {
	b := &Bus{
		tr:   tr,
		subs: make(map[events.Kind][]*Subscription),
		done: make(chan struct{}),
	}
	go b.dispatchLoop()
	return b
}

// Subscribe регистрирует обработчик для типа события. Повторная
// регистрация того же обработчика дает повторный вызов на каждый кадр -
// за единственность регистрации отвечает вызывающий.
func (b *Bus) Subscribe(kind events.Kind, handler Handler) *Subscription {
	sub := &Subscription{kind: kind, handler: handler}

	b.mu.Lock()
	b.subs[kind] = append(b.subs[kind], sub)
	b.mu.Unlock()

	return sub
}

// Unsubscribe снимает подписку; повторное снятие - no-op
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.kind]
	for i, s := range list {
		if s == sub {
			b.subs[sub.kind] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish отправляет событие остальным экземплярам. Отправка без
// слушателей - no-op; ошибки транспорта логируются и не поднимаются.
func (b *Bus) Publish(ev events.Event) {
	frame, err := events.Marshal(ev)
	if err != nil {
		log.Printf("bus: не удалось упаковать событие %s: %v", ev.Kind(), err)
		return
	}
	if err := b.tr.Publish(frame); err != nil {
		log.Printf("bus: не удалось опубликовать событие %s: %v", ev.Kind(), err)
	}
}

// dispatchLoop последовательно доставляет входящие кадры обработчикам.
// Один цикл на экземпляр: обработчики никогда не выполняются
// одновременно друг с другом.
func (b *Bus) dispatchLoop() {
	for {
		select {
		case <-b.done:
			return
		case frame, ok := <-b.tr.Messages():
			if !ok {
				return
			}
			b.dispatch(frame)
		}
	}
}

func (b *Bus) dispatch(frame []byte) {
	ev, err := events.Unmarshal(frame)
	if err != nil {
		log.Printf("bus: кадр отброшен: %v", err)
		return
	}

	b.mu.RLock()
	list := make([]*Subscription, len(b.subs[ev.Kind()]))
	copy(list, b.subs[ev.Kind()])
	b.mu.RUnlock()

	// порядок вызова - порядок регистрации
	for _, sub := range list {
		sub.handler(ev)
	}
}

// Close останавливает диспетчеризацию; транспорт закрывает владелец шины
func (b *Bus) Close() {
	b.once.Do(func() { close(b.done) })
}
