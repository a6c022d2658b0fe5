package notify

import (
	"sync"
	"time"

	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/google/uuid"
)

// DefaultTTL - время показа уведомления
const DefaultTTL = 5 * time.Second

// Queue - очередь эфемерных уведомлений экземпляра. Каждое уведомление
// живет фиксированный интервал и снимается таймером либо явным Dismiss;
// повторное снятие - no-op. Порядок показа - порядок добавления.
type Queue struct {
	ttl      time.Duration
	items    []models.Notification
	timers   map[string]*time.Timer
	onChange func([]models.Notification)
	mu       sync.Mutex
	closed   bool
}

// Option настраивает очередь
type Option func(*Queue)

// WithTTL задает время жизни уведомления
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) { q.ttl = ttl }
}

// WithOnChange задает callback, получающий срез очереди после каждого
// изменения; вызывается под блокировкой, поэтому должен быть быстрым
func WithOnChange(fn func([]models.Notification)) Option {
	return func(q *Queue) { q.onChange = fn }
}

// NewQueue создает очередь уведомлений
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		ttl:    DefaultTTL,
		timers: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push добавляет уведомление и планирует его снятие; возвращает id
func (q *Queue) Push(title, message string, severity models.Severity) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ""
	}

	id := uuid.Must(uuid.NewV7()).String()
	q.items = append(q.items, models.Notification{
		ID:      id,
		Title:   title,
		Message: message,
		Type:    severity,
	})
	q.timers[id] = time.AfterFunc(q.ttl, func() { q.Dismiss(id) })
	q.notifyChange()

	return id
}

// Dismiss снимает уведомление по id; отсутствующий id - no-op
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.notifyChange()
			return
		}
	}
}

// Items возвращает копию очереди в порядке показа
func (q *Queue) Items() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Notification(nil), q.items...)
}

// Close останавливает таймеры; дальнейшие Push игнорируются
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
}

func (q *Queue) notifyChange() {
	if q.onChange != nil {
		q.onChange(append([]models.Notification(nil), q.items...))
	}
}
