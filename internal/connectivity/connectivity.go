package connectivity

import (
	"sync"

	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/ButyrinIA/kioteca/internal/notify"
)

// Monitor - признак доступности сети, который командные обработчики
// читают перед любым сетевым вызовом. Признак совещательный: ложное
// "онлайн" не мешает вызову попытаться и отказать самостоятельно.
type Monitor struct {
	online bool
	queue  *notify.Queue
	mu     sync.RWMutex
}

// NewMonitor создает монитор с начальным состоянием сети
func NewMonitor(online bool, queue *notify.Queue) *Monitor {
	return &Monitor{online: online, queue: queue}
}

// Online сообщает текущее состояние сети
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SetOnline обновляет состояние. Каждый переход поднимает ровно одно
// уведомление; повторная установка того же состояния - no-op.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	m.mu.Unlock()

	if m.queue == nil {
		return
	}
	if online {
		m.queue.Push("Conexión restaurada", "Estás en línea nuevamente.", models.SeveritySuccess)
	} else {
		m.queue.Push("Modo Offline", "No tienes internet. La app funcionará con datos guardados.", models.SeverityAlert)
	}
}
