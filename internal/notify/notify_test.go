package notify

import (
	"testing"
	"time"

	"github.com/ButyrinIA/kioteca/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	t.Run("Push And FIFO Order", func(t *testing.T) {
		queue := NewQueue(WithTTL(time.Minute))
		defer queue.Close()

		queue.Push("Publicado con éxito", "Tu publicación ya es visible para todos.", models.SeveritySuccess)
		queue.Push("Nueva Publicación", "Ana ha publicado algo nuevo.", models.SeverityInfo)

		items := queue.Items()
		assert.Len(t, items, 2)
		assert.Equal(t, "Publicado con éxito", items[0].Title, "Порядок показа - порядок добавления")
		assert.Equal(t, "Nueva Publicación", items[1].Title)
		assert.NotEqual(t, items[0].ID, items[1].ID)
	})

	t.Run("Expires After TTL", func(t *testing.T) {
		queue := NewQueue(WithTTL(30 * time.Millisecond))
		defer queue.Close()

		queue.Push("Voto Registrado", "Gracias por participar.", models.SeveritySuccess)
		assert.Len(t, queue.Items(), 1, "Уведомление должно быть видно сразу после Push")

		assert.Eventually(t, func() bool {
			return len(queue.Items()) == 0
		}, time.Second, 10*time.Millisecond, "Уведомление должно сняться по таймеру")
	})

	t.Run("Dismiss Before TTL", func(t *testing.T) {
		queue := NewQueue(WithTTL(time.Minute))
		defer queue.Close()

		id := queue.Push("Grupo Creado", "Tu grupo ha sido creado.", models.SeveritySuccess)
		queue.Dismiss(id)
		assert.Empty(t, queue.Items(), "Dismiss снимает уведомление немедленно")

		// повторное снятие и снятие неизвестного id - no-op
		queue.Dismiss(id)
		queue.Dismiss("missing")
	})

	t.Run("Dismiss One Of Many", func(t *testing.T) {
		queue := NewQueue(WithTTL(time.Minute))
		defer queue.Close()

		first := queue.Push("a", "1", models.SeverityInfo)
		second := queue.Push("b", "2", models.SeverityInfo)
		queue.Push("c", "3", models.SeverityInfo)

		queue.Dismiss(second)

		items := queue.Items()
		assert.Len(t, items, 2)
		assert.Equal(t, first, items[0].ID)
		assert.Equal(t, "c", items[1].Title)
	})

	t.Run("OnChange Fires On Push And Dismiss", func(t *testing.T) {
		var changes [][]models.Notification
		queue := NewQueue(
			WithTTL(time.Minute),
			WithOnChange(func(items []models.Notification) { changes = append(changes, items) }),
		)
		defer queue.Close()

		id := queue.Push("a", "1", models.SeverityAlert)
		queue.Dismiss(id)

		assert.Len(t, changes, 2)
		assert.Len(t, changes[0], 1)
		assert.Empty(t, changes[1])
	})

	t.Run("Push After Close Ignored", func(t *testing.T) {
		queue := NewQueue(WithTTL(time.Minute))
		queue.Close()

		assert.Empty(t, queue.Push("a", "1", models.SeverityInfo))
		assert.Empty(t, queue.Items())
	})
}
