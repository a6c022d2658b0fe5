package relay

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err, "Не удалось подключиться к ретранслятору")
	return conn
}

func TestHub(t *testing.T) {
	t.Run("Broadcast Excludes Sender", func(t *testing.T) {
		hub := NewHub()
		server := httptest.NewServer(hub)
		defer server.Close()

		sender := dial(t, server)
		receiver := dial(t, server)
		defer sender.Close()
		defer receiver.Close()

		// дождаться регистрации обоих подключений
		assert.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

		frame := []byte(`{"type":"post:like","payload":{"postId":"p1","userId":"u1"}}`)
		assert.NoError(t, sender.WriteMessage(websocket.TextMessage, frame))

		receiver.SetReadDeadline(time.Now().Add(time.Second))
		_, got, err := receiver.ReadMessage()
		assert.NoError(t, err)
		assert.Equal(t, frame, got)

		sender.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		_, _, err = sender.ReadMessage()
		assert.Error(t, err, "Отправитель не должен получить собственный кадр")
	})

	t.Run("Disconnected Client Is Dropped", func(t *testing.T) {
		hub := NewHub()
		server := httptest.NewServer(hub)
		defer server.Close()

		first := dial(t, server)
		second := dial(t, server)
		defer second.Close()

		assert.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

		first.Close()
		assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

		// канал продолжает работать для оставшихся
		third := dial(t, server)
		defer third.Close()
		assert.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

		frame := []byte(`{"type":"post:vote","payload":{"postId":"p1","optionId":"o1"}}`)
		assert.NoError(t, second.WriteMessage(websocket.TextMessage, frame))

		third.SetReadDeadline(time.Now().Add(time.Second))
		_, got, err := third.ReadMessage()
		assert.NoError(t, err)
		assert.Equal(t, frame, got)
	})
}
