package transport

// Transport - широковещательный канал между экземплярами приложения.
// Publish отправляет кадр всем остальным подписчикам и никогда не
// возвращает его отправителю; отсутствие слушателей - не ошибка.
// Messages отдает кадры, опубликованные другими экземплярами; канал
// закрывается при Close.
type Transport interface {
	Publish(frame []byte) error
	Messages() <-chan []byte
	Close() error
}
