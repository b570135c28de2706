package rabbitmq

// EventsExchange — exchange, в который публикуются события каталога.
const EventsExchange = "catalog.events"

// FeedbackRoutingKey — ключ маршрутизации событий о новых отзывах.
const FeedbackRoutingKey = "feedback.created"

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetCatalogQueues возвращает очереди, которые слушают воркеры уведомлений.
func GetCatalogQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "feedback.created", RoutingKey: FeedbackRoutingKey},
	}
}
