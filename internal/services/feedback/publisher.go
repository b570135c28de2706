package services

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/museum-catalog/internal/lib/rabbitmq"
)

// RabbitPublisher публикует события отзывов в RabbitMQ.
type RabbitPublisher struct {
	ch *amqp.Channel
}

// NewRabbitPublisher создает издателя поверх открытого канала.
func NewRabbitPublisher(ch *amqp.Channel) *RabbitPublisher {
	return &RabbitPublisher{ch: ch}
}

// PublishFeedbackCreated отправляет событие о новом отзыве.
func (p *RabbitPublisher) PublishFeedbackCreated(event FeedbackCreatedEvent) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.EventsExchange, rabbitmq.FeedbackRoutingKey, event)
}
