// Package services содержит воркер уведомлений о новых отзывах.
//
// NotifierService потребляет события feedback.created из RabbitMQ,
// считает их в метриках и пишет запись в журнал для дежурных.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	feedbacksvc "github.com/magabrotheeeer/museum-catalog/internal/services/feedback"
)

var feedbackEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "catalog_feedback_events_total",
	Help: "Количество обработанных событий feedback.created.",
})

// NotifierService обрабатывает события о новых отзывах.
type NotifierService struct {
	log *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(log *slog.Logger) *NotifierService {
	return &NotifierService{log: log}
}

// HandleMessage разбирает тело сообщения и регистрирует событие.
// Ошибка разбора возвращается вызывающему, чтобы сообщение ушло в nack.
func (s *NotifierService) HandleMessage(body []byte) error {
	const op = "services.notifier.HandleMessage"

	var event feedbacksvc.FeedbackCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	feedbackEventsTotal.Inc()
	s.log.Info("new feedback received",
		slog.String("feedback_uid", event.FeedbackUID),
		slog.String("username", event.Username),
		slog.Time("created_at", event.CreatedAt),
	)
	return nil
}
