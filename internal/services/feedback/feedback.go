// Package services содержит бизнес-логику работы с отзывами.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// ErrEmptyMessage — отзыв с пустым текстом не принимается.
var ErrEmptyMessage = errors.New("feedback message is empty")

// FeedbackRepository описывает методы хранилища отзывов.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb models.Feedback) (*models.Feedback, error)
	ListFeedback(ctx context.Context) ([]*models.FeedbackInfo, error)
}

// EventPublisher публикует событие о новом отзыве для воркеров уведомлений.
type EventPublisher interface {
	PublishFeedbackCreated(event FeedbackCreatedEvent) error
}

// FeedbackCreatedEvent — сообщение, публикуемое при создании отзыва.
// Имя автора кладется в событие сразу: воркер не ходит в хранилище.
type FeedbackCreatedEvent struct {
	FeedbackUID string    `json:"feedback_uid"`
	Username    string    `json:"username"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedbackService реализует прием и выдачу отзывов.
type FeedbackService struct {
	repo      FeedbackRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewFeedbackService создает новый экземпляр FeedbackService.
// publisher может быть nil, тогда события не публикуются.
func NewFeedbackService(repo FeedbackRepository, publisher EventPublisher, log *slog.Logger) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Submit сохраняет отзыв от имени пользователя userUID.
// Публикация события — best-effort: её сбой не отменяет сохранение.
func (s *FeedbackService) Submit(ctx context.Context, userUID, username, message string) (*models.Feedback, error) {
	const op = "services.feedback.Submit"

	if message == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyMessage)
	}

	created, err := s.repo.CreateFeedback(ctx, models.Feedback{
		UserUID: userUID,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("feedback submitted", slog.String("uid", created.UID))

	if s.publisher != nil {
		event := FeedbackCreatedEvent{
			FeedbackUID: created.UID,
			Username:    username,
			Message:     created.Message,
			CreatedAt:   created.CreatedAt,
		}
		if err := s.publisher.PublishFeedbackCreated(event); err != nil {
			s.log.Warn("failed to publish feedback event", slog.Any("err", err))
		}
	}

	return created, nil
}

// ListAll возвращает все отзывы с именами авторов, разрешенными на чтении.
func (s *FeedbackService) ListAll(ctx context.Context) ([]*models.FeedbackInfo, error) {
	const op = "services.feedback.ListAll"

	result, err := s.repo.ListFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
