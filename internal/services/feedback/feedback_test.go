package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
	services "github.com/magabrotheeeer/museum-catalog/internal/services/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок для FeedbackRepository
type FeedbackRepoMock struct {
	mock.Mock
}

func (m *FeedbackRepoMock) CreateFeedback(ctx context.Context, fb models.Feedback) (*models.Feedback, error) {
	args := m.Called(ctx, fb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *FeedbackRepoMock) ListFeedback(ctx context.Context) ([]*models.FeedbackInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FeedbackInfo), args.Error(1)
}

// Мок для EventPublisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishFeedbackCreated(event services.FeedbackCreatedEvent) error {
	return m.Called(event).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestFeedbackService_Submit(t *testing.T) {
	now := time.Now()
	created := &models.Feedback{
		UID:       "fb-uuid",
		UserUID:   "user-uuid",
		Message:   "great museum",
		CreatedAt: now,
	}

	tests := []struct {
		name       string
		userUID    string
		username   string
		message    string
		setupMocks func(r *FeedbackRepoMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name:     "successful submit publishes event",
			userUID:  "user-uuid",
			username: "visitor",
			message:  "great museum",
			setupMocks: func(r *FeedbackRepoMock, p *PublisherMock) {
				r.On("CreateFeedback", mock.Anything, mock.MatchedBy(func(fb models.Feedback) bool {
					return fb.UserUID == "user-uuid" && fb.Message == "great museum"
				})).Return(created, nil).Once()
				p.On("PublishFeedbackCreated", services.FeedbackCreatedEvent{
					FeedbackUID: "fb-uuid",
					Username:    "visitor",
					Message:     "great museum",
					CreatedAt:   now,
				}).Return(nil).Once()
			},
		},
		{
			name:    "publish failure does not fail submit",
			userUID: "user-uuid",
			message: "great museum",
			setupMocks: func(r *FeedbackRepoMock, p *PublisherMock) {
				r.On("CreateFeedback", mock.Anything, mock.Anything).Return(created, nil).Once()
				p.On("PublishFeedbackCreated", mock.Anything).
					Return(errors.New("broker unavailable")).Once()
			},
		},
		{
			name:       "empty message",
			userUID:    "user-uuid",
			message:    "",
			setupMocks: func(_ *FeedbackRepoMock, _ *PublisherMock) {},
			wantErr:    services.ErrEmptyMessage,
		},
		{
			name:    "repository error",
			userUID: "user-uuid",
			message: "great museum",
			setupMocks: func(r *FeedbackRepoMock, _ *PublisherMock) {
				r.On("CreateFeedback", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(FeedbackRepoMock)
			pub := new(PublisherMock)
			svc := services.NewFeedbackService(repo, pub, newNoopLogger())

			tt.setupMocks(repo, pub)

			got, err := svc.Submit(context.Background(), tt.userUID, tt.username, tt.message)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "fb-uuid", got.UID)
			}

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestFeedbackService_Submit_NilPublisher(t *testing.T) {
	repo := new(FeedbackRepoMock)
	repo.On("CreateFeedback", mock.Anything, mock.Anything).
		Return(&models.Feedback{UID: "fb-uuid", Message: "text"}, nil).Once()

	svc := services.NewFeedbackService(repo, nil, newNoopLogger())

	got, err := svc.Submit(context.Background(), "user-uuid", "visitor", "text")
	assert.NoError(t, err)
	assert.Equal(t, "fb-uuid", got.UID)

	repo.AssertExpectations(t)
}

func TestFeedbackService_ListAll(t *testing.T) {
	repo := new(FeedbackRepoMock)
	repo.On("ListFeedback", mock.Anything).Return([]*models.FeedbackInfo{
		{UID: "fb-1", UserUID: "user-1", Fullname: "First User", Message: "one"},
		{UID: "fb-2", UserUID: "deleted-user", Fullname: "", Message: "two"},
	}, nil).Once()

	svc := services.NewFeedbackService(repo, nil, newNoopLogger())

	got, err := svc.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "First User", got[0].Fullname)
	// У отзыва удаленного пользователя имя пустое, сам отзыв остается.
	assert.Equal(t, "", got[1].Fullname)

	repo.AssertExpectations(t)
}
