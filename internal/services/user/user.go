// Package services содержит бизнес-логику управления учетными записями.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// UserRepository описывает методы хранилища, нужные сервису учетных записей.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, userUID, username, fullname string) (*models.User, error)
	DeleteUser(ctx context.Context, userUID string) error
}

// UserService реализует операции над учетными записями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Get возвращает пользователя по UID.
func (s *UserService) Get(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Update меняет username и fullname пользователя.
// Возвращает models.ErrUsernameTaken, если имя занято другой записью;
// гонку параллельных переименований окончательно разрешает уникальный индекс.
func (s *UserService) Update(ctx context.Context, userUID, username, fullname string) (*models.User, error) {
	const op = "services.user.Update"

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil && existing.UID != userUID {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUsernameTaken)
	}
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateUser(ctx, userUID, username, fullname)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user updated", slog.String("uid", userUID))
	return updated, nil
}

// Remove удаляет пользователя. Его отзывы остаются в каталоге.
func (s *UserService) Remove(ctx context.Context, userUID string) error {
	const op = "services.user.Remove"

	if err := s.repo.DeleteUser(ctx, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user deleted", slog.String("uid", userUID))
	return nil
}
