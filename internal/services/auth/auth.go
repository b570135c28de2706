// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/museum-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/password"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя: проверяет парольную политику,
// занятость имени и хэширует пароль перед сохранением.
//
// Предварительная проверка имени намеренно нестрогая: гонку одинаковых
// регистраций окончательно разрешает уникальный индекс хранилища.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, fullname string, role models.Role) (*models.User, error) {
	const op = "services.auth.Register"

	if err := password.ValidatePolicy(rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUsernameTaken)
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !role.IsValid() {
		role = models.RoleStandard
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		Fullname:     fullname,
		Role:         role,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Неизвестное имя и неверный пароль отдаются одним классом ошибки.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username, user.Role.String())
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}
