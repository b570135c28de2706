package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// CreateFeedback сохраняет отзыв с серверной временной меткой и возвращает его.
func (s *Storage) CreateFeedback(ctx context.Context, fb models.Feedback) (*models.Feedback, error) {
	const op = "storage.CreateFeedback"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	fb.UID = uuid.New().String()
	fb.CreatedAt = s.now()

	query := `INSERT INTO feedback (uid, user_uid, message, created_at)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		fb.UID, fb.UserUID, fb.Message, fb.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &fb, nil
}

// ListFeedback возвращает все отзывы, разрешая имя автора на чтении.
// LEFT JOIN: отзывы удаленных пользователей остаются, имя у них пустое.
func (s *Storage) ListFeedback(ctx context.Context) ([]*models.FeedbackInfo, error) {
	const op = "storage.ListFeedback"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT f.uid, f.user_uid, COALESCE(u.fullname, ''), f.message, f.created_at
			  FROM feedback f
			  LEFT JOIN users u ON u.uid = f.user_uid
			  ORDER BY f.created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FeedbackInfo
	for rows.Next() {
		var item models.FeedbackInfo
		if err = rows.Scan(&item.UID, &item.UserUID, &item.Fullname, &item.Message,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
