package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// CreateMuseum сохраняет новую музейную запись и возвращает её.
// Пустая категория заменяется на models.DefaultCategory.
func (s *Storage) CreateMuseum(ctx context.Context, entry models.Museum) (*models.Museum, error) {
	const op = "storage.CreateMuseum"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	entry.UID = uuid.New().String()
	if entry.Category == "" {
		entry.Category = models.DefaultCategory
	}
	now := s.now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `INSERT INTO museums (uid, category, title, subtitle, image_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	if _, err := s.DB.ExecContext(ctx, query,
		entry.UID, entry.Category, entry.Title, entry.Subtitle, entry.ImageURL,
		entry.CreatedAt, entry.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &entry, nil
}

// GetMuseum возвращает музейную запись по UID.
func (s *Storage) GetMuseum(ctx context.Context, uid string) (*models.Museum, error) {
	const op = "storage.GetMuseum"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, category, title, subtitle, COALESCE(image_url, ''), created_at, updated_at
			  FROM museums
			  WHERE uid = $1`
	m := &models.Museum{}
	row := s.DB.QueryRowContext(ctx, query, uid)
	if err := row.Scan(&m.UID, &m.Category, &m.Title, &m.Subtitle, &m.ImageURL,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMuseumNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMuseums возвращает все музейные записи.
func (s *Storage) ListMuseums(ctx context.Context) ([]*models.Museum, error) {
	const op = "storage.ListMuseums"

	query := `SELECT uid, category, title, subtitle, COALESCE(image_url, ''), created_at, updated_at
			  FROM museums
			  ORDER BY created_at`
	return s.listMuseums(ctx, op, query)
}

// ListMuseumsByCategory возвращает музейные записи указанной категории.
// Пустой результат — не ошибка на этом уровне, решение принимает сервис.
func (s *Storage) ListMuseumsByCategory(ctx context.Context, category string) ([]*models.Museum, error) {
	const op = "storage.ListMuseumsByCategory"

	query := `SELECT uid, category, title, subtitle, COALESCE(image_url, ''), created_at, updated_at
			  FROM museums
			  WHERE category = $1
			  ORDER BY created_at`
	return s.listMuseums(ctx, op, query, category)
}

func (s *Storage) listMuseums(ctx context.Context, op, query string, args ...any) ([]*models.Museum, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Museum
	for rows.Next() {
		var m models.Museum
		if err = rows.Scan(&m.UID, &m.Category, &m.Title, &m.Subtitle, &m.ImageURL,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMuseum частично обновляет запись: пустые строки не затирают прежние значения.
// imageURL заменяется только если передана непустая строка.
func (s *Storage) UpdateMuseum(ctx context.Context, uid, category, title, subtitle, imageURL string) (*models.Museum, error) {
	const op = "storage.UpdateMuseum"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE museums
			  SET category  = COALESCE(NULLIF($1, ''), category),
				  title     = COALESCE(NULLIF($2, ''), title),
				  subtitle  = COALESCE(NULLIF($3, ''), subtitle),
				  image_url = COALESCE(NULLIF($4, ''), image_url),
				  updated_at = $5
			  WHERE uid = $6
			  RETURNING uid, category, title, subtitle, COALESCE(image_url, ''), created_at, updated_at`
	m := &models.Museum{}
	row := s.DB.QueryRowContext(ctx, query, category, title, subtitle, imageURL, s.now(), uid)
	if err := row.Scan(&m.UID, &m.Category, &m.Title, &m.Subtitle, &m.ImageURL,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMuseumNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// DeleteMuseum удаляет музейную запись по UID.
func (s *Storage) DeleteMuseum(ctx context.Context, uid string) error {
	const op = "storage.DeleteMuseum"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM museums WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrMuseumNotFound)
	}
	return nil
}
