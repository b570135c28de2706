// Package services содержит бизнес-логику музейного каталога, включая
// жизненный цикл изображений во внешнем медиахранилище и кеширование списков.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// ErrMissingFields — для создания записи обязательны категория, заголовок,
// подзаголовок и изображение.
var ErrMissingFields = errors.New("category, title, subtitle and image are required")

// MuseumRepository определяет методы для работы с музейными записями в хранилище.
type MuseumRepository interface {
	CreateMuseum(ctx context.Context, entry models.Museum) (*models.Museum, error)
	GetMuseum(ctx context.Context, uid string) (*models.Museum, error)
	ListMuseums(ctx context.Context) ([]*models.Museum, error)
	ListMuseumsByCategory(ctx context.Context, category string) ([]*models.Museum, error)
	UpdateMuseum(ctx context.Context, uid, category, title, subtitle, imageURL string) (*models.Museum, error)
	DeleteMuseum(ctx context.Context, uid string) error
}

// MediaStore описывает внешнее хранилище изображений.
type MediaStore interface {
	// Upload загружает файл и возвращает стабильную https-ссылку.
	Upload(ctx context.Context, content []byte, originalFilename, folder string) (string, error)
	// Delete удаляет объект по ссылке.
	Delete(ctx context.Context, rawURL, folder string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Image — содержимое загружаемого изображения вместе с исходным именем файла.
type Image struct {
	Content  []byte
	Filename string
}

const (
	listCacheKey = "museum:list"
	cacheTTL     = time.Hour
)

func categoryCacheKey(category string) string {
	return "museum:category:" + category
}

// MuseumService реализует CRUD каталога с выгрузкой изображений
// во внешнее медиахранилище.
//
// Последовательности загрузка-затем-запись и удаление-затем-загрузка
// не атомарны: при сбое записи после успешной загрузки объект
// в медиахранилище осиротеет. Это принятое ограничение.
type MuseumService struct {
	repo   MuseumRepository
	media  MediaStore
	cache  Cache
	folder string
	log    *slog.Logger
}

// NewMuseumService создает новый экземпляр MuseumService.
func NewMuseumService(repo MuseumRepository, media MediaStore, cache Cache, folder string, log *slog.Logger) *MuseumService {
	return &MuseumService{
		repo:   repo,
		media:  media,
		cache:  cache,
		folder: folder,
		log:    log,
	}
}

// List возвращает все музейные записи, используя кеш или хранилище.
func (s *MuseumService) List(ctx context.Context) ([]*models.Museum, error) {
	const op = "services.museum.List"

	var cached []*models.Museum
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read museum list from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListMuseums(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(listCacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache museum list", slog.Any("err", err))
	}
	return result, nil
}

// ListByCategory возвращает записи категории.
// Пустая категория — models.ErrMuseumNotFound.
func (s *MuseumService) ListByCategory(ctx context.Context, category string) ([]*models.Museum, error) {
	const op = "services.museum.ListByCategory"

	key := categoryCacheKey(category)
	var cached []*models.Museum
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read category from cache", slog.Any("err", err))
	}
	if found && len(cached) > 0 {
		return cached, nil
	}

	result, err := s.repo.ListMuseumsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrMuseumNotFound)
	}
	if err := s.cache.Set(key, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache category", slog.Any("err", err))
	}
	return result, nil
}

// Create загружает изображение и сохраняет новую запись.
// Сбой загрузки отменяет создание; в каталоге хранится только
// ссылка медиахранилища, никогда локальный путь.
func (s *MuseumService) Create(ctx context.Context, category, title, subtitle string, image Image) (*models.Museum, error) {
	const op = "services.museum.Create"

	if category == "" || title == "" || subtitle == "" || len(image.Content) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	imageURL, err := s.media.Upload(ctx, image.Content, image.Filename, s.folder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateMuseum(ctx, models.Museum{
		Category: category,
		Title:    title,
		Subtitle: subtitle,
		ImageURL: imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("museum entry created", slog.String("uid", created.UID))

	s.invalidate(created.Category)
	return created, nil
}

// Update частично обновляет запись: пустые поля сохраняют прежние значения.
// При новом изображении старый объект удаляется best-effort, затем грузится
// новый; ссылка в записи заменяется только после успешной загрузки.
func (s *MuseumService) Update(ctx context.Context, uid, category, title, subtitle string, image *Image) (*models.Museum, error) {
	const op = "services.museum.Update"

	existing, err := s.repo.GetMuseum(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var newImageURL string
	if image != nil {
		if existing.ImageURL != "" {
			if err := s.media.Delete(ctx, existing.ImageURL, s.folder); err != nil {
				s.log.Warn("failed to delete old image, continuing",
					slog.String("uid", uid), slog.Any("err", err))
			}
		}
		newImageURL, err = s.media.Upload(ctx, image.Content, image.Filename, s.folder)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	updated, err := s.repo.UpdateMuseum(ctx, uid, category, title, subtitle, newImageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("museum entry updated", slog.String("uid", uid))

	s.invalidate(existing.Category, updated.Category)
	return updated, nil
}

// Remove удаляет запись; её изображение удаляется best-effort до удаления строки.
func (s *MuseumService) Remove(ctx context.Context, uid string) error {
	const op = "services.museum.Remove"

	existing, err := s.repo.GetMuseum(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if existing.ImageURL != "" {
		if err := s.media.Delete(ctx, existing.ImageURL, s.folder); err != nil {
			s.log.Warn("failed to delete image, continuing",
				slog.String("uid", uid), slog.Any("err", err))
		}
	}

	if err := s.repo.DeleteMuseum(ctx, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("museum entry deleted", slog.String("uid", uid))

	s.invalidate(existing.Category)
	return nil
}

// invalidate сбрасывает кеш общего списка и затронутых категорий.
// Повторы категорий (update без смены категории) схлопываются в один ключ.
func (s *MuseumService) invalidate(categories ...string) {
	keys := []string{listCacheKey}
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		keys = append(keys, categoryCacheKey(c))
	}
	for _, key := range keys {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}
