package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
	services "github.com/magabrotheeeer/museum-catalog/internal/services/museum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок для MuseumRepository
type MuseumRepoMock struct {
	mock.Mock
}

func (m *MuseumRepoMock) CreateMuseum(ctx context.Context, entry models.Museum) (*models.Museum, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Museum), args.Error(1)
}

func (m *MuseumRepoMock) GetMuseum(ctx context.Context, uid string) (*models.Museum, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Museum), args.Error(1)
}

func (m *MuseumRepoMock) ListMuseums(ctx context.Context) ([]*models.Museum, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Museum), args.Error(1)
}

func (m *MuseumRepoMock) ListMuseumsByCategory(ctx context.Context, category string) ([]*models.Museum, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Museum), args.Error(1)
}

func (m *MuseumRepoMock) UpdateMuseum(ctx context.Context, uid, category, title, subtitle, imageURL string) (*models.Museum, error) {
	args := m.Called(ctx, uid, category, title, subtitle, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Museum), args.Error(1)
}

func (m *MuseumRepoMock) DeleteMuseum(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

// Мок для MediaStore
type MediaStoreMock struct {
	mock.Mock
}

func (m *MediaStoreMock) Upload(ctx context.Context, content []byte, originalFilename, folder string) (string, error) {
	args := m.Called(ctx, content, originalFilename, folder)
	return args.String(0), args.Error(1)
}

func (m *MediaStoreMock) Delete(ctx context.Context, rawURL, folder string) error {
	return m.Called(ctx, rawURL, folder).Error(0)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const testFolder = "museum-images"

func newService(repo *MuseumRepoMock, media *MediaStoreMock, cache *CacheMock) *services.MuseumService {
	return services.NewMuseumService(repo, media, cache, testFolder, newNoopLogger())
}

func TestMuseumService_List(t *testing.T) {
	entries := []*models.Museum{
		{UID: "uid-1", Category: "History", Title: "First"},
		{UID: "uid-2", Category: "Art", Title: "Second"},
	}

	t.Run("cache miss falls through to repository", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		cache.On("Get", "museum:list", mock.Anything).Return(false, nil).Once()
		repo.On("ListMuseums", mock.Anything).Return(entries, nil).Once()
		cache.On("Set", "museum:list", entries, time.Hour).Return(nil).Once()

		got, err := newService(repo, media, cache).List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, got, 2)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache error is not fatal", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		cache.On("Get", "museum:list", mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("ListMuseums", mock.Anything).Return(entries, nil).Once()
		cache.On("Set", "museum:list", entries, time.Hour).Return(errors.New("redis down")).Once()

		got, err := newService(repo, media, cache).List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		cache.On("Get", "museum:list", mock.Anything).Return(false, nil).Once()
		repo.On("ListMuseums", mock.Anything).Return(nil, errors.New("db error")).Once()

		_, err := newService(repo, media, cache).List(context.Background())
		assert.Error(t, err)
	})
}

func TestMuseumService_ListByCategory(t *testing.T) {
	t.Run("existing category", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		entries := []*models.Museum{{UID: "uid-1", Category: "History"}}
		cache.On("Get", "museum:category:History", mock.Anything).Return(false, nil).Once()
		repo.On("ListMuseumsByCategory", mock.Anything, "History").Return(entries, nil).Once()
		cache.On("Set", "museum:category:History", entries, time.Hour).Return(nil).Once()

		got, err := newService(repo, media, cache).ListByCategory(context.Background(), "History")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("unknown category returns not found", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		cache.On("Get", "museum:category:Nope", mock.Anything).Return(false, nil).Once()
		repo.On("ListMuseumsByCategory", mock.Anything, "Nope").
			Return([]*models.Museum{}, nil).Once()

		_, err := newService(repo, media, cache).ListByCategory(context.Background(), "Nope")
		assert.ErrorIs(t, err, models.ErrMuseumNotFound)
	})
}

func TestMuseumService_Create(t *testing.T) {
	image := services.Image{Content: []byte("png-bytes"), Filename: "louvre.png"}

	tests := []struct {
		name       string
		category   string
		title      string
		subtitle   string
		image      services.Image
		setupMocks func(r *MuseumRepoMock, m *MediaStoreMock, c *CacheMock)
		wantErr    error
	}{
		{
			name:     "successful create",
			category: "Art",
			title:    "Louvre",
			subtitle: "Paris",
			image:    image,
			setupMocks: func(r *MuseumRepoMock, m *MediaStoreMock, c *CacheMock) {
				m.On("Upload", mock.Anything, image.Content, "louvre.png", testFolder).
					Return("https://media.example.com/museum-images/louvre.png", nil).Once()
				r.On("CreateMuseum", mock.Anything, mock.MatchedBy(func(entry models.Museum) bool {
					return entry.Category == "Art" &&
						entry.Title == "Louvre" &&
						entry.ImageURL == "https://media.example.com/museum-images/louvre.png"
				})).Return(&models.Museum{UID: "new-uid", Category: "Art"}, nil).Once()
				c.On("Invalidate", "museum:list").Return(nil).Once()
				c.On("Invalidate", "museum:category:Art").Return(nil).Once()
			},
		},
		{
			name:       "missing image",
			category:   "Art",
			title:      "Louvre",
			subtitle:   "Paris",
			image:      services.Image{},
			setupMocks: func(_ *MuseumRepoMock, _ *MediaStoreMock, _ *CacheMock) {},
			wantErr:    services.ErrMissingFields,
		},
		{
			name:       "missing title",
			category:   "Art",
			subtitle:   "Paris",
			image:      image,
			setupMocks: func(_ *MuseumRepoMock, _ *MediaStoreMock, _ *CacheMock) {},
			wantErr:    services.ErrMissingFields,
		},
		{
			name:     "upload failure aborts create",
			category: "Art",
			title:    "Louvre",
			subtitle: "Paris",
			image:    image,
			setupMocks: func(_ *MuseumRepoMock, m *MediaStoreMock, _ *CacheMock) {
				m.On("Upload", mock.Anything, image.Content, "louvre.png", testFolder).
					Return("", errors.New("upstream 502")).Once()
			},
			wantErr: errors.New("upstream 502"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MuseumRepoMock)
			media := new(MediaStoreMock)
			cache := new(CacheMock)

			tt.setupMocks(repo, media, cache)

			got, err := newService(repo, media, cache).Create(
				context.Background(), tt.category, tt.title, tt.subtitle, tt.image)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new-uid", got.UID)
			}

			repo.AssertExpectations(t)
			media.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestMuseumService_Update(t *testing.T) {
	existing := &models.Museum{
		UID:      "uid-1",
		Category: "History",
		Title:    "Old Title",
		ImageURL: "https://media.example.com/museum-images/old.png",
	}

	t.Run("text-only update keeps image", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()
		repo.On("UpdateMuseum", mock.Anything, "uid-1", "", "New Title", "", "").
			Return(&models.Museum{UID: "uid-1", Category: "History", Title: "New Title",
				ImageURL: existing.ImageURL}, nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:History").Return(nil).Once()

		got, err := newService(repo, media, cache).Update(
			context.Background(), "uid-1", "", "New Title", "", nil)
		assert.NoError(t, err)
		assert.Equal(t, existing.ImageURL, got.ImageURL)

		media.AssertExpectations(t)
		cache.AssertExpectations(t)
		cache.AssertNumberOfCalls(t, "Invalidate", 2)
	})

	t.Run("category change invalidates both categories", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()
		repo.On("UpdateMuseum", mock.Anything, "uid-1", "Art", "", "", "").
			Return(&models.Museum{UID: "uid-1", Category: "Art", Title: existing.Title,
				ImageURL: existing.ImageURL}, nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:History").Return(nil).Once()
		cache.On("Invalidate", "museum:category:Art").Return(nil).Once()

		_, err := newService(repo, media, cache).Update(
			context.Background(), "uid-1", "Art", "", "", nil)
		assert.NoError(t, err)

		cache.AssertExpectations(t)
	})

	t.Run("new image replaces old asset", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		newImage := &services.Image{Content: []byte("new-bytes"), Filename: "new.png"}
		media.On("Delete", mock.Anything, existing.ImageURL, testFolder).Return(nil).Once()
		media.On("Upload", mock.Anything, newImage.Content, "new.png", testFolder).
			Return("https://media.example.com/museum-images/new.png", nil).Once()
		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()
		repo.On("UpdateMuseum", mock.Anything, "uid-1", "", "", "",
			"https://media.example.com/museum-images/new.png").
			Return(&models.Museum{UID: "uid-1", Category: "History",
				ImageURL: "https://media.example.com/museum-images/new.png"}, nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:History").Return(nil).Once()

		got, err := newService(repo, media, cache).Update(
			context.Background(), "uid-1", "", "", "", newImage)
		assert.NoError(t, err)
		assert.Equal(t, "https://media.example.com/museum-images/new.png", got.ImageURL)

		media.AssertExpectations(t)
	})

	t.Run("old asset delete failure does not abort update", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		newImage := &services.Image{Content: []byte("new-bytes"), Filename: "new.png"}
		media.On("Delete", mock.Anything, existing.ImageURL, testFolder).
			Return(errors.New("remote failure")).Once()
		media.On("Upload", mock.Anything, newImage.Content, "new.png", testFolder).
			Return("https://media.example.com/museum-images/new.png", nil).Once()
		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()
		repo.On("UpdateMuseum", mock.Anything, "uid-1", "", "", "",
			"https://media.example.com/museum-images/new.png").
			Return(&models.Museum{UID: "uid-1", Category: "History"}, nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:History").Return(nil).Once()

		_, err := newService(repo, media, cache).Update(
			context.Background(), "uid-1", "", "", "", newImage)
		assert.NoError(t, err)
	})

	t.Run("upload failure keeps old reference", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		newImage := &services.Image{Content: []byte("new-bytes"), Filename: "new.png"}
		media.On("Delete", mock.Anything, existing.ImageURL, testFolder).Return(nil).Once()
		media.On("Upload", mock.Anything, newImage.Content, "new.png", testFolder).
			Return("", errors.New("upstream 502")).Once()
		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()

		_, err := newService(repo, media, cache).Update(
			context.Background(), "uid-1", "", "", "", newImage)
		assert.Error(t, err)

		repo.AssertNotCalled(t, "UpdateMuseum",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("entry not found", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "missing-uid").
			Return(nil, models.ErrMuseumNotFound).Once()

		_, err := newService(repo, media, cache).Update(
			context.Background(), "missing-uid", "", "New Title", "", nil)
		assert.ErrorIs(t, err, models.ErrMuseumNotFound)
	})
}

func TestMuseumService_Remove(t *testing.T) {
	existing := &models.Museum{
		UID:      "uid-1",
		Category: "History",
		ImageURL: "https://media.example.com/museum-images/old.png",
	}

	t.Run("successful remove deletes asset", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()
		media.On("Delete", mock.Anything, existing.ImageURL, testFolder).Return(nil).Once()
		repo.On("DeleteMuseum", mock.Anything, "uid-1").Return(nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:History").Return(nil).Once()

		err := newService(repo, media, cache).Remove(context.Background(), "uid-1")
		assert.NoError(t, err)

		media.AssertExpectations(t)
	})

	t.Run("asset delete failure does not abort remove", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "uid-1").Return(existing, nil).Once()
		media.On("Delete", mock.Anything, existing.ImageURL, testFolder).
			Return(errors.New("remote failure")).Once()
		repo.On("DeleteMuseum", mock.Anything, "uid-1").Return(nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:History").Return(nil).Once()

		err := newService(repo, media, cache).Remove(context.Background(), "uid-1")
		assert.NoError(t, err)
	})

	t.Run("entry without image skips media store", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "uid-2").
			Return(&models.Museum{UID: "uid-2", Category: "Art"}, nil).Once()
		repo.On("DeleteMuseum", mock.Anything, "uid-2").Return(nil).Once()
		cache.On("Invalidate", "museum:list").Return(nil).Once()
		cache.On("Invalidate", "museum:category:Art").Return(nil).Once()

		err := newService(repo, media, cache).Remove(context.Background(), "uid-2")
		assert.NoError(t, err)

		media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("entry not found", func(t *testing.T) {
		repo := new(MuseumRepoMock)
		media := new(MediaStoreMock)
		cache := new(CacheMock)

		repo.On("GetMuseum", mock.Anything, "missing-uid").
			Return(nil, models.ErrMuseumNotFound).Once()

		err := newService(repo, media, cache).Remove(context.Background(), "missing-uid")
		assert.ErrorIs(t, err, models.ErrMuseumNotFound)
	})
}
