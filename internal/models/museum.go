package models

import "time"

// DefaultCategory — категория, присваиваемая музейной записи,
// если категория не указана явно.
const DefaultCategory = "Other"

// Museum представляет музейную запись каталога.
// Поле ImageURL хранит ссылку на изображение во внешнем медиахранилище,
// пустая строка означает отсутствие изображения.
type Museum struct {
	UID       string    // Уникальный идентификатор записи
	Category  string    // Категория экспоната
	Title     string    // Заголовок
	Subtitle  string    // Подзаголовок
	ImageURL  string    // Ссылка на изображение в медиахранилище
	CreatedAt time.Time // Дата создания записи
	UpdatedAt time.Time // Дата последнего изменения
}

// MuseumInfo — проекция музейной записи для JSON‑ответов списков.
type MuseumInfo struct {
	UID       string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Info возвращает проекцию музейной записи.
func (m *Museum) Info() MuseumInfo {
	return MuseumInfo{
		UID:       m.UID,
		Category:  m.Category,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}
