package models

import "time"

// Feedback представляет отзыв пользователя.
// UserUID — мягкая ссылка на автора: удаление пользователя
// не каскадируется на его отзывы.
type Feedback struct {
	UID       string    // Уникальный идентификатор отзыва
	UserUID   string    // Идентификатор автора
	Message   string    // Текст отзыва
	CreatedAt time.Time // Дата создания, назначается сервером
}

// FeedbackInfo — проекция отзыва для JSON‑ответов,
// имя автора разрешается на чтении через join с таблицей пользователей.
type FeedbackInfo struct {
	UID       string    `json:"id"`
	UserUID   string    `json:"user_id"`
	Fullname  string    `json:"fullname"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
