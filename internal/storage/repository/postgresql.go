// Package repository реализует хранилище данных на основе PostgreSQL
// для музейного каталога. Предоставляет методы создания, чтения,
// обновления и удаления пользователей, музейных записей и отзывов.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с каталогом.
//
// Все временные метки проставляются в часовом поясе loc,
// который задается конфигурацией, а не зашит в код.
type Storage struct {
	DB  *sql.DB
	loc *time.Location
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string, loc *time.Location) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Storage{
		DB:  db,
		loc: loc,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'museums'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table museums missing or query error: %w", err)
	}
	return nil
}

// now возвращает текущее время в настроенном часовом поясе.
func (s *Storage) now() time.Time {
	return time.Now().In(s.loc)
}

// isUniqueViolation сообщает, что ошибка вызвана нарушением уникального индекса.
// Так ловится поздний дубликат username при гонке одинаковых регистраций.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
