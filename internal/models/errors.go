package models

import "errors"

// Сентинельные ошибки доменного уровня. Хранилище и сервисы оборачивают их
// через fmt.Errorf("%s: %w", op, err), обработчики сопоставляют через errors.Is
// и переводят в HTTP‑статусы.
var (
	// ErrUserNotFound — пользователь с указанным идентификатором или именем не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken — имя пользователя уже занято другой записью.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials — неверное имя пользователя или пароль.
	// Обе причины отдаются одним классом, чтобы не раскрывать, что именно не совпало.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMuseumNotFound — музейная запись не существует или категория пуста.
	ErrMuseumNotFound = errors.New("museum entry not found")
)
