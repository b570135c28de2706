// Package models содержит доменные структуры музейного каталога:
// пользователей, музейные записи и отзывы. Структуры используются
// в бизнес‑логике и при работе с хранилищем.
package models

import (
	"fmt"
	"time"
)

// Role описывает роль пользователя как перечисление с явным набором значений,
// вместо сравнения "сырых" чисел в обработчиках.
type Role int

const (
	// RoleStandard — обычный пользователь.
	RoleStandard Role = 0
	// RolePrivileged — привилегированный пользователь.
	RolePrivileged Role = 1
)

// String возвращает строковое имя роли для логов и claims токена.
func (r Role) String() string {
	switch r {
	case RoleStandard:
		return "standard"
	case RolePrivileged:
		return "privileged"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ParseRole восстанавливает роль из строкового имени (обратная операция к String).
func ParseRole(s string) (Role, error) {
	switch s {
	case "standard":
		return RoleStandard, nil
	case "privileged":
		return RolePrivileged, nil
	default:
		return RoleStandard, fmt.Errorf("unknown role: %q", s)
	}
}

// IsValid проверяет, что роль входит в допустимый набор значений.
func (r Role) IsValid() bool {
	return r == RoleStandard || r == RolePrivileged
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Fullname     string    // Отображаемое имя
	Role         Role      // Роль пользователя
	CreatedAt    time.Time // Дата создания записи
	UpdatedAt    time.Time // Дата последнего изменения
}

// UserInfo — публичная проекция пользователя для JSON‑ответов.
// Хэш пароля наружу не отдается никогда.
type UserInfo struct {
	UID      string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     int    `json:"role"`
}

// Info возвращает публичную проекцию пользователя.
func (u *User) Info() UserInfo {
	return UserInfo{
		UID:      u.UID,
		Username: u.Username,
		Fullname: u.Fullname,
		Role:     int(u.Role),
	}
}
