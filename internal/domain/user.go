package domain

import (
	"strings"
	"time"
)

// User представляет модель пользователя.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Login    string `json:"login"`
	Birthday Date   `json:"birthday"`
}

// Clone возвращает копию пользователя.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// NormalizeName подставляет логин вместо пустого имени.
// Вызывается и при создании, и при обновлении, до записи в хранилище.
func NormalizeName(u *User) {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// ValidateLogin проверяет, что логин не пустой и не содержит пробельных символов.
func ValidateLogin(login string) error {
	if login == "" || strings.ContainsAny(login, " \t\n\r") {
		return ErrInvalidLogin
	}
	return nil
}

// ValidateBirthday проверяет, что дата рождения не в будущем.
func ValidateBirthday(birthday Date, now time.Time) error {
	if birthday.Time.After(now) {
		return ErrFutureBirthday
	}
	return nil
}

// CreateUserRequest определяет тело запроса для создания пользователя.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name,omitempty"`
	Login    string `json:"login" validate:"required"`
	Birthday Date   `json:"birthday" validate:"required"`
}

// UpdateUserRequest определяет тело запроса для обновления пользователя.
type UpdateUserRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty"`
	Login    *string `json:"login,omitempty" validate:"omitempty,min=1"`
	Birthday *Date   `json:"birthday,omitempty"`
}
