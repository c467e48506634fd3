package domain

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Конкретные ошибки в store и service оборачивают
// один из этих видов, проверка делается через errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate data")
	ErrValidation = errors.New("validation failed")
)

var (
	// ErrReleaseDateTooEarly - дата релиза раньше выхода первого в истории фильма.
	ErrReleaseDateTooEarly = fmt.Errorf("%w: release date must not be before 1895-12-28", ErrValidation)

	// ErrIDRequired - операция обновления без указанного id.
	ErrIDRequired = fmt.Errorf("%w: id must be set", ErrValidation)

	// ErrInvalidLogin - логин пустой или содержит пробельные символы.
	ErrInvalidLogin = fmt.Errorf("%w: login must be non-blank and contain no whitespace", ErrValidation)

	// ErrFutureBirthday - дата рождения в будущем.
	ErrFutureBirthday = fmt.Errorf("%w: birthday must not be in the future", ErrValidation)

	// ErrSelfFriendship - попытка добавить в друзья самого себя.
	ErrSelfFriendship = fmt.Errorf("%w: user cannot befriend themselves", ErrValidation)
)

// IsNotFound сообщает, относится ли ошибка к виду "не найдено".
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicate сообщает, относится ли ошибка к виду "дубликат".
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }

// IsValidation сообщает, относится ли ошибка к виду "невалидные данные".
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
