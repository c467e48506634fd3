package store

import (
	"fmt"

	"filmorate/internal/domain"
)

// Кастомные ошибки хранилищ. Каждая оборачивает один из базовых видов
// из domain, поэтому вызывающий код может проверять и конкретную ошибку,
// и вид через errors.Is.
var (
	ErrFilmNotFound   = fmt.Errorf("film %w", domain.ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrGenreNotFound  = fmt.Errorf("genre %w", domain.ErrNotFound)
	ErrRatingNotFound = fmt.Errorf("mpa rating %w", domain.ErrNotFound)

	ErrDuplicateFilmName   = fmt.Errorf("%w: film name already in use", domain.ErrDuplicate)
	ErrDuplicateEmail      = fmt.Errorf("%w: email already in use", domain.ErrDuplicate)
	ErrDuplicateLike       = fmt.Errorf("%w: user has already liked this film", domain.ErrDuplicate)
	ErrDuplicateFriendship = fmt.Errorf("%w: users are already friends", domain.ErrDuplicate)

	// ErrLikeNotSet - попытка убрать лайк, которого нет. Это ошибка валидации,
	// а не "не найдено": и фильм, и пользователь существуют, нет только связи.
	ErrLikeNotSet = fmt.Errorf("%w: user has not liked this film", domain.ErrValidation)
)
