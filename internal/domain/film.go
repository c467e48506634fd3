package domain

import "time"

// ReleaseDateFloor - дата выхода первого в истории фильма.
// Фильмы с более ранней датой релиза не принимаются.
var ReleaseDateFloor = NewDate(1895, time.December, 28)

// MpaRating - возрастной рейтинг MPA. Статический справочник.
type MpaRating struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Genre - жанр фильма. Статический справочник, связь с фильмами many-to-many.
type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Film представляет основную доменную модель фильма.
// Likes - множество id пользователей, поставивших лайк.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate Date      `json:"releaseDate"`
	Duration    int       `json:"duration"`
	Mpa         MpaRating `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	Likes       []int64   `json:"likes"`
}

// LikeCount возвращает количество лайков фильма.
func (f *Film) LikeCount() int {
	return len(f.Likes)
}

// Clone возвращает глубокую копию фильма. Хранилища отдают наружу только
// копии, чтобы вызывающий код не мог менять каноническую запись напрямую.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	clone := *f
	clone.Genres = append([]Genre{}, f.Genres...)
	clone.Likes = append([]int64{}, f.Likes...)
	return &clone
}

// ValidateReleaseDate проверяет нижнюю границу даты релиза.
// Граница включительная: ровно 28.12.1895 - допустимая дата.
func ValidateReleaseDate(releaseDate Date) error {
	if releaseDate.Before(ReleaseDateFloor) {
		return ErrReleaseDateTooEarly
	}
	return nil
}

// RefID - ссылка на элемент справочника (рейтинг или жанр) в запросе.
type RefID struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// CreateFilmRequest определяет тело запроса для создания нового фильма.
type CreateFilmRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate Date    `json:"releaseDate" validate:"required"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Mpa         RefID   `json:"mpa" validate:"required"`
	Genres      []RefID `json:"genres,omitempty" validate:"omitempty,dive"`
}

// UpdateFilmRequest определяет тело запроса для обновления фильма.
// Поля-указатели: обновляются только переданные поля.
type UpdateFilmRequest struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	ReleaseDate *Date   `json:"releaseDate,omitempty"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Mpa         *RefID  `json:"mpa,omitempty"`
	Genres      []RefID `json:"genres,omitempty" validate:"omitempty,dive"`
}
