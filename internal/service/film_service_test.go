package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"filmorate/internal/domain"
	"filmorate/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type filmFixture struct {
	films *FilmService
	users *UserService
}

func newFilmFixture() filmFixture {
	logger := testLogger()
	userStore := store.NewMemoryUserStore()
	return filmFixture{
		films: NewFilmService(store.NewMemoryFilmStore(), userStore, store.NewMemoryGenreStore(), store.NewMemoryMpaRatingStore(), logger),
		users: NewUserService(userStore, logger),
	}
}

func validFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		Description: "adipisicing",
		ReleaseDate: domain.NewDate(1967, time.March, 25),
		Duration:    100,
		Mpa:         domain.MpaRating{ID: 1},
		Genres:      []domain.Genre{{ID: 1}},
	}
}

func validUser(email string) *domain.User {
	return &domain.User{
		Email:    email,
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: domain.NewDate(1946, time.August, 20),
	}
}

func TestFilmServiceCreate(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	created, err := f.films.Create(ctx, validFilm("nisi eiusmod"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	// Справочные записи обогащены названиями.
	assert.Equal(t, "G", created.Mpa.Name)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, "Комедия", created.Genres[0].Name)
}

func TestFilmServiceCreateReleaseDateBoundary(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	early := validFilm("too early")
	early.ReleaseDate = domain.NewDate(1895, time.December, 27)
	_, err := f.films.Create(ctx, early)
	assert.ErrorIs(t, err, domain.ErrReleaseDateTooEarly)

	boundary := validFilm("boundary")
	boundary.ReleaseDate = domain.NewDate(1895, time.December, 28)
	_, err = f.films.Create(ctx, boundary)
	assert.NoError(t, err)
}

func TestFilmServiceCreateUnknownReferences(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	badRating := validFilm("bad rating")
	badRating.Mpa = domain.MpaRating{ID: 99}
	_, err := f.films.Create(ctx, badRating)
	assert.ErrorIs(t, err, store.ErrRatingNotFound)

	badGenre := validFilm("bad genre")
	badGenre.Genres = []domain.Genre{{ID: 99}}
	_, err = f.films.Create(ctx, badGenre)
	assert.ErrorIs(t, err, store.ErrGenreNotFound)
}

func TestFilmServiceCreateDeduplicatesGenres(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	film := validFilm("dup genres")
	film.Genres = []domain.Genre{{ID: 2}, {ID: 1}, {ID: 2}}
	created, err := f.films.Create(ctx, film)
	require.NoError(t, err)
	require.Len(t, created.Genres, 2)
	assert.Equal(t, int64(1), created.Genres[0].ID)
	assert.Equal(t, int64(2), created.Genres[1].ID)
}

func TestFilmServiceUpdate(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	created, err := f.films.Create(ctx, validFilm("nisi eiusmod"))
	require.NoError(t, err)

	created.Name = "Film Updated"
	created.Mpa = domain.MpaRating{ID: 2}
	updated, err := f.films.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Film Updated", updated.Name)
	assert.Equal(t, "PG", updated.Mpa.Name)

	noID := validFilm("no id")
	_, err = f.films.Update(ctx, noID)
	assert.ErrorIs(t, err, domain.ErrIDRequired)

	missing := validFilm("ghost")
	missing.ID = 9999
	_, err = f.films.Update(ctx, missing)
	assert.ErrorIs(t, err, store.ErrFilmNotFound)
}

func TestFilmServiceLikes(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	film, err := f.films.Create(ctx, validFilm("nisi eiusmod"))
	require.NoError(t, err)
	user, err := f.users.Create(ctx, validUser("mail@mail.ru"))
	require.NoError(t, err)

	require.NoError(t, f.films.AddLike(ctx, film.ID, user.ID))
	assert.ErrorIs(t, f.films.AddLike(ctx, film.ID, user.ID), store.ErrDuplicateLike)
	assert.ErrorIs(t, f.films.AddLike(ctx, film.ID, 9999), store.ErrUserNotFound)
	assert.ErrorIs(t, f.films.AddLike(ctx, 9999, user.ID), store.ErrFilmNotFound)

	got, err := f.films.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{user.ID}, got.Likes)

	require.NoError(t, f.films.RemoveLike(ctx, film.ID, user.ID))
	assert.ErrorIs(t, f.films.RemoveLike(ctx, film.ID, user.ID), store.ErrLikeNotSet)
	assert.ErrorIs(t, f.films.RemoveLike(ctx, film.ID, 9999), store.ErrUserNotFound)
	// Отсутствие фильма - "не найдено", а не ошибка валидации про лайк.
	assert.ErrorIs(t, f.films.RemoveLike(ctx, 9999, user.ID), store.ErrFilmNotFound)
}

func TestFilmServicePopular(t *testing.T) {
	f := newFilmFixture()
	ctx := context.Background()

	var users []*domain.User
	for _, email := range []string{"a@mail.ru", "b@mail.ru", "c@mail.ru"} {
		u, err := f.users.Create(ctx, validUser(email))
		require.NoError(t, err)
		users = append(users, u)
	}

	first, err := f.films.Create(ctx, validFilm("first"))
	require.NoError(t, err)
	second, err := f.films.Create(ctx, validFilm("second"))
	require.NoError(t, err)
	_, err = f.films.Create(ctx, validFilm("third"))
	require.NoError(t, err)

	// second собирает 3 лайка, first - 1.
	for _, u := range users {
		require.NoError(t, f.films.AddLike(ctx, second.ID, u.ID))
	}
	require.NoError(t, f.films.AddLike(ctx, first.ID, users[0].ID))

	popular, err := f.films.Popular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, second.ID, popular[0].ID)
	assert.Equal(t, first.ID, popular[1].ID)

	// count больше числа фильмов возвращает все.
	all, err := f.films.Popular(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Неположительный count дает пустой список, а не ошибку.
	empty, err := f.films.Popular(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	empty, err = f.films.Popular(ctx, -5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
