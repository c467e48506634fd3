package service

import (
	"context"
	"log/slog"
	"sort"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

// FilmService содержит бизнес-логику работы с фильмами и лайками:
// доменную валидацию, проверку ссылок на справочники и пользователей,
// обогащение названий жанров и рейтинга.
type FilmService struct {
	films   store.FilmStore
	users   store.UserStore
	genres  store.GenreStore
	ratings store.MpaRatingStore
	logger  *slog.Logger
}

// NewFilmService создает новый экземпляр FilmService.
func NewFilmService(films store.FilmStore, users store.UserStore, genres store.GenreStore, ratings store.MpaRatingStore, logger *slog.Logger) *FilmService {
	return &FilmService{films: films, users: users, genres: genres, ratings: ratings, logger: logger}
}

// Create валидирует и сохраняет новый фильм.
func (s *FilmService) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := domain.ValidateReleaseDate(film.ReleaseDate); err != nil {
		s.logger.WarnContext(ctx, "Film release date too early", slog.String("releaseDate", film.ReleaseDate.String()))
		return nil, err
	}
	if err := s.enrichReferences(ctx, film); err != nil {
		return nil, err
	}

	created, err := s.films.Create(ctx, film)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Film created", slog.Int64("filmID", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Update валидирует и сохраняет измененный фильм.
func (s *FilmService) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if film.ID == 0 {
		return nil, domain.ErrIDRequired
	}
	if err := domain.ValidateReleaseDate(film.ReleaseDate); err != nil {
		s.logger.WarnContext(ctx, "Film release date too early", slog.String("releaseDate", film.ReleaseDate.String()))
		return nil, err
	}
	if err := s.enrichReferences(ctx, film); err != nil {
		return nil, err
	}

	updated, err := s.films.Update(ctx, film)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Film updated", slog.Int64("filmID", updated.ID))
	return updated, nil
}

// enrichReferences проверяет, что рейтинг и жанры существуют в справочниках,
// подставляет их полные записи и убирает повторяющиеся жанры.
func (s *FilmService) enrichReferences(ctx context.Context, film *domain.Film) error {
	rating, err := s.ratings.GetByID(ctx, film.Mpa.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "Unknown mpa rating in film", slog.Int64("ratingID", film.Mpa.ID))
		return err
	}
	film.Mpa = *rating

	seen := make(map[int64]struct{}, len(film.Genres))
	genres := make([]domain.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		full, err := s.genres.GetByID(ctx, g.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "Unknown genre in film", slog.Int64("genreID", g.ID))
			return err
		}
		genres = append(genres, *full)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	film.Genres = genres
	return nil
}

// GetByID возвращает фильм по id.
func (s *FilmService) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	return s.films.GetByID(ctx, id)
}

// List возвращает все фильмы.
func (s *FilmService) List(ctx context.Context) ([]*domain.Film, error) {
	return s.films.List(ctx)
}

// Popular возвращает не более count фильмов по убыванию количества лайков.
// Для count <= 0 возвращается пустой список.
func (s *FilmService) Popular(ctx context.Context, count int) ([]*domain.Film, error) {
	if count <= 0 {
		return []*domain.Film{}, nil
	}
	return s.films.Popular(ctx, count)
}

// AddLike добавляет фильму лайк от пользователя.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Like added", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}

// RemoveLike убирает лайк пользователя с фильма. И фильм, и пользователь
// должны существовать: отсутствие самой связи - ошибка валидации,
// отсутствие фильма или пользователя - "не найдено".
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Like removed", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}
