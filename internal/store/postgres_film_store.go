package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"filmorate/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // Для обработки ошибок PostgreSQL и массивов в ANY($1)
)

// PostgresFilmStore реализует FilmStore для PostgreSQL.
type PostgresFilmStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresFilmStore создает новый экземпляр PostgresFilmStore.
func NewPostgresFilmStore(db *sqlx.DB, logger *slog.Logger) (*PostgresFilmStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresFilmStore{db: db, logger: logger}, nil
}

// filmRow - строка выборки фильма с именем рейтинга из JOIN.
type filmRow struct {
	ID          int64       `db:"id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	ReleaseDate domain.Date `db:"release_date"`
	Duration    int         `db:"duration"`
	RatingID    int64       `db:"rating_id"`
	RatingName  string      `db:"rating_name"`
}

func (r filmRow) toFilm() *domain.Film {
	return &domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate,
		Duration:    r.Duration,
		Mpa:         domain.MpaRating{ID: r.RatingID, Name: r.RatingName},
		Genres:      []domain.Genre{},
		Likes:       []int64{},
	}
}

const selectFilmQuery = `SELECT f.id, f.name, f.description, f.release_date, f.duration,
       f.rating_id, r.name AS rating_name
FROM films f
JOIN ratings r ON r.id = f.rating_id`

// Create создает новый фильм и его связи с жанрами. Вставка фильма и
// вставка жанров выполняются в одной транзакции, чтобы сбой на жанрах
// не оставил в базе фильм без связей.
func (s *PostgresFilmStore) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO films (name, description, release_date, duration, rating_id)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	s.logger.DebugContext(ctx, "Executing Create film query", slog.String("name", film.Name))
	var id int64
	err = tx.QueryRowContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Film name already in use", slog.String("name", film.Name))
			return nil, ErrDuplicateFilmName
		}
		s.logger.ErrorContext(ctx, "Failed to create film in DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create film: %w", err)
	}

	if err := s.replaceGenres(ctx, tx, id, film.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit film create: %w", err)
	}

	s.logger.InfoContext(ctx, "Film created in DB", slog.Int64("filmID", id))
	return s.GetByID(ctx, id)
}

// Update обновляет фильм и полностью переписывает его связи с жанрами.
// Обновление строки и перезапись жанров выполняются в одной транзакции.
func (s *PostgresFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE films SET name = $1, description = $2, release_date = $3, duration = $4, rating_id = $5
              WHERE id = $6`

	s.logger.DebugContext(ctx, "Executing Update film query", slog.Int64("filmID", film.ID))
	result, err := tx.ExecContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID, film.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Film name already in use", slog.String("name", film.Name))
			return nil, ErrDuplicateFilmName
		}
		s.logger.ErrorContext(ctx, "Failed to update film in DB", slog.Int64("filmID", film.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update film: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No film found to update in DB", slog.Int64("filmID", film.ID))
		return nil, ErrFilmNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("failed to clear film genres: %w", err)
	}
	if err := s.replaceGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit film update: %w", err)
	}

	s.logger.InfoContext(ctx, "Film updated in DB", slog.Int64("filmID", film.ID))
	return s.GetByID(ctx, film.ID)
}

// execer покрывает *sqlx.DB и *sqlx.Tx для вставки жанров.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *PostgresFilmStore) replaceGenres(ctx context.Context, e execer, filmID int64, genres []domain.Genre) error {
	for _, g := range genres {
		_, err := e.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			filmID, g.ID,
		)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to insert film genre", slog.Int64("filmID", filmID), slog.Int64("genreID", g.ID), slog.String("error", err.Error()))
			return fmt.Errorf("failed to insert film genre: %w", err)
		}
	}
	return nil
}

// GetByID находит фильм по его ID.
func (s *PostgresFilmStore) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	var row filmRow

	s.logger.DebugContext(ctx, "Executing GetFilmByID query", slog.Int64("filmID", id))
	err := s.db.GetContext(ctx, &row, selectFilmQuery+` WHERE f.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Film not found by ID in DB", slog.Int64("filmID", id))
			return nil, ErrFilmNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get film by ID from DB", slog.Int64("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get film by ID: %w", err)
	}

	films := []*domain.Film{row.toFilm()}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return films[0], nil
}

// List возвращает все фильмы.
func (s *PostgresFilmStore) List(ctx context.Context) ([]*domain.Film, error) {
	var rows []filmRow

	s.logger.DebugContext(ctx, "Executing List films query")
	if err := s.db.SelectContext(ctx, &rows, selectFilmQuery+` ORDER BY f.id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list films from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list films: %w", err)
	}

	films := make([]*domain.Film, 0, len(rows))
	for _, row := range rows {
		films = append(films, row.toFilm())
	}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// Popular возвращает не более count фильмов по убыванию количества лайков.
func (s *PostgresFilmStore) Popular(ctx context.Context, count int) ([]*domain.Film, error) {
	query := selectFilmQuery + `
LEFT JOIN likes l ON l.film_id = f.id
GROUP BY f.id, f.name, f.description, f.release_date, f.duration, f.rating_id, r.name
ORDER BY COUNT(l.user_id) DESC
LIMIT $1`

	var rows []filmRow
	s.logger.DebugContext(ctx, "Executing Popular films query", slog.Int("count", count))
	if err := s.db.SelectContext(ctx, &rows, query, count); err != nil {
		s.logger.ErrorContext(ctx, "Failed to select popular films from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to select popular films: %w", err)
	}

	films := make([]*domain.Film, 0, len(rows))
	for _, row := range rows {
		films = append(films, row.toFilm())
	}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// hydrate дозагружает жанры и лайки для пачки фильмов двумя запросами,
// сохраняя порядок элементов в films.
func (s *PostgresFilmStore) hydrate(ctx context.Context, films []*domain.Film) error {
	if len(films) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Film, len(films))
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	genreQuery := `SELECT fg.film_id, g.id, g.name
FROM film_genres fg
JOIN genres g ON g.id = fg.genre_id
WHERE fg.film_id = ANY($1)
ORDER BY g.id`
	genreRows, err := s.db.QueryContext(ctx, genreQuery, pq.Array(ids))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load film genres from DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load film genres: %w", err)
	}
	defer genreRows.Close()
	for genreRows.Next() {
		var filmID int64
		var genre domain.Genre
		if err := genreRows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return fmt.Errorf("failed to scan film genre: %w", err)
		}
		byID[filmID].Genres = append(byID[filmID].Genres, genre)
	}
	if err := genreRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate film genres: %w", err)
	}

	likeQuery := `SELECT film_id, user_id FROM likes WHERE film_id = ANY($1)`
	likeRows, err := s.db.QueryContext(ctx, likeQuery, pq.Array(ids))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load film likes from DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load film likes: %w", err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var filmID, userID int64
		if err := likeRows.Scan(&filmID, &userID); err != nil {
			return fmt.Errorf("failed to scan film like: %w", err)
		}
		byID[filmID].Likes = append(byID[filmID].Likes, userID)
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate film likes: %w", err)
	}

	for _, f := range films {
		sort.Slice(f.Likes, func(i, j int) bool { return f.Likes[i] < f.Likes[j] })
	}
	return nil
}

// AddLike добавляет лайк фильму от пользователя.
func (s *PostgresFilmStore) AddLike(ctx context.Context, filmID, userID int64) error {
	query := `INSERT INTO likes (film_id, user_id) VALUES ($1, $2)`

	s.logger.DebugContext(ctx, "Executing AddLike query", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	_, err := s.db.ExecContext(ctx, query, filmID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				s.logger.WarnContext(ctx, "Like already set", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
				return ErrDuplicateLike
			case "23503": // foreign_key_violation
				s.logger.WarnContext(ctx, "Film not found for like", slog.Int64("filmID", filmID))
				return ErrFilmNotFound
			}
		}
		s.logger.ErrorContext(ctx, "Failed to add like in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to add like: %w", err)
	}
	s.logger.InfoContext(ctx, "Like added in DB", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}

// RemoveLike убирает лайк пользователя с фильма.
func (s *PostgresFilmStore) RemoveLike(ctx context.Context, filmID, userID int64) error {
	query := `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`

	s.logger.DebugContext(ctx, "Executing RemoveLike query", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	result, err := s.db.ExecContext(ctx, query, filmID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove like in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove like: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "Like was not set", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
		return ErrLikeNotSet
	}
	s.logger.InfoContext(ctx, "Like removed in DB", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}
