package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"filmorate/internal/domain"

	"github.com/jmoiron/sqlx"
)

// PostgresGenreStore реализует GenreStore для PostgreSQL.
type PostgresGenreStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresGenreStore создает новый экземпляр PostgresGenreStore.
func NewPostgresGenreStore(db *sqlx.DB, logger *slog.Logger) (*PostgresGenreStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresGenreStore{db: db, logger: logger}, nil
}

func (s *PostgresGenreStore) List(ctx context.Context) ([]domain.Genre, error) {
	genres := []domain.Genre{}

	s.logger.DebugContext(ctx, "Executing List genres query")
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list genres from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresGenreStore) GetByID(ctx context.Context, id int64) (*domain.Genre, error) {
	var genre domain.Genre

	s.logger.DebugContext(ctx, "Executing GetGenreByID query", slog.Int64("genreID", id))
	err := s.db.GetContext(ctx, &genre, `SELECT id, name FROM genres WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Genre not found by ID in DB", slog.Int64("genreID", id))
			return nil, ErrGenreNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get genre by ID from DB", slog.Int64("genreID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get genre by ID: %w", err)
	}
	return &genre, nil
}

// PostgresMpaRatingStore реализует MpaRatingStore для PostgreSQL.
type PostgresMpaRatingStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresMpaRatingStore создает новый экземпляр PostgresMpaRatingStore.
func NewPostgresMpaRatingStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMpaRatingStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMpaRatingStore{db: db, logger: logger}, nil
}

func (s *PostgresMpaRatingStore) List(ctx context.Context) ([]domain.MpaRating, error) {
	ratings := []domain.MpaRating{}

	s.logger.DebugContext(ctx, "Executing List mpa ratings query")
	if err := s.db.SelectContext(ctx, &ratings, `SELECT id, name FROM ratings ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list mpa ratings from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresMpaRatingStore) GetByID(ctx context.Context, id int64) (*domain.MpaRating, error) {
	var rating domain.MpaRating

	s.logger.DebugContext(ctx, "Executing GetMpaRatingByID query", slog.Int64("ratingID", id))
	err := s.db.GetContext(ctx, &rating, `SELECT id, name FROM ratings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Mpa rating not found by ID in DB", slog.Int64("ratingID", id))
			return nil, ErrRatingNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get mpa rating by ID from DB", slog.Int64("ratingID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get mpa rating by ID: %w", err)
	}
	return &rating, nil
}
