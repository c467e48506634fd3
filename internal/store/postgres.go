package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Драйвер PostgreSQL
)

// schema описывает все таблицы приложения. Справочники засеиваются
// стандартными наборами с фиксированными id; повторный запуск безопасен.
const schema = `
CREATE TABLE IF NOT EXISTS ratings (
    id   BIGINT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS genres (
    id   BIGINT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS films (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL UNIQUE,
    description  TEXT NOT NULL DEFAULT '',
    release_date DATE NOT NULL,
    duration     INTEGER NOT NULL,
    rating_id    BIGINT NOT NULL REFERENCES ratings (id)
);

CREATE TABLE IF NOT EXISTS users (
    id       BIGSERIAL PRIMARY KEY,
    email    TEXT NOT NULL UNIQUE,
    login    TEXT NOT NULL,
    name     TEXT NOT NULL,
    birthday DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS film_genres (
    film_id  BIGINT NOT NULL REFERENCES films (id) ON DELETE CASCADE,
    genre_id BIGINT NOT NULL REFERENCES genres (id),
    PRIMARY KEY (film_id, genre_id)
);

CREATE TABLE IF NOT EXISTS likes (
    film_id BIGINT NOT NULL REFERENCES films (id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    PRIMARY KEY (film_id, user_id)
);

CREATE TABLE IF NOT EXISTS friendships (
    user_id   BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    friend_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, friend_id),
    CHECK (user_id <> friend_id)
);

INSERT INTO ratings (id, name) VALUES
    (1, 'G'), (2, 'PG'), (3, 'PG-13'), (4, 'R'), (5, 'NC-17')
ON CONFLICT (id) DO NOTHING;

INSERT INTO genres (id, name) VALUES
    (1, 'Комедия'), (2, 'Драма'), (3, 'Мультфильм'),
    (4, 'Триллер'), (5, 'Документальный'), (6, 'Боевик')
ON CONFLICT (id) DO NOTHING;
`

// OpenPostgres открывает подключение к PostgreSQL и проверяет его.
func OpenPostgres(ctx context.Context, dbURL string, logger *slog.Logger) (*sqlx.DB, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	logger.InfoContext(ctx, "Connected to PostgreSQL")
	return db, nil
}

// RunMigrations создает схему и засеивает справочники.
func RunMigrations(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	logger.DebugContext(ctx, "Running database migrations")
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.ErrorContext(ctx, "Failed to run migrations", slog.String("error", err.Error()))
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "Database migrations applied")
	return nil
}
