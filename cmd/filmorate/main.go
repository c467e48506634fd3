package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"filmorate/internal/api"
	"filmorate/internal/service"
	"filmorate/internal/store"
	"filmorate/pkg/logger"
)

func main() {
	// .env опционален: в контейнере конфигурация приходит из окружения.
	_ = godotenv.Load()

	log, err := logger.NewLogger()
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	validate := validator.New()

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	var (
		filmStorage   store.FilmStore
		userStorage   store.UserStore
		genreStorage  store.GenreStore
		ratingStorage store.MpaRatingStore
	)

	backend := os.Getenv("STORAGE_BACKEND")
	switch backend {
	case "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := store.OpenPostgres(ctx, dbURL, log)
		if err != nil {
			cancel()
			log.Error("Failed to initialize PostgreSQL connection", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := store.RunMigrations(ctx, db, log); err != nil {
			cancel()
			log.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cancel()
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", slog.String("error", err.Error()))
			} else {
				log.Info("PostgreSQL connection closed.")
			}
		}()

		filmStorage, err = store.NewPostgresFilmStore(db, log)
		if err != nil {
			log.Error("Failed to initialize film store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		userStorage, err = store.NewPostgresUserStore(db, log)
		if err != nil {
			log.Error("Failed to initialize user store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		genreStorage, err = store.NewPostgresGenreStore(db, log)
		if err != nil {
			log.Error("Failed to initialize genre store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		ratingStorage, err = store.NewPostgresMpaRatingStore(db, log)
		if err != nil {
			log.Error("Failed to initialize mpa rating store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("PostgreSQL storage initialized.")
	case "", "memory":
		filmStorage = store.NewMemoryFilmStore()
		userStorage = store.NewMemoryUserStore()
		genreStorage = store.NewMemoryGenreStore()
		ratingStorage = store.NewMemoryMpaRatingStore()
		log.Info("In-memory storage initialized.")
	default:
		log.Error("Unknown storage backend", slog.String("backend", backend))
		os.Exit(1)
	}

	filmService := service.NewFilmService(filmStorage, userStorage, genreStorage, ratingStorage, log)
	userService := service.NewUserService(userStorage, log)
	referenceService := service.NewReferenceService(genreStorage, ratingStorage, log)

	httpHandler := api.NewHTTPHandler(filmService, userService, referenceService, log, validate)
	httpRouter := api.NewHTTPRouter(httpHandler)
	httpSrv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Filmorate HTTP service starting", slog.String("port", httpPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Filmorate HTTP service ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Filmorate shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error("Filmorate HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		log.Info("Filmorate HTTP server gracefully stopped.")
	}
}
