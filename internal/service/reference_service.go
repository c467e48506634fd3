package service

import (
	"context"
	"log/slog"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

// ReferenceService отдает содержимое справочников жанров и рейтингов MPA.
type ReferenceService struct {
	genres  store.GenreStore
	ratings store.MpaRatingStore
	logger  *slog.Logger
}

// NewReferenceService создает новый экземпляр ReferenceService.
func NewReferenceService(genres store.GenreStore, ratings store.MpaRatingStore, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{genres: genres, ratings: ratings, logger: logger}
}

func (s *ReferenceService) Genres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.List(ctx)
}

func (s *ReferenceService) GenreByID(ctx context.Context, id int64) (*domain.Genre, error) {
	return s.genres.GetByID(ctx, id)
}

func (s *ReferenceService) MpaRatings(ctx context.Context) ([]domain.MpaRating, error) {
	return s.ratings.List(ctx)
}

func (s *ReferenceService) MpaRatingByID(ctx context.Context, id int64) (*domain.MpaRating, error) {
	return s.ratings.GetByID(ctx, id)
}
