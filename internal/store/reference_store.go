package store

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// GenreStore определяет интерфейс справочника жанров.
type GenreStore interface {
	List(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, id int64) (*domain.Genre, error)
}

// MpaRatingStore определяет интерфейс справочника рейтингов MPA.
type MpaRatingStore interface {
	List(ctx context.Context) ([]domain.MpaRating, error)
	GetByID(ctx context.Context, id int64) (*domain.MpaRating, error)
}

// DefaultGenres - стандартный набор жанров, которым засеиваются оба бэкенда.
func DefaultGenres() []domain.Genre {
	return []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}

// DefaultMpaRatings - стандартный набор рейтингов MPA.
func DefaultMpaRatings() []domain.MpaRating {
	return []domain.MpaRating{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}

// MemoryGenreStore реализует GenreStore в памяти. Справочник статичен,
// но читается под мьютексом для единообразия с остальными хранилищами.
type MemoryGenreStore struct {
	mu     sync.RWMutex
	genres map[int64]domain.Genre
}

// NewMemoryGenreStore создает справочник жанров со стандартным набором.
func NewMemoryGenreStore() *MemoryGenreStore {
	genres := make(map[int64]domain.Genre)
	for _, g := range DefaultGenres() {
		genres[g.ID] = g
	}
	return &MemoryGenreStore{genres: genres}
}

func (m *MemoryGenreStore) List(ctx context.Context) ([]domain.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genres := make([]domain.Genre, 0, len(m.genres))
	for _, g := range m.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (m *MemoryGenreStore) GetByID(ctx context.Context, id int64) (*domain.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.genres[id]
	if !ok {
		return nil, ErrGenreNotFound
	}
	return &g, nil
}

// MemoryMpaRatingStore реализует MpaRatingStore в памяти.
type MemoryMpaRatingStore struct {
	mu      sync.RWMutex
	ratings map[int64]domain.MpaRating
}

// NewMemoryMpaRatingStore создает справочник рейтингов со стандартным набором.
func NewMemoryMpaRatingStore() *MemoryMpaRatingStore {
	ratings := make(map[int64]domain.MpaRating)
	for _, r := range DefaultMpaRatings() {
		ratings[r.ID] = r
	}
	return &MemoryMpaRatingStore{ratings: ratings}
}

func (m *MemoryMpaRatingStore) List(ctx context.Context) ([]domain.MpaRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ratings := make([]domain.MpaRating, 0, len(m.ratings))
	for _, r := range m.ratings {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}

func (m *MemoryMpaRatingStore) GetByID(ctx context.Context, id int64) (*domain.MpaRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.ratings[id]
	if !ok {
		return nil, ErrRatingNotFound
	}
	return &r, nil
}
