package store

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// FilmStore определяет интерфейс для операций с данными фильмов и лайков.
// Реализации: MemoryFilmStore и PostgresFilmStore.
type FilmStore interface {
	Create(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)
	GetByID(ctx context.Context, id int64) (*domain.Film, error)
	List(ctx context.Context) ([]*domain.Film, error)
	// Popular возвращает не более count фильмов, отсортированных по убыванию
	// количества лайков. Порядок фильмов с равным количеством не определен.
	Popular(ctx context.Context, count int) ([]*domain.Film, error)
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
}

// MemoryFilmStore реализует FilmStore в памяти процесса.
// Хранилище владеет каноническими записями: внутрь кладутся и наружу
// отдаются только копии, живых ссылок у вызывающего кода нет.
type MemoryFilmStore struct {
	mu    sync.RWMutex
	films map[int64]domain.Film
	likes map[int64]map[int64]struct{} // filmID -> множество userID
}

// NewMemoryFilmStore создает новый экземпляр MemoryFilmStore.
func NewMemoryFilmStore() *MemoryFilmStore {
	return &MemoryFilmStore{
		films: make(map[int64]domain.Film),
		likes: make(map[int64]map[int64]struct{}),
	}
}

// nextID назначает id по правилу max(существующие id) + 1, для пустой
// коллекции - 1. Вызывается под мьютексом.
func (m *MemoryFilmStore) nextID() int64 {
	var maxID int64
	for id := range m.films {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (m *MemoryFilmStore) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Дубликаты фильмов определяются по названию, не по id.
	for _, existing := range m.films {
		if existing.Name == film.Name {
			return nil, ErrDuplicateFilmName
		}
	}

	stored := film.Clone()
	stored.ID = m.nextID()
	stored.Likes = nil
	m.films[stored.ID] = *stored
	m.likes[stored.ID] = make(map[int64]struct{})

	return m.snapshot(stored.ID), nil
}

func (m *MemoryFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.films[film.ID]; !ok {
		return nil, ErrFilmNotFound
	}
	// Проверка уникальности названия против всех остальных записей.
	for id, existing := range m.films {
		if id != film.ID && existing.Name == film.Name {
			return nil, ErrDuplicateFilmName
		}
	}

	stored := film.Clone()
	stored.Likes = nil
	m.films[film.ID] = *stored

	return m.snapshot(film.ID), nil
}

func (m *MemoryFilmStore) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.films[id]; !ok {
		return nil, ErrFilmNotFound
	}
	return m.snapshot(id), nil
}

func (m *MemoryFilmStore) List(ctx context.Context) ([]*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	films := make([]*domain.Film, 0, len(m.films))
	for id := range m.films {
		films = append(films, m.snapshot(id))
	}
	return films, nil
}

func (m *MemoryFilmStore) Popular(ctx context.Context, count int) ([]*domain.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	films := make([]*domain.Film, 0, len(m.films))
	for id := range m.films {
		films = append(films, m.snapshot(id))
	}
	sort.SliceStable(films, func(i, j int) bool {
		return films[i].LikeCount() > films[j].LikeCount()
	})
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func (m *MemoryFilmStore) AddLike(ctx context.Context, filmID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filmLikes, ok := m.likes[filmID]
	if !ok {
		return ErrFilmNotFound
	}
	if _, liked := filmLikes[userID]; liked {
		return ErrDuplicateLike
	}
	filmLikes[userID] = struct{}{}
	return nil
}

func (m *MemoryFilmStore) RemoveLike(ctx context.Context, filmID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filmLikes, ok := m.likes[filmID]
	if !ok {
		return ErrFilmNotFound
	}
	if _, liked := filmLikes[userID]; !liked {
		return ErrLikeNotSet
	}
	delete(filmLikes, userID)
	return nil
}

// snapshot собирает копию фильма с актуальным множеством лайков.
// Вызывается под мьютексом (хватает блокировки на чтение).
func (m *MemoryFilmStore) snapshot(id int64) *domain.Film {
	stored := m.films[id]
	film := stored.Clone()
	film.Likes = make([]int64, 0, len(m.likes[id]))
	for userID := range m.likes[id] {
		film.Likes = append(film.Likes, userID)
	}
	sort.Slice(film.Likes, func(i, j int) bool { return film.Likes[i] < film.Likes[j] })
	return film
}
