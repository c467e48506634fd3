package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGenreStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryGenreStore()

	genres, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 6)
	assert.Equal(t, "Комедия", genres[0].Name)
	assert.Equal(t, "Боевик", genres[5].Name)

	genre, err := s.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Драма", genre.Name)

	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestMemoryMpaRatingStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryMpaRatingStore()

	ratings, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, "G", ratings[0].Name)
	assert.Equal(t, "NC-17", ratings[4].Name)

	rating, err := s.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", rating.Name)

	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrRatingNotFound)
}
