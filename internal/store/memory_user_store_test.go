package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"filmorate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(email string) *domain.User {
	return &domain.User{
		Email:    email,
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: domain.NewDate(1946, time.August, 20),
	}
}

func TestMemoryUserStoreCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	created, err := s.Create(ctx, newTestUser("mail@mail.ru"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = s.Create(ctx, newTestUser("mail@mail.ru"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	second, err := s.Create(ctx, newTestUser("other@mail.ru"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestMemoryUserStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	created, err := s.Create(ctx, newTestUser("mail@mail.ru"))
	require.NoError(t, err)

	created.Name = "est adipisicing"
	updated, err := s.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "est adipisicing", updated.Name)

	missing := newTestUser("ghost@mail.ru")
	missing.ID = 9999
	_, err = s.Update(ctx, missing)
	assert.ErrorIs(t, err, ErrUserNotFound)

	other, err := s.Create(ctx, newTestUser("other@mail.ru"))
	require.NoError(t, err)
	other.Email = "mail@mail.ru"
	_, err = s.Update(ctx, other)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryUserStoreGetByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	created, err := s.Create(ctx, newTestUser("mail@mail.ru"))
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = s.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserStoreFriendship(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	alice, err := s.Create(ctx, newTestUser("alice@mail.ru"))
	require.NoError(t, err)
	bob, err := s.Create(ctx, newTestUser("bob@mail.ru"))
	require.NoError(t, err)

	require.NoError(t, s.AddFriend(ctx, alice.ID, bob.ID))

	// Дружба симметрична: связь видна с обеих сторон.
	aliceFriends, err := s.FriendIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob.ID}, aliceFriends)

	bobFriends, err := s.FriendIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, bobFriends)

	assert.ErrorIs(t, s.AddFriend(ctx, alice.ID, bob.ID), ErrDuplicateFriendship)
	assert.ErrorIs(t, s.AddFriend(ctx, bob.ID, alice.ID), ErrDuplicateFriendship)
	assert.ErrorIs(t, s.AddFriend(ctx, alice.ID, 9999), ErrUserNotFound)

	// Список друзей несуществующего пользователя - ошибка, не пустой список.
	_, err = s.FriendIDs(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserStoreRemoveFriend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	alice, err := s.Create(ctx, newTestUser("alice@mail.ru"))
	require.NoError(t, err)
	bob, err := s.Create(ctx, newTestUser("bob@mail.ru"))
	require.NoError(t, err)

	// Удаление несуществующей связи проходит молча.
	require.NoError(t, s.RemoveFriend(ctx, alice.ID, bob.ID))

	require.NoError(t, s.AddFriend(ctx, alice.ID, bob.ID))
	require.NoError(t, s.RemoveFriend(ctx, bob.ID, alice.ID))

	aliceFriends, err := s.FriendIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)

	assert.ErrorIs(t, s.RemoveFriend(ctx, alice.ID, 9999), ErrUserNotFound)
}

func TestMemoryUserStoreFriendIDsSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	main, err := s.Create(ctx, newTestUser("main@mail.ru"))
	require.NoError(t, err)

	var friendIDs []int64
	for i := 0; i < 5; i++ {
		friend, err := s.Create(ctx, newTestUser(fmt.Sprintf("friend%d@mail.ru", i)))
		require.NoError(t, err)
		friendIDs = append(friendIDs, friend.ID)
	}
	// Добавляем в обратном порядке, чтобы проверить сортировку.
	for i := len(friendIDs) - 1; i >= 0; i-- {
		require.NoError(t, s.AddFriend(ctx, main.ID, friendIDs[i]))
	}

	got, err := s.FriendIDs(ctx, main.ID)
	require.NoError(t, err)
	assert.Equal(t, friendIDs, got)
}
