package store

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// UserStore определяет интерфейс для операций с данными пользователей
// и дружеских связей.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	// FriendIDs возвращает id друзей пользователя по возрастанию.
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

// MemoryUserStore реализует UserStore в памяти процесса.
// Дружба симметрична: связь хранится в обоих направлениях.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[int64]domain.User
	friends map[int64]map[int64]struct{} // userID -> множество friendID
}

// NewMemoryUserStore создает новый экземпляр MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[int64]domain.User),
		friends: make(map[int64]map[int64]struct{}),
	}
}

func (m *MemoryUserStore) nextID() int64 {
	var maxID int64
	for id := range m.users {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (m *MemoryUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Дубликаты пользователей определяются по email.
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	stored := user.Clone()
	stored.ID = m.nextID()
	m.users[stored.ID] = *stored
	m.friends[stored.ID] = make(map[int64]struct{})

	return stored.Clone(), nil
}

func (m *MemoryUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return nil, ErrUserNotFound
	}
	for id, existing := range m.users {
		if id != user.ID && existing.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	stored := user.Clone()
	m.users[user.ID] = *stored

	return stored.Clone(), nil
}

func (m *MemoryUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return stored.Clone(), nil
}

func (m *MemoryUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, stored := range m.users {
		users = append(users, stored.Clone())
	}
	return users, nil
}

func (m *MemoryUserStore) AddFriend(ctx context.Context, userID, friendID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userFriends, ok := m.friends[userID]
	if !ok {
		return ErrUserNotFound
	}
	friendFriends, ok := m.friends[friendID]
	if !ok {
		return ErrUserNotFound
	}
	if _, exists := userFriends[friendID]; exists {
		return ErrDuplicateFriendship
	}

	userFriends[friendID] = struct{}{}
	friendFriends[userID] = struct{}{}
	return nil
}

func (m *MemoryUserStore) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userFriends, ok := m.friends[userID]
	if !ok {
		return ErrUserNotFound
	}
	friendFriends, ok := m.friends[friendID]
	if !ok {
		return ErrUserNotFound
	}

	// Удаление несуществующей связи - не ошибка.
	delete(userFriends, friendID)
	delete(friendFriends, userID)
	return nil
}

func (m *MemoryUserStore) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userFriends, ok := m.friends[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	ids := make([]int64, 0, len(userFriends))
	for id := range userFriends {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
