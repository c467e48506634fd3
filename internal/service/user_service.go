package service

import (
	"context"
	"log/slog"
	"time"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

// UserService содержит бизнес-логику работы с пользователями и дружбой.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) validate(ctx context.Context, user *domain.User) error {
	if err := domain.ValidateLogin(user.Login); err != nil {
		s.logger.WarnContext(ctx, "Invalid user login", slog.String("login", user.Login))
		return err
	}
	if err := domain.ValidateBirthday(user.Birthday, time.Now()); err != nil {
		s.logger.WarnContext(ctx, "User birthday in the future", slog.String("birthday", user.Birthday.String()))
		return err
	}
	domain.NormalizeName(user)
	return nil
}

// Create валидирует и сохраняет нового пользователя.
// Пустое имя заменяется логином до записи в хранилище.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.validate(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "User created", slog.Int64("userID", created.ID), slog.String("login", created.Login))
	return created, nil
}

// Update валидирует и сохраняет измененного пользователя.
func (s *UserService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == 0 {
		return nil, domain.ErrIDRequired
	}
	if err := s.validate(ctx, user); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "User updated", slog.Int64("userID", updated.ID))
	return updated, nil
}

// GetByID возвращает пользователя по id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// AddFriend добавляет дружбу между двумя пользователями. Дружба взаимна.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return domain.ErrSelfFriendship
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, friendID); err != nil {
		return err
	}
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Friendship added", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	return nil
}

// RemoveFriend удаляет дружбу. Удаление несуществующей связи - не ошибка,
// но оба пользователя должны существовать.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, friendID); err != nil {
		return err
	}
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Friendship removed", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	return nil
}

// Friends возвращает полные записи друзей пользователя.
func (s *UserService) Friends(ctx context.Context, userID int64) ([]*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.users.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids)
}

// CommonFriends возвращает пользователей, состоящих в друзьях у обоих.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int64) ([]*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	userFriends, err := s.users.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.users.FriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int64]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}
	common := make([]int64, 0)
	for _, id := range userFriends {
		if _, ok := otherSet[id]; ok {
			common = append(common, id)
		}
	}
	return s.resolve(ctx, common)
}

func (s *UserService) resolve(ctx context.Context, ids []int64) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
