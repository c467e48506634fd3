package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"filmorate/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresUserStore реализует UserStore для PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresUserStore создает новый экземпляр PostgresUserStore.
func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

type userRow struct {
	ID       int64       `db:"id"`
	Email    string      `db:"email"`
	Login    string      `db:"login"`
	Name     string      `db:"name"`
	Birthday domain.Date `db:"birthday"`
}

func (r userRow) toUser() *domain.User {
	return &domain.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday,
	}
}

// Create создает нового пользователя.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`

	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("email", user.Email))
	var id int64
	err := s.db.QueryRowContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Email already in use", slog.String("email", user.Email))
			return nil, ErrDuplicateEmail
		}
		s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created := user.Clone()
	created.ID = id
	s.logger.InfoContext(ctx, "User created in DB", slog.Int64("userID", id))
	return created, nil
}

// Update обновляет данные пользователя.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`

	s.logger.DebugContext(ctx, "Executing Update user query", slog.Int64("userID", user.ID))
	result, err := s.db.ExecContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "Email already in use", slog.String("email", user.Email))
			return nil, ErrDuplicateEmail
		}
		s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No user found to update in DB", slog.Int64("userID", user.ID))
		return nil, ErrUserNotFound
	}

	s.logger.InfoContext(ctx, "User updated in DB", slog.Int64("userID", user.ID))
	return user.Clone(), nil
}

// GetByID находит пользователя по его ID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users WHERE id = $1`
	var row userRow

	s.logger.DebugContext(ctx, "Executing GetUserByID query", slog.Int64("userID", id))
	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "User not found by ID in DB", slog.Int64("userID", id))
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.Int64("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return row.toUser(), nil
}

// List возвращает всех пользователей.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users ORDER BY id`
	var rows []userRow

	s.logger.DebugContext(ctx, "Executing List users query")
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

// AddFriend создает дружескую связь между пользователями.
// Связь хранится одной строкой, но считается действующей в обе стороны,
// поэтому дубликат ищется в обоих направлениях.
func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID int64) error {
	var count int
	checkQuery := `SELECT COUNT(*) FROM friendships
WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`

	s.logger.DebugContext(ctx, "Executing AddFriend queries", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	if err := s.db.GetContext(ctx, &count, checkQuery, userID, friendID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to check friendship in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check friendship: %w", err)
	}
	if count > 0 {
		s.logger.WarnContext(ctx, "Friendship already exists", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
		return ErrDuplicateFriendship
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2)`, userID, friendID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation: гонка двух одновременных запросов
				return ErrDuplicateFriendship
			case "23503": // foreign_key_violation
				s.logger.WarnContext(ctx, "User not found for friendship", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
				return ErrUserNotFound
			}
		}
		s.logger.ErrorContext(ctx, "Failed to add friendship in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to add friendship: %w", err)
	}

	s.logger.InfoContext(ctx, "Friendship added in DB", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	return nil
}

// RemoveFriend удаляет дружескую связь. Отсутствие связи - не ошибка.
func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	query := `DELETE FROM friendships
WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`

	s.logger.DebugContext(ctx, "Executing RemoveFriend query", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	if _, err := s.db.ExecContext(ctx, query, userID, friendID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove friendship in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

// FriendIDs возвращает id друзей пользователя по возрастанию.
// Несуществующий пользователь - ошибка, а не пустой список.
func (s *PostgresUserStore) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	var exists bool
	s.logger.DebugContext(ctx, "Executing FriendIDs query", slog.Int64("userID", userID))
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to check user existence in DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "User not found for friend listing", slog.Int64("userID", userID))
		return nil, ErrUserNotFound
	}

	query := `SELECT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END AS friend_id
FROM friendships
WHERE user_id = $1 OR friend_id = $1
ORDER BY friend_id`

	ids := []int64{}
	if err := s.db.SelectContext(ctx, &ids, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list friend ids from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list friend ids: %w", err)
	}
	return ids, nil
}
