package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/image2url-bot/internal/ports/repository"
)

type userColumns struct {
	TableName string
	ID        string
	ChatID    string
	FirstName string
	CreatedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с директорией пользователей
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName: "bot_users",
		ID:        "id",
		ChatID:    "chat_id",
		FirstName: "first_name",
		CreatedAt: "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (4 колонки)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s",
		r.columns.ID,
		r.columns.ChatID,
		r.columns.FirstName,
		r.columns.CreatedAt)
}

// Register сохраняет пользователя, если chat_id ещё не записан.
// ON CONFLICT DO NOTHING закрывает гонку двух одновременных первых /start.
func (r *Repository) Register(ctx context.Context, user *domain.BotUser) (bool, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4) ON CONFLICT (%s) DO NOTHING`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.ChatID)
	rowsAffected, err := r.db.ExecWithResult(ctx, query,
		user.ID,
		user.ChatID,
		user.FirstName,
		user.CreatedAt)
	if err != nil {
		r.Log.Error("failed to register user",
			"error", err,
			"chat_id", user.ChatID)
		return false, fmt.Errorf("failed to register user: %w", err)
	}
	created := rowsAffected > 0
	r.Log.Debug("user registered",
		"chat_id", user.ChatID,
		"created", created)
	return created, nil
}

// ExistsByChatID проверяет наличие записи с таким chat_id
func (r *Repository) ExistsByChatID(ctx context.Context, chatID int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		r.columns.TableName,
		r.columns.ChatID)
	if err := r.db.Get(ctx, &exists, query, chatID); err != nil {
		r.Log.Error("failed to check user existence",
			"error", err,
			"chat_id", chatID)
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// GetByChatID получает пользователя по chat_id
func (r *Repository) GetByChatID(ctx context.Context, chatID int64) (*domain.BotUser, error) {
	var user domain.BotUser
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ChatID)
	err := r.db.Get(ctx, &user, query, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found", "chat_id", chatID)
			return nil, domain.ErrUserNotFound
		}
		r.Log.Error("failed to get user by chat id",
			"error", err,
			"chat_id", chatID)
		return nil, fmt.Errorf("failed to get user by chat id: %w", err)
	}
	return &user, nil
}

// GetAll возвращает всех пользователей (для /users и рассылки)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.BotUser, error) {
	var users []*domain.BotUser
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.CreatedAt)
	if err := r.db.Select(ctx, &users, query); err != nil {
		r.Log.Error("failed to get all users", "error", err)
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	r.Log.Debug("users retrieved", "count", len(users))
	return users, nil
}

// Count возвращает число записей в директории
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.columns.TableName)
	if err := r.db.Get(ctx, &count, query); err != nil {
		r.Log.Error("failed to count users", "error", err)
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
