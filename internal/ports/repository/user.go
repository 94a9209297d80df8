package repository

import (
	"context"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

// IUserRepo интерфейс для работы с директорией пользователей бота.
// Записи создаются при первом /start и никогда не обновляются/не удаляются.
type IUserRepo interface {
	// Register сохраняет пользователя, если его chat_id ещё не записан.
	// Возвращает true, если запись была создана.
	Register(ctx context.Context, user *domain.BotUser) (bool, error)
	ExistsByChatID(ctx context.Context, chatID int64) (bool, error)
	GetByChatID(ctx context.Context, chatID int64) (*domain.BotUser, error)
	GetAll(ctx context.Context) ([]*domain.BotUser, error)
	Count(ctx context.Context) (int64, error)
}
