package telegram

import (
	"context"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

// IClient - операции Telegram Bot API, нужные боту
type IClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard map[string]interface{}) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
	GetFile(ctx context.Context, fileID string) (*domain.FileInfo, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}
