package telegram

import (
	"log/slog"

	"github.com/admin/tg-bots/image2url-bot/internal/ports/service"
)

// Service - диспетчер входящих обновлений: роутит события в usecase
type Service struct {
	BotService service.IBotService
	Log        *slog.Logger
}

func New(
	botService service.IBotService,
	log *slog.Logger,
) *Service {
	return &Service{
		BotService: botService,
		Log:        log,
	}
}
