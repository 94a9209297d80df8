package uploader

import (
	"log/slog"

	"github.com/admin/tg-bots/image2url-bot/internal/ports/cache"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/hosting"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/repository"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/service"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/telegram"
)

// Service бизнес-логика бота: релей фото на хостинг и админские команды.
// Stats, EventProducer и AlerterService опциональны - при nil соответствующие
// шаги просто пропускаются.
type Service struct {
	UserRepo       repository.IUserRepo
	TelegramClient telegram.IClient
	Uploader       hosting.IUploader
	Stats          cache.Cache
	EventProducer  kafka.IEventProducer
	AlerterService service.IAlerterService
	AdminChatID    int64
	Log            *slog.Logger
}

// New создаёт новый сервис бизнес-логики бота
func New(
	userRepo repository.IUserRepo,
	telegramClient telegram.IClient,
	uploader hosting.IUploader,
	stats cache.Cache,
	eventProducer kafka.IEventProducer,
	alerterService service.IAlerterService,
	adminChatID int64,
	log *slog.Logger,
) *Service {
	return &Service{
		UserRepo:       userRepo,
		TelegramClient: telegramClient,
		Uploader:       uploader,
		Stats:          stats,
		EventProducer:  eventProducer,
		AlerterService: alerterService,
		AdminChatID:    adminChatID,
		Log:            log,
	}
}
