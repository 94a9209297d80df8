package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/tg-bots/image2url-bot/internal/adapters/primary/http"
	healthcheckController "github.com/admin/tg-bots/image2url-bot/internal/adapters/primary/http/controllers/healthcheck"
	livenessController "github.com/admin/tg-bots/image2url-bot/internal/adapters/primary/http/controllers/liveness"
	kafkaConsumerAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/admin/tg-bots/image2url-bot/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/alerter"
	imgbbAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/hosting/imgbb"
	s3Adapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/hosting/s3"
	kafkaAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/storage/redis"
	tgAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/cache"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/hosting"
	kafkaPorts "github.com/admin/tg-bots/image2url-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/repository"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/service"
	userRepo "github.com/admin/tg-bots/image2url-bot/internal/repository/user"
	jobScheduler "github.com/admin/tg-bots/image2url-bot/internal/services/jobs"
	"github.com/admin/tg-bots/image2url-bot/internal/services/supervisor"
	telegramService "github.com/admin/tg-bots/image2url-bot/internal/services/telegram"
	uploaderUsecase "github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB              *sqlx.DB
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClient  *tgAdapter.Client
	Supervisor      *supervisor.Supervisor
	Poller          *tgAdapter.Poller
	KafkaProducer   *kafkaAdapter.Producer
	KafkaConsumer   *kafkaConsumerAdapter.Consumer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	users := a.initRepositories(db)

	tgClient := tgAdapter.NewClient(a.Cfg.Telegram.BotToken, a.Log)
	if err := tgClient.GetMe(ctx); err != nil {
		return nil, fmt.Errorf("telegram token check failed: %w", err)
	}
	if err := a.registerBotCommands(ctx, tgClient); err != nil {
		a.Log.Warn("failed to register bot commands", "error", err)
	}

	externalServices := a.initExternalServices()

	uploaderClient, err := a.initHosting()
	if err != nil {
		return nil, fmt.Errorf("failed to init hosting backend: %w", err)
	}

	producer, err := a.initKafkaProducer()
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka producer: %w", err)
	}

	botService := uploaderUsecase.New(
		users,
		tgClient,
		uploaderClient,
		externalServices.Cache,   // может быть nil
		producerOrNil(producer),  // может быть nil
		externalServices.Alerter, // может быть nil
		a.Cfg.Bot.AdminChatID,
		a.Log,
	)

	tgService := telegramService.New(botService, a.Log)

	consumer, err := a.initKafkaConsumer(botService)
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka consumer: %w", err)
	}

	poller, sup := a.initPolling(tgService, tgClient, botService, externalServices.Alerter)

	return &Dependencies{
		DB:              db,
		HTTPServer:      a.initHTTP(db),
		TelegramService: tgService,
		TelegramClient:  tgClient,
		Supervisor:      sup,
		Poller:          poller,
		KafkaProducer:   producer,
		KafkaConsumer:   consumer,
		Cache:           externalServices.Cache,
		JobScheduler:    a.initJobScheduler(externalServices.Alerter, botService, externalServices.Cache),
	}, nil
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) repository.IUserRepo {
	persistenceLayer := pg.NewDB(db)
	return userRepo.New(persistenceLayer, a.Log)
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Alerter service.IAlerterService
	Cache   cache.Cache
}

// initExternalServices инициализирует Alerter и Redis Cache
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// Alerter - опциональный. envconfig всегда аллоцирует вложенные
	// структуры, поэтому включённость определяется по заполненным полям.
	if a.Cfg.Alerter != nil && a.Cfg.Alerter.Enabled() {
		services.Alerter = alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
	}

	// Redis Cache - опциональный, живёт под счётчиками статистики
	if a.Cfg.Redis != nil && a.Cfg.Redis.Enabled() {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing without cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}

	return services
}

// initHosting выбирает бэкенд хостинга картинок по конфигурации
func (a *App) initHosting() (hosting.IUploader, error) {
	switch a.Cfg.Bot.HostingBackend {
	case HostingBackendS3:
		if a.Cfg.S3 == nil {
			return nil, fmt.Errorf("hosting backend is s3, but S3 configuration is missing")
		}
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		a.Log.Info("hosting backend: s3", "bucket", a.Cfg.S3.Bucket)
		return s3Adapter.NewClient(minioClient, a.Cfg.S3, a.Log), nil

	case HostingBackendImgBB, "":
		if a.Cfg.ImgBB == nil {
			return nil, fmt.Errorf("imgbb configuration is missing")
		}
		a.Log.Info("hosting backend: imgbb")
		return imgbbAdapter.NewClient(a.Cfg.ImgBB, a.Log), nil

	default:
		return nil, fmt.Errorf("unknown hosting backend: %s", a.Cfg.Bot.HostingBackend)
	}
}

// initKafkaProducer инициализирует producer событий аудита (опционально)
func (a *App) initKafkaProducer() (*kafkaAdapter.Producer, error) {
	if a.Cfg.KafkaProducer == nil || !a.Cfg.KafkaProducer.Enabled() {
		return nil, nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.KafkaProducer, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return producer, nil
}

// initKafkaConsumer инициализирует consumer команд рассылки (опционально)
func (a *App) initKafkaConsumer(botService service.IBotService) (*kafkaConsumerAdapter.Consumer, error) {
	if a.Cfg.KafkaConsumer == nil || !a.Cfg.KafkaConsumer.Enabled() || a.Cfg.KafkaConsumer.ConsumerGroup == "" {
		return nil, nil
	}

	handler := kafkaHandlers.NewBroadcastHandler(botService, a.Log)

	consumer, err := kafkaConsumerAdapter.NewConsumer(a.Cfg.KafkaConsumer, handler, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return consumer, nil
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(db *sqlx.DB) *http.Server {
	controllers := []server.Controller{
		livenessController.New(a.Log),
		healthcheckController.New(db, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initPolling собирает поллер и супервизор над ним
func (a *App) initPolling(
	tgService *telegramService.Service,
	tgClient *tgAdapter.Client,
	botService *uploaderUsecase.Service,
	alerterSvc service.IAlerterService,
) (*tgAdapter.Poller, *supervisor.Supervisor) {
	handler := func(ctx context.Context, update *domain.Update) error {
		return tgService.HandleUpdate(ctx, update)
	}

	poller := tgAdapter.NewPoller(tgClient, a.Cfg.Telegram, handler, a.Log)

	hook := func(ctx context.Context, restarts int64, cause error) {
		botService.IncrPollerRestarts(ctx)

		if alerterSvc != nil {
			message := fmt.Sprintf("⚠️ Telegram poller crashed and was restarted\n\nRestart #%d\nCause: %s", restarts, cause)
			if err := alerterSvc.SendAlert(ctx, message); err != nil {
				a.Log.Warn("failed to send restart alert", "error", err)
			}
		}
	}

	sup := supervisor.New("telegram-poller", poller, a.Cfg.Supervisor, hook, a.Log)

	return poller, sup
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	botService *uploaderUsecase.Service,
	cacheClient cache.Cache,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	// Сводка имеет смысл только при настроенном админе
	if a.Cfg.Bot.AdminChatID != 0 {
		statsReport := jobScheduler.NewStatsReport(botService, a.Log)
		scheduler.Register(statsReport)
		a.Log.Info("daily stats report job registered")
	}

	return scheduler
}

// registerBotCommands регистрирует команды бота в Telegram.
// Админские команды в меню не публикуются.
func (a *App) registerBotCommands(ctx context.Context, client *tgAdapter.Client) error {
	commands := []tgAdapter.BotCommand{
		{Command: "start", Description: "Start the bot and get instructions"},
	}

	return client.SetMyCommands(ctx, commands)
}

// producerOrNil приводит *Producer к интерфейсу без типизированного nil
func producerOrNil(producer *kafkaAdapter.Producer) kafkaPorts.IEventProducer {
	if producer == nil {
		return nil
	}
	return producer
}
