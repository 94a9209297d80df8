package app

import (
	server "github.com/admin/tg-bots/image2url-bot/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/alerter"
	imgbbAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/hosting/imgbb"
	s3Adapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/hosting/s3"
	kafkaAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/storage/redis"
	"github.com/admin/tg-bots/image2url-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/image2url-bot/internal/pkg/logger"
	"github.com/admin/tg-bots/image2url-bot/internal/services/supervisor"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Хостинги картинок
const (
	HostingBackendImgBB = "imgbb"
	HostingBackendS3    = "s3"
)

type Config struct {
	Postgres   *pg.Config           `envconfig:"POSTGRES"`
	Log        *logger.Config       `envconfig:"LOG"`
	Server     *server.Config       `envconfig:"APISERVER"`
	Telegram   *telegram.Config     `envconfig:"TELEGRAM"`
	ImgBB      *imgbbAdapter.Config `envconfig:"IMGBB"`
	Bot        BotConfig            `envconfig:"BOT"`
	Supervisor *supervisor.Config   `envconfig:"SUPERVISOR"`

	// Опциональные подсистемы. envconfig аллоцирует вложенные указатели
	// даже без переменных окружения, поэтому обязательных полей здесь нет:
	// включённость каждой подсистемы проверяется методом Enabled()
	// (для s3 - валидацией при выборе бэкенда).
	S3            *s3Adapter.Config      `envconfig:"S3"`
	Redis         *redisAdapter.Config   `envconfig:"REDIS"`
	KafkaProducer *kafkaAdapter.Config   `envconfig:"KAFKA_PRODUCER"`
	KafkaConsumer *kafkaAdapter.Config   `envconfig:"KAFKA_CONSUMER"`
	Alerter       *alerterAdapter.Config `envconfig:"ALERTER"`
}

// BotConfig конфигурация поведения бота
type BotConfig struct {
	// AdminChatID - единственный чат с правами на /users и /broadcast.
	// 0 означает, что админских команд нет ни у кого.
	AdminChatID int64 `envconfig:"ADMIN_CHAT_ID"`
	// HostingBackend - куда заливать картинки: imgbb (дефолт) или s3
	HostingBackend string `envconfig:"HOSTING_BACKEND" default:"imgbb"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
