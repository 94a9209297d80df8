package kafka

import (
	"context"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

// MessageHandler интерфейс для обработки сообщений из Kafka
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, value []byte) error
}

// IEventProducer - публикация событий аудита релея
type IEventProducer interface {
	SendRelayEvent(ctx context.Context, event domain.RelayEvent) error
}
