package service

import (
	"context"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
)

// IBotService - бизнес-логика бота, в которую роутит диспетчер
type IBotService interface {
	HandleCommand(ctx context.Context, message *domain.Message, command string, args string) error
	HandlePhoto(ctx context.Context, message *domain.Message) error
	HandleText(ctx context.Context, message *domain.Message) error
	// Broadcast рассылает текст всем пользователям; отказ одного получателя
	// не прерывает рассылку остальным
	Broadcast(ctx context.Context, text string) (domain.BroadcastReport, error)
}

// IAlerterService - отправка операционных алертов
type IAlerterService interface {
	SendAlert(ctx context.Context, message string) error
}
