package uploader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader/texts"
)

// errEmptyBroadcast - текст рассылки пуст после обрезки пробелов
var errEmptyBroadcast = errors.New("broadcast text is empty")

// Broadcast рассылает текст всем пользователям директории.
// Отказ одного получателя (заблокировал бота, удалил аккаунт) логируется
// и не прерывает рассылку остальным.
func (s *Service) Broadcast(ctx context.Context, text string) (domain.BroadcastReport, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.BroadcastReport{}, errEmptyBroadcast
	}

	users, err := s.UserRepo.GetAll(ctx)
	if err != nil {
		s.Log.Error("failed to load users for broadcast", "error", err)
		return domain.BroadcastReport{}, fmt.Errorf("failed to load users for broadcast: %w", err)
	}

	var report domain.BroadcastReport
	for _, user := range users {
		if err := s.TelegramClient.SendMessage(ctx, user.ChatID, texts.BroadcastPrefix+text); err != nil {
			report.Failed++
			s.Log.Warn("failed to send broadcast message",
				"error", err,
				"chat_id", user.ChatID,
			)
			continue
		}
		report.Sent++
	}

	s.Log.Info("broadcast finished",
		"sent", report.Sent,
		"failed", report.Failed,
	)

	return report, nil
}
