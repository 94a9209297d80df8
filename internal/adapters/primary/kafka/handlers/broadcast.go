package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"log/slog"

	"github.com/admin/tg-bots/image2url-bot/internal/ports/service"
)

// BroadcastHandler - рассылка, запущенная через Kafka (ops-тулинг),
// проходит через тот же usecase, что и команда /broadcast
type BroadcastHandler struct {
	botService service.IBotService
	log        *slog.Logger
}

func NewBroadcastHandler(botService service.IBotService, log *slog.Logger) *BroadcastHandler {
	return &BroadcastHandler{
		botService: botService,
		log:        log,
	}
}

// broadcastCommand тело сообщения из топика broadcasts
type broadcastCommand struct {
	Text string `json:"text"`
}

// HandleMessage обрабатывает одну команду рассылки
func (h *BroadcastHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var cmd broadcastCommand
	if err := json.Unmarshal(value, &cmd); err != nil {
		return fmt.Errorf("failed to unmarshal broadcast command: %w", err)
	}

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		h.log.Warn("broadcast command with empty text, skipping", "key", key)
		return nil
	}

	report, err := h.botService.Broadcast(ctx, text)
	if err != nil {
		return fmt.Errorf("broadcast failed: %w", err)
	}

	h.log.Info("kafka-triggered broadcast completed",
		"key", key,
		"sent", report.Sent,
		"failed", report.Failed,
	)

	return nil
}
