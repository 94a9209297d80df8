package uploader

import (
	"context"
	"fmt"
	"strconv"

	"github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader/texts"
)

// Ключи счётчиков в Redis. Счётчики накопительные, без TTL.
const (
	StatsKeyRelaySucceeded = "stats:relay_succeeded"
	StatsKeyRelayFailed    = "stats:relay_failed"
	StatsKeyPollerRestarts = "stats:poller_restarts"
)

// incrRelayCounter инкрементит счётчик исходов релея; без кэша - no-op
func (s *Service) incrRelayCounter(ctx context.Context, ok bool) {
	if s.Stats == nil {
		return
	}

	key := StatsKeyRelayFailed
	if ok {
		key = StatsKeyRelaySucceeded
	}

	if _, err := s.Stats.Incr(ctx, key); err != nil {
		s.Log.Warn("failed to increment relay counter",
			"error", err,
			"key", key,
		)
	}
}

// IncrPollerRestarts инкрементит счётчик перезапусков поллера
func (s *Service) IncrPollerRestarts(ctx context.Context) {
	if s.Stats == nil {
		return
	}

	if _, err := s.Stats.Incr(ctx, StatsKeyPollerRestarts); err != nil {
		s.Log.Warn("failed to increment restart counter", "error", err)
	}
}

// SendDailyStats собирает счётчики и отправляет сводку админу
func (s *Service) SendDailyStats(ctx context.Context) error {
	if s.AdminChatID == 0 {
		return nil
	}

	userCount, err := s.UserRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	succeeded := s.readCounter(ctx, StatsKeyRelaySucceeded)
	failed := s.readCounter(ctx, StatsKeyRelayFailed)
	restarts := s.readCounter(ctx, StatsKeyPollerRestarts)

	return s.sendMessage(ctx, s.AdminChatID, texts.FormatDailyStats(userCount, succeeded, failed, restarts))
}

// readCounter читает счётчик; отсутствие ключа или кэша трактуется как 0
func (s *Service) readCounter(ctx context.Context, key string) int64 {
	if s.Stats == nil {
		return 0
	}

	value, err := s.Stats.Get(ctx, key)
	if err != nil || value == "" {
		return 0
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		s.Log.Warn("counter holds non-numeric value",
			"key", key,
			"value", value,
		)
		return 0
	}

	return parsed
}
