package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Runner долгоживущий процесс, который супервизор перезапускает при падении
type Runner interface {
	Run(ctx context.Context) error
}

// RestartHook вызывается после каждого падения подопечного (для счётчиков/метрик)
type RestartHook func(ctx context.Context, restarts int64, cause error)

// Config настройки политики перезапуска
type Config struct {
	RestartDelay time.Duration `envconfig:"RESTART_DELAY" default:"5s"`
	MaxBackoff   time.Duration `envconfig:"MAX_BACKOFF" default:"5m"`
	// StableAfter - сколько подопечный должен проработать без падений,
	// чтобы backoff сбросился к начальной задержке
	StableAfter time.Duration `envconfig:"STABLE_AFTER" default:"1m"`
}

// Supervisor перезапускает подопечного неограниченное число раз.
// Останавливается только по отмене контекста.
type Supervisor struct {
	name     string
	runner   Runner
	config   *Config
	hook     RestartHook
	restarts int64
	log      *slog.Logger
}

func New(name string, runner Runner, config *Config, hook RestartHook, log *slog.Logger) *Supervisor {
	if config == nil {
		config = &Config{}
	}
	if config.RestartDelay <= 0 {
		config.RestartDelay = 5 * time.Second
	}
	if config.MaxBackoff <= 0 {
		config.MaxBackoff = 5 * time.Minute
	}
	if config.StableAfter <= 0 {
		config.StableAfter = time.Minute
	}

	return &Supervisor{
		name:   name,
		runner: runner,
		config: config,
		hook:   hook,
		log:    log,
	}
}

// Restarts возвращает число перезапусков с момента старта процесса
func (s *Supervisor) Restarts() int64 {
	return s.restarts
}

// Run крутит подопечного до отмены контекста. Каждое падение логируется,
// задержка перед перезапуском удваивается до MaxBackoff и сбрасывается,
// если подопечный проработал дольше StableAfter.
func (s *Supervisor) Run(ctx context.Context) error {
	delay := s.config.RestartDelay

	for {
		started := time.Now()
		err := s.runner.Run(ctx)
		uptime := time.Since(started)

		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			s.log.Info("supervisor stopped", "name", s.name, "restarts", s.restarts)
			return ctx.Err()
		}

		s.restarts++

		if err == nil {
			err = fmt.Errorf("runner exited without error")
		}

		delay = s.restartDelay(delay, uptime)

		s.log.Error("supervised runner crashed, restarting",
			"name", s.name,
			"error", err,
			"restarts", s.restarts,
			"uptime", uptime.String(),
			"delay", delay.String(),
		)

		if s.hook != nil {
			s.hook(ctx, s.restarts, err)
		}

		select {
		case <-ctx.Done():
			s.log.Info("supervisor stopped", "name", s.name, "restarts", s.restarts)
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = s.nextDelay(delay)
	}
}

// restartDelay выбирает задержку перед ближайшим перезапуском.
// Падение после стабильной работы - новый инцидент, отсчёт начинается заново.
func (s *Supervisor) restartDelay(previous, uptime time.Duration) time.Duration {
	if uptime >= s.config.StableAfter {
		return s.config.RestartDelay
	}
	return previous
}

// nextDelay удваивает задержку, не превышая MaxBackoff
func (s *Supervisor) nextDelay(current time.Duration) time.Duration {
	next := current * 2
	if next > s.config.MaxBackoff {
		next = s.config.MaxBackoff
	}
	return next
}
