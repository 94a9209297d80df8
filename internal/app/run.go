package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Поллер под супервизором: любое падение перезапускается, выход
	// только по отмене контекста
	g.Go(func() error {
		return a.runPolling(gCtx, deps)
	})

	if deps.KafkaConsumer != nil {
		g.Go(func() error {
			a.Log.Info("starting kafka consumer")
			return deps.KafkaConsumer.Start(gCtx)
		})
	}

	// Планировщик запускает горутины внутри, сам не блокирует
	if deps.JobScheduler != nil {
		if err := deps.JobScheduler.Start(gCtx); err != nil {
			a.Log.Error("failed to start job scheduler", "error", err)
		}
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		if err := deps.DB.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}

		if deps.Cache != nil {
			if err := deps.Cache.Close(); err != nil {
				a.Log.Error("failed to close cache", "error", err)
			}
		}

		if deps.KafkaProducer != nil {
			if err := deps.KafkaProducer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err)
			}
		}

		if deps.KafkaConsumer != nil {
			if err := deps.KafkaConsumer.Close(); err != nil {
				a.Log.Error("failed to close kafka consumer", "error", err)
			}
		}

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}

// runPolling удаляет webhook и отдаёт поллер супервизору
func (a *App) runPolling(ctx context.Context, deps *Dependencies) error {
	if deps.Poller == nil || deps.Supervisor == nil {
		return fmt.Errorf("telegram poller is not initialized")
	}

	deleteCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := deps.Poller.DeleteWebhook(deleteCtx); err != nil {
		a.Log.Warn("failed to delete webhook, continuing anyway", "error", err)
		// Даём Telegram время применить удаление webhook
		time.Sleep(2 * time.Second)
	}

	err := deps.Supervisor.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
