package jobs

import (
	"context"
	"log/slog"
	"time"

	uploaderUsecase "github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader"
)

const statsReportName = "daily-stats-report"

// StatsReport джоба ежедневной сводки для админа, каждый день в 09:00 UTC
type StatsReport struct {
	uploaderService *uploaderUsecase.Service
	log             *slog.Logger
}

func NewStatsReport(
	uploaderService *uploaderUsecase.Service,
	log *slog.Logger,
) *StatsReport {
	return &StatsReport{
		uploaderService: uploaderService,
		log:             log,
	}
}

func (j *StatsReport) Name() string {
	return statsReportName
}

// NextRun каждый день в 09:00 UTC
func (j *StatsReport) NextRun(now time.Time) time.Time {
	nowUTC := now.UTC()
	next := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 9, 0, 0, 0, time.UTC)
	if next.Before(nowUTC) || next.Equal(nowUTC) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run собирает счётчики за всё время и отправляет сводку админу
func (j *StatsReport) Run(ctx context.Context) error {
	return j.uploaderService.SendDailyStats(ctx)
}
