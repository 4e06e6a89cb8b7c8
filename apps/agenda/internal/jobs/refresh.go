package jobs

import (
	"context"
	"log/slog"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/services"
)

const RefreshJobID = "refresh"

// RefreshJob re-imports every calendar from its source.
type RefreshJob struct {
	calendarService *services.CalendarService
}

func NewRefreshJob(calendarService *services.CalendarService) RefreshJob {
	return RefreshJob{
		calendarService: calendarService,
	}
}

func (j RefreshJob) ID() string {
	return RefreshJobID
}

func (j RefreshJob) RunEvery() time.Duration {
	//nolint:mnd //no magic number
	return 24 * time.Hour
}

func (j RefreshJob) Run(ctx context.Context, logger *slog.Logger) error {
	logger.Debug("refreshing calendars")
	return j.calendarService.RefreshAll(ctx)
}
