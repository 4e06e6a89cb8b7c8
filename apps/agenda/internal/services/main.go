package services

import (
	"log/slog"

	"agenda.xdoubleu.com/apps/agenda/pkg/icsfeed"
	"agenda.xdoubleu.com/apps/agenda/pkg/tablesource"
	"agenda.xdoubleu.com/internal/auth"
	"agenda.xdoubleu.com/internal/config"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

type Services struct {
	Auth      auth.Service
	Calendar  *CalendarService
	WebSocket *WebSocketService
}

type Sources struct {
	HTML tablesource.Client
	CSV  tablesource.Client
	ICS  icsfeed.Client
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	jobQueue *threading.JobQueue,
	store Store,
	sources Sources,
	authService auth.Service,
) *Services {
	return &Services{
		Auth: authService,
		Calendar: &CalendarService{
			logger:    logger,
			store:     store,
			sources:   sources,
			uidDomain: cfg.UIDDomain,
			year:      cfg.Year,
		},
		WebSocket: NewWebSocketService(logger, []string{cfg.WebURL}, jobQueue),
	}
}
