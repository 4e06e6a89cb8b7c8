package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"agenda.xdoubleu.com/apps/agenda/internal/dtos"
	wstools "github.com/xdoubleu/essentia/v2/pkg/communication/wstools"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

// WebSocketService pushes the state of background jobs to subscribed pages.
// Every job gets its own topic named after the job ID.
type WebSocketService struct {
	origins  []string
	handler  *wstools.WebSocketHandler[dtos.SubscribeMessageDto]
	jobQueue *threading.JobQueue
	topics   map[string]*wstools.Topic
}

func NewWebSocketService(
	logger *slog.Logger,
	origins []string,
	jobQueue *threading.JobQueue,
) *WebSocketService {
	handler := wstools.CreateWebSocketHandler[dtos.SubscribeMessageDto](
		logger,
		1,
		100, //nolint:mnd //no magic number
	)

	return &WebSocketService{
		origins:  origins,
		handler:  &handler,
		jobQueue: jobQueue,
		topics:   map[string]*wstools.Topic{},
	}
}

func (service *WebSocketService) Handler() http.HandlerFunc {
	return service.handler.Handler()
}

// UpdateState is called by the job queue whenever a job starts or stops.
func (service *WebSocketService) UpdateState(
	id string,
	isRunning bool,
	lastRunTime *time.Time,
) {
	topic, ok := service.topics[id]
	if !ok {
		return
	}

	topic.EnqueueEvent(dtos.StateMessageDto{
		Job:          id,
		IsRefreshing: isRunning,
		LastRefresh:  lastRunTime,
	})
}

func (service *WebSocketService) RegisterTopics(jobIDs []string) {
	for _, id := range jobIDs {
		topic, err := service.handler.AddTopic(
			id,
			service.origins,
			func(_ context.Context, tp *wstools.Topic) (any, error) {
				return service.currentState(tp.Name), nil
			},
		)
		if err != nil {
			panic(err)
		}
		service.topics[id] = topic
	}
}

func (service *WebSocketService) currentState(id string) dtos.StateMessageDto {
	isRefreshing, lastRefresh := service.jobQueue.FetchState(id)

	return dtos.StateMessageDto{
		Job:          id,
		IsRefreshing: isRefreshing,
		LastRefresh:  lastRefresh,
	}
}
