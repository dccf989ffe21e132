package notification

import (
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/sse"
)

// Service 通知サービス
//
// ストアのイベントを購読し、通知行の作成とSSEでの配信を行います。
type Service struct {
	repo   repository.Repository
	hub    *hub.Hub
	logger *zap.Logger
	sse    *sse.Streamer
}

// NewService 通知サービスを作成して起動します
func NewService(repo repository.Repository, hub *hub.Hub, logger *zap.Logger, streamer *sse.Streamer) *Service {
	service := &Service{
		repo:   repo,
		hub:    hub,
		logger: logger.Named("notification"),
		sse:    streamer,
	}
	go func() {
		topics := make([]string, 0, len(handlerMap))
		for k := range handlerMap {
			topics = append(topics, k)
		}
		for msg := range hub.Subscribe(200, topics...).Receiver {
			h, ok := handlerMap[msg.Topic()]
			if ok {
				go h(service, msg)
			}
		}
	}()
	return service
}
