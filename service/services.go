package service

import (
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/counter"
	"github.com/recetario/recetario/service/gateway"
	"github.com/recetario/recetario/service/interaction"
	"github.com/recetario/recetario/service/moderation"
	"github.com/recetario/recetario/service/notification"
	"github.com/recetario/recetario/service/rbac"
	"github.com/recetario/recetario/service/sse"
)

// Services サービスコンテナ
type Services struct {
	RBAC                   rbac.RBAC
	Gateway                gateway.Gateway
	ModerationEngine       *moderation.Engine
	SSE                    *sse.Streamer
	NotificationService    *notification.Service
	NotificationManager    *notification.Manager
	UnreadCounter          counter.UnreadNotificationCounter
	InteractionCoordinator *interaction.Coordinator
}

// NewServices サービスを全て初期化して起動します
func NewServices(repo repository.Repository, db *gorm.DB, hub *hub.Hub, logger *zap.Logger) (*Services, error) {
	r, err := rbac.New(db)
	if err != nil {
		return nil, err
	}

	unread, err := counter.NewUnreadNotificationCounter(db, hub)
	if err != nil {
		return nil, err
	}

	gw := gateway.NewGateway(repo, r, logger)
	streamer := sse.NewStreamer()

	return &Services{
		RBAC:                   r,
		Gateway:                gw,
		ModerationEngine:       moderation.NewEngine(repo, gw, logger),
		SSE:                    streamer,
		NotificationService:    notification.NewService(repo, hub, logger, streamer),
		NotificationManager:    notification.NewManager(repo, hub, logger),
		UnreadCounter:          unread,
		InteractionCoordinator: interaction.NewCoordinator(repo, logger),
	}, nil
}

// Shutdown サービスを停止します
func (ss *Services) Shutdown() {
	ss.SSE.Dispose()
	ss.NotificationManager.Dispose()
}
