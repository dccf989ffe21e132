package notification

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/sse"
)

type eventHandler func(ns *Service, ev hub.Message)

var handlerMap = map[string]eventHandler{
	event.NotificationCreated: notificationCreatedHandler,
	event.NotificationRead:    notificationReadHandler,
	event.NotificationAllRead: notificationAllReadHandler,
	event.RecipeInteracted:    recipeInteractedHandler,
}

func notificationCreatedHandler(ns *Service, ev hub.Message) {
	n := ev.Fields["notification"].(*model.Notification)
	ns.sse.Multicast(n.RecipientID, &sse.EventData{
		Type: sse.EventNotificationCreated,
		Payload: map[string]interface{}{
			"id":        n.ID,
			"type":      n.Type,
			"title":     Title(n),
			"message":   n.Message,
			"recipeId":  n.RecipeID,
			"createdAt": n.CreatedAt,
		},
	})
}

func notificationReadHandler(ns *Service, ev hub.Message) {
	ns.sse.Multicast(ev.Fields["recipient_id"].(uuid.UUID), &sse.EventData{
		Type: sse.EventNotificationRead,
		Payload: map[string]interface{}{
			"id": ev.Fields["notification_id"].(uuid.UUID),
		},
	})
}

func notificationAllReadHandler(ns *Service, ev hub.Message) {
	ns.sse.Multicast(ev.Fields["recipient_id"].(uuid.UUID), &sse.EventData{
		Type:    sse.EventNotificationAllRead,
		Payload: map[string]interface{}{},
	})
}

// recipeInteractedHandler いいね/保存をレシピ投稿者への通知行に変換する
func recipeInteractedHandler(ns *Service, ev hub.Message) {
	recipeID := ev.Fields["recipe_id"].(uuid.UUID)
	userID := ev.Fields["user_id"].(uuid.UUID)
	kind := ev.Fields["kind"].(model.InteractionKind)
	logger := ns.logger.With(zap.Stringer("recipeId", recipeID), zap.Stringer("userId", userID))

	recipe, err := ns.repo.GetRecipe(recipeID)
	if err != nil {
		logger.Warn("failed to get recipe", zap.Error(err))
		return
	}
	// 自分のレシピへの操作は通知しない
	if recipe.OwnerID == userID {
		return
	}
	actor, err := ns.repo.GetUser(userID)
	if err != nil {
		logger.Warn("failed to get user", zap.Error(err))
		return
	}

	var typ model.NotificationType
	var message string
	switch kind {
	case model.InteractionKindLike:
		typ = model.NotificationTypeLike
		message = fmt.Sprintf("A %s le gustó tu receta %s", actor.GetResponseDisplayName(), recipe.Name)
	case model.InteractionKindSave:
		typ = model.NotificationTypeSave
		message = fmt.Sprintf("%s guardó tu receta %s", actor.GetResponseDisplayName(), recipe.Name)
	default:
		return
	}

	if _, err := ns.repo.CreateNotification(repository.CreateNotificationArgs{
		RecipientID: recipe.OwnerID,
		ActorID:     uuid.NullUUID{UUID: actor.ID, Valid: true},
		Type:        typ,
		Message:     message,
		RecipeID:    uuid.NullUUID{UUID: recipe.ID, Valid: true},
		Metadata: model.NotificationMetadata{
			model.MetadataKeyRecipeName: recipe.Name,
		},
	}); err != nil {
		logger.Warn("failed to create notification", zap.Error(err))
	}
}
