package repository

import (
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
)

// CreateNotification implements NotificationRepository interface.
func (repo *GormRepository) CreateNotification(args CreateNotificationArgs) (*model.Notification, error) {
	if args.RecipientID == uuid.Nil {
		return nil, ErrNilID
	}
	if !args.Type.Valid() {
		return nil, ArgError("args.Type", "invalid notification type")
	}
	if err := vd.Validate(args.Message, vd.Required); err != nil {
		return nil, ArgError("args.Message", "Message is required")
	}
	if args.Metadata == nil {
		args.Metadata = model.NotificationMetadata{}
	}

	n := &model.Notification{
		ID:          uuid.Must(uuid.NewV4()),
		RecipientID: args.RecipientID,
		ActorID:     args.ActorID,
		Type:        args.Type,
		Message:     args.Message,
		RecipeID:    args.RecipeID,
		Metadata:    args.Metadata,
	}
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if exists, err := dbExists(tx, &model.User{ID: args.RecipientID}); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}
		return tx.Create(n).Error
	})
	if err != nil {
		return nil, err
	}

	repo.hub.Publish(hub.Message{
		Name: event.NotificationCreated,
		Fields: hub.Fields{
			"notification_id": n.ID,
			"recipient_id":    n.RecipientID,
			"notification":    n,
		},
	})
	return n, nil
}

// GetNotification implements NotificationRepository interface.
func (repo *GormRepository) GetNotification(id uuid.UUID) (*model.Notification, error) {
	if id == uuid.Nil {
		return nil, ErrNilID
	}
	n := &model.Notification{}
	if err := repo.db.Take(n, &model.Notification{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return n, nil
}

// GetNotifications implements NotificationRepository interface.
func (repo *GormRepository) GetNotifications(q NotificationsQuery) (arr []*model.Notification, err error) {
	arr = make([]*model.Notification, 0)
	if q.RecipientID == uuid.Nil {
		return arr, nil
	}
	tx := repo.db.Where("recipient_id = ?", q.RecipientID)
	if len(q.Type) > 0 {
		tx = tx.Where("type = ?", q.Type)
	}
	err = tx.Scopes(limitAndOffset(q.Limit, 0)).Order("created_at DESC").Find(&arr).Error
	return arr, err
}

// SetNotificationRead implements NotificationRepository interface.
//
// 未読行への条件付きUPDATE。既読の取り消しは存在しないため、
// 二重の既読化は成功扱いのno-opになる。
func (repo *GormRepository) SetNotificationRead(id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNilID
	}

	var (
		n       model.Notification
		changed bool
	)
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Notification{}).
			Where("id = ? AND `read` = FALSE", id).
			Update("read", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 存在しないのか既読だったのかを区別する
			return convertError(tx.Take(&n, &model.Notification{ID: id}).Error)
		}
		changed = true
		return convertError(tx.Take(&n, &model.Notification{ID: id}).Error)
	})
	if err != nil {
		return err
	}

	if changed {
		repo.hub.Publish(hub.Message{
			Name: event.NotificationRead,
			Fields: hub.Fields{
				"notification_id": id,
				"recipient_id":    n.RecipientID,
			},
		})
	}
	return nil
}

// SetAllNotificationsRead implements NotificationRepository interface.
func (repo *GormRepository) SetAllNotificationsRead(recipientID uuid.UUID) (int, error) {
	if recipientID == uuid.Nil {
		return 0, ErrNilID
	}

	result := repo.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND `read` = FALSE", recipientID).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		repo.hub.Publish(hub.Message{
			Name: event.NotificationAllRead,
			Fields: hub.Fields{
				"recipient_id":           recipientID,
				"read_notifications_num": int(result.RowsAffected),
			},
		})
	}
	return int(result.RowsAffected), nil
}

// CountUnreadNotifications implements NotificationRepository interface.
func (repo *GormRepository) CountUnreadNotifications(recipientID uuid.UUID) (int, error) {
	if recipientID == uuid.Nil {
		return 0, ErrNilID
	}
	var c int64
	err := repo.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND `read` = FALSE", recipientID).
		Count(&c).Error
	return int(c), err
}
