package repository

import (
	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
)

// CreateNotificationArgs 通知作成引数
type CreateNotificationArgs struct {
	RecipientID uuid.UUID
	ActorID     uuid.NullUUID
	Type        model.NotificationType
	Message     string
	RecipeID    uuid.NullUUID
	Metadata    model.NotificationMetadata
}

// NotificationsQuery 通知一覧取得クエリ
type NotificationsQuery struct {
	RecipientID uuid.UUID
	// Type 指定した場合、その種別の通知のみを返します
	Type model.NotificationType
	// Limit 0の場合は無制限
	Limit int
}

// NotificationRepository 通知リポジトリ
type NotificationRepository interface {
	// CreateNotification 通知を作成します
	//
	// 成功した場合、通知とnilを返します。
	// 受信者が存在しない場合、ErrNotFoundを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	CreateNotification(args CreateNotificationArgs) (*model.Notification, error)
	// GetNotification 指定したIDの通知を取得します
	//
	// 成功した場合、通知とnilを返します。
	// 存在しない場合、ErrNotFoundを返します。
	GetNotification(id uuid.UUID) (*model.Notification, error)
	// GetNotifications 指定した受信者の通知を作成日時降順で取得します
	GetNotifications(q NotificationsQuery) ([]*model.Notification, error)
	// SetNotificationRead 指定した通知を既読にします
	//
	// 冪等: 既に既読の場合もnilを返します(イベントは発行されません)。
	// 存在しない場合、ErrNotFoundを返します。
	SetNotificationRead(id uuid.UUID) error
	// SetAllNotificationsRead 指定した受信者の全未読通知を既読にし、
	// 新たに既読になった件数を返します
	SetAllNotificationsRead(recipientID uuid.UUID) (int, error)
	// CountUnreadNotifications 指定した受信者の未読通知数を返します
	CountUnreadNotifications(recipientID uuid.UUID) (int, error)
}
