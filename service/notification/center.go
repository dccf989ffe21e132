package notification

import (
	"sync"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/service/counter"
)

// Item 通知センターの表示項目
type Item struct {
	*model.Notification
	Title string `json:"title"`
}

// Center ユーザー単位の通知センター
//
// ストアのイベントはレベルトリガとして扱い、イベントのペイロードを
// 差分適用するのではなく、受信のたびにストアから一覧を読み直します。
// 配信の重複・順序の乱れがあっても表示はストアの現在値に収束します。
type Center struct {
	userID uuid.UUID
	repo   repository.Repository
	hub    *hub.Hub
	logger *zap.Logger
	badge  *counter.Badge

	mu     sync.RWMutex
	items  []*Item
	unread int
	sub    hub.Subscription
	active bool
}

// NewCenter 指定したユーザーの通知センターを生成します
func NewCenter(userID uuid.UUID, repo repository.Repository, hub *hub.Hub, logger *zap.Logger) *Center {
	return &Center{
		userID: userID,
		repo:   repo,
		hub:    hub,
		logger: logger.Named("notification_center").With(zap.Stringer("userId", userID)),
		badge:  &counter.Badge{},
	}
}

// Activate 通知センターを起動します
//
// ストアから一覧を読み込んだ後、通知イベントの購読を開始します。
// 起動済みの場合は読み直しのみを行います。
func (c *Center) Activate() error {
	c.mu.Lock()
	if !c.active {
		c.sub = c.hub.Subscribe(8, event.NotificationCreated, event.NotificationRead, event.NotificationAllRead)
		c.active = true
		go c.listen(c.sub)
	}
	c.mu.Unlock()
	return c.Refresh()
}

// Deactivate 通知センターを停止し、購読を解除します
//
// 起動していない場合も安全に呼び出せます。多重呼び出しも可です。
func (c *Center) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.active = false
	c.hub.Unsubscribe(c.sub)
}

func (c *Center) listen(sub hub.Subscription) {
	for ev := range sub.Receiver {
		if ev.Fields["recipient_id"].(uuid.UUID) != c.userID {
			continue
		}
		// ペイロードは見ずに読み直す
		if err := c.Refresh(); err != nil {
			c.logger.Warn("failed to refresh notifications", zap.Error(err))
		}
	}
}

// Refresh ストアから通知一覧と未読数を読み直します
func (c *Center) Refresh() error {
	notifications, err := c.repo.GetNotifications(repository.NotificationsQuery{RecipientID: c.userID})
	if err != nil {
		return err
	}
	unread, err := c.repo.CountUnreadNotifications(c.userID)
	if err != nil {
		return err
	}

	items := make([]*Item, len(notifications))
	for i, n := range notifications {
		items[i] = &Item{Notification: n, Title: Title(n)}
	}

	c.mu.Lock()
	c.items = items
	c.unread = unread
	c.mu.Unlock()
	c.badge.Observe(unread)
	return nil
}

// Items 通知一覧のスナップショットを作成日時降順で返します
func (c *Center) Items() []*Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Unread 最後に読み込んだ未読数を返します
func (c *Center) Unread() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unread
}

// Badge 未読バッジを返します
func (c *Center) Badge() *counter.Badge {
	return c.badge
}

// MarkRead 指定した通知を既読にします
//
// 冪等です。既読済みの通知に対して呼んでもエラーになりません。
func (c *Center) MarkRead(notificationID uuid.UUID) error {
	if err := c.repo.SetNotificationRead(notificationID); err != nil {
		return err
	}
	return c.Refresh()
}

// MarkAllRead 全ての未読通知を既読にし、新たに既読になった件数を返します
func (c *Center) MarkAllRead() (int, error) {
	n, err := c.repo.SetAllNotificationsRead(c.userID)
	if err != nil {
		return 0, err
	}
	return n, c.Refresh()
}
