package counter

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"github.com/recetario/recetario/event"
	"github.com/recetario/recetario/model"
)

var unreadNotificationsCounter = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "recetario",
	Name:      "unread_notifications",
})

// UnreadNotificationCounter ユーザー別未読通知数カウンタ
//
// ストアのイベントを購読して増減するキャッシュであり、正確な値が
// 必要な場面ではストアの未読数を読み直すこと。
type UnreadNotificationCounter interface {
	// Get 指定したユーザーの未読通知数を返します
	Get(userID uuid.UUID) int
}

type unreadNotificationCounterImpl struct {
	counts map[uuid.UUID]int
	sync.RWMutex
}

// NewUnreadNotificationCounter ユーザー別未読通知数カウンタを生成します
func NewUnreadNotificationCounter(db *gorm.DB, hub *hub.Hub) (UnreadNotificationCounter, error) {
	counter := &unreadNotificationCounterImpl{counts: map[uuid.UUID]int{}}

	var rows []struct {
		RecipientID uuid.UUID
		Num         int
	}
	if err := db.
		Model(&model.Notification{}).
		Select("recipient_id", "COUNT(id) AS num").
		Where("`read` = FALSE").
		Group("recipient_id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load unread notifications count: %w", err)
	}
	total := 0
	for _, row := range rows {
		counter.counts[row.RecipientID] = row.Num
		total += row.Num
	}
	unreadNotificationsCounter.Add(float64(total))

	go func() {
		for e := range hub.Subscribe(8, event.NotificationCreated, event.NotificationRead, event.NotificationAllRead).Receiver {
			recipientID := e.Fields["recipient_id"].(uuid.UUID)
			switch e.Topic() {
			case event.NotificationCreated:
				counter.add(recipientID, 1)
			case event.NotificationRead:
				counter.add(recipientID, -1)
			case event.NotificationAllRead:
				counter.add(recipientID, -e.Fields["read_notifications_num"].(int))
			}
		}
	}()
	return counter, nil
}

func (c *unreadNotificationCounterImpl) Get(userID uuid.UUID) int {
	c.RLock()
	defer c.RUnlock()
	return c.counts[userID]
}

func (c *unreadNotificationCounterImpl) add(userID uuid.UUID, delta int) {
	c.Lock()
	n := c.counts[userID] + delta
	if n < 0 {
		n = 0
		delta = -c.counts[userID]
	}
	if n == 0 {
		delete(c.counts, userID)
	} else {
		c.counts[userID] = n
	}
	c.Unlock()
	unreadNotificationsCounter.Add(float64(delta))
}
