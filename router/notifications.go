package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/service/notification"
)

// MyNotificationsResponse GET /users/me/notifications レスポンス
type MyNotificationsResponse struct {
	Items  []*notification.Item `json:"items"`
	Unread int                  `json:"unread"`
	// HasNew セッション中に未読数が増加したかどうか。初回読み込みでは立たない
	HasNew bool `json:"hasNew"`
}

// GetMyNotifications GET /users/me/notifications
func (h *Handlers) GetMyNotifications(c echo.Context) error {
	center, err := h.Services.NotificationManager.Get(getRequestUserID(c))
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, &MyNotificationsResponse{
		Items:  center.Items(),
		Unread: center.Unread(),
		HasNew: center.Badge().HasNew(),
	})
}

// ReadAllMyNotificationsResponse POST /users/me/notifications/read-all レスポンス
type ReadAllMyNotificationsResponse struct {
	ReadCount int `json:"readCount"`
	Unread    int `json:"unread"`
}

// ReadAllMyNotifications POST /users/me/notifications/read-all
func (h *Handlers) ReadAllMyNotifications(c echo.Context) error {
	center, err := h.Services.NotificationManager.Get(getRequestUserID(c))
	if err != nil {
		return herror.InternalServerError(err)
	}
	n, err := center.MarkAllRead()
	if err != nil {
		return serviceError(err)
	}
	if n > 0 {
		h.L(c).Info("notifications marked all read", zap.Int("count", n))
	}
	return c.JSON(http.StatusOK, &ReadAllMyNotificationsResponse{
		ReadCount: n,
		Unread:    center.Unread(),
	})
}

// AckMyNotifications POST /users/me/notifications/ack
//
// 通知センターを開いた時に呼び出し、新着バッジをクリアします。
func (h *Handlers) AckMyNotifications(c echo.Context) error {
	center, err := h.Services.NotificationManager.Get(getRequestUserID(c))
	if err != nil {
		return herror.InternalServerError(err)
	}
	center.Badge().AckNew()
	return c.NoContent(http.StatusNoContent)
}

// ReadNotification POST /notifications/:notificationID/read
//
// 冪等: 既読済みの通知に対しても204を返します。
func (h *Handlers) ReadNotification(c echo.Context) error {
	n := getParamNotification(c)
	if n.RecipientID != getRequestUserID(c) {
		return herror.Forbidden()
	}

	center, err := h.Services.NotificationManager.Get(n.RecipientID)
	if err != nil {
		return herror.InternalServerError(err)
	}
	if err := center.MarkRead(n.ID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// NotificationStream GET /users/me/notifications/stream
func (h *Handlers) NotificationStream(c echo.Context) error {
	// 通知センターを起動してから購読する。起動済みの場合は何もしない
	if _, err := h.Services.NotificationManager.Get(getRequestUserID(c)); err != nil {
		return herror.InternalServerError(err)
	}
	h.Services.SSE.ServeHTTP(c.Response(), c.Request())
	return nil
}
