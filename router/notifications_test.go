package router

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/session"
)

func TestHandlers_GetMyNotifications(t *testing.T) {
	t.Parallel()
	repo, server := setup(t, common)

	t.Run("empty on first load", func(t *testing.T) {
		t.Parallel()
		user := Member(t, repo)
		e := R(t, server)
		obj := e.GET("/api/v1/users/me/notifications").
			WithCookie(session.CookieName, S(t, common, user.ID)).
			Expect().
			Status(http.StatusOK).
			JSON().
			Object()
		obj.Value("items").Array().IsEmpty()
		obj.Value("unread").Number().IsEqual(0)
		obj.Value("hasNew").Boolean().IsFalse()
	})

	t.Run("first load does not raise the badge", func(t *testing.T) {
		t.Parallel()
		user := Member(t, repo)
		for i := 0; i < 2; i++ {
			_, err := repo.CreateNotification(repository.CreateNotificationArgs{
				RecipientID: user.ID,
				Type:        model.NotificationTypeComment,
				Message:     "Nuevo comentario",
			})
			require.NoError(t, err)
		}

		e := R(t, server)
		obj := e.GET("/api/v1/users/me/notifications").
			WithCookie(session.CookieName, S(t, common, user.ID)).
			Expect().
			Status(http.StatusOK).
			JSON().
			Object()
		obj.Value("items").Array().Length().IsEqual(2)
		obj.Value("unread").Number().IsEqual(2)
		// 未読が残っていてもセッション開始直後は新着扱いにしない
		obj.Value("hasNew").Boolean().IsFalse()
		obj.Value("items").Array().Value(0).Object().Value("title").String().IsEqual("Nuevo comentario")
	})

	t.Run("new notification raises the badge", func(t *testing.T) {
		t.Parallel()
		user := Member(t, repo)
		token := S(t, common, user.ID)
		e := R(t, server)

		// 通知センターを起動
		e.GET("/api/v1/users/me/notifications").
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusOK)

		_, err := repo.CreateNotification(repository.CreateNotificationArgs{
			RecipientID: user.ID,
			Type:        model.NotificationTypeLike,
			Message:     "Nuevo me gusta",
		})
		require.NoError(t, err)

		// センターの読み直しはイベント駆動で非同期
		center, err := containers[common].NotificationManager.Get(user.ID)
		require.NoError(t, err)
		require.Eventually(t, func() bool { return center.Unread() == 1 }, 5*time.Second, 10*time.Millisecond)

		obj := e.GET("/api/v1/users/me/notifications").
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusOK).
			JSON().
			Object()
		obj.Value("unread").Number().IsEqual(1)
		obj.Value("hasNew").Boolean().IsTrue()

		// 通知センターを開いたらバッジをクリアする
		e.POST("/api/v1/users/me/notifications/ack").
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusNoContent)
		e.GET("/api/v1/users/me/notifications").
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusOK).
			JSON().
			Object().
			Value("hasNew").Boolean().IsFalse()
	})
}

func TestHandlers_ReadAllMyNotifications(t *testing.T) {
	t.Parallel()
	repo, server := setup(t, common)
	user := Member(t, repo)
	for i := 0; i < 3; i++ {
		_, err := repo.CreateNotification(repository.CreateNotificationArgs{
			RecipientID: user.ID,
			Type:        model.NotificationTypeSave,
			Message:     "Receta guardada",
		})
		require.NoError(t, err)
	}
	token := S(t, common, user.ID)
	e := R(t, server)

	obj := e.POST("/api/v1/users/me/notifications/read-all").
		WithCookie(session.CookieName, token).
		Expect().
		Status(http.StatusOK).
		JSON().
		Object()
	obj.Value("readCount").Number().IsEqual(3)
	obj.Value("unread").Number().IsEqual(0)

	// 冪等: 二度目は何も既読化しない
	obj = e.POST("/api/v1/users/me/notifications/read-all").
		WithCookie(session.CookieName, token).
		Expect().
		Status(http.StatusOK).
		JSON().
		Object()
	obj.Value("readCount").Number().IsEqual(0)
}

func TestHandlers_ReadNotification(t *testing.T) {
	t.Parallel()
	repo, server := setup(t, common)
	user := Member(t, repo)
	other := Member(t, repo)
	n, err := repo.CreateNotification(repository.CreateNotificationArgs{
		RecipientID: user.ID,
		Type:        model.NotificationTypeRating,
		Message:     "Nueva valoración",
	})
	require.NoError(t, err)

	t.Run("success and idempotent", func(t *testing.T) {
		token := S(t, common, user.ID)
		e := R(t, server)
		e.POST("/api/v1/notifications/{id}/read", n.ID).
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusNoContent)
		e.POST("/api/v1/notifications/{id}/read", n.ID).
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusNoContent)

		got, err := repo.GetNotification(n.ID)
		require.NoError(t, err)
		require.True(t, got.Read)
	})

	t.Run("other user's notification is forbidden", func(t *testing.T) {
		e := R(t, server)
		e.POST("/api/v1/notifications/{id}/read", n.ID).
			WithCookie(session.CookieName, S(t, common, other.ID)).
			Expect().
			Status(http.StatusForbidden)
	})
}
