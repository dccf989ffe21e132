package middlewares

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/consts"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/router/session"
	"github.com/recetario/recetario/service/sse"
)

// UserAuthenticate リクエスト認証ミドルウェア
func UserAuthenticate(repo repository.Repository, sessStore session.Store) echo.MiddlewareFunc {
	var sfUser singleflight.Group

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessStore.GetSession(c)
			if err != nil {
				return herror.InternalServerError(err)
			}
			if sess == nil || !sess.LoggedIn() {
				return herror.Unauthorized("You are not logged in")
			}
			uid := sess.UserID()

			// ユーザー取得
			uI, err, _ := sfUser.Do(uid.String(), func() (interface{}, error) { return repo.GetUser(uid) })
			if err != nil {
				return herror.InternalServerError(err)
			}
			user := uI.(*model.User)

			// ユーザーアカウント状態を確認
			if !user.IsActive() {
				return herror.Forbidden("this account is currently suspended")
			}

			c.Set(consts.KeyUser, user)
			c.Set(consts.KeyUserID, user.ID)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), sse.CtxUserIDKey, user.ID))) // SSEストリーマーで使う
			return next(c)
		}
	}
}

// GetRequestUserID 認証済みリクエストのユーザーUUIDを返します
func GetRequestUserID(c echo.Context) uuid.UUID {
	return c.Get(consts.KeyUserID).(uuid.UUID)
}
