package middlewares

import (
	"github.com/labstack/echo/v4"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/router/session"
)

// NoLogin セッションが既に存在するリクエストを拒否するミドルウェア
func NoLogin(sessStore session.Store, repo repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessStore.GetSession(c)
			if err != nil {
				return herror.InternalServerError(err)
			}
			if sess != nil && sess.LoggedIn() {
				user, err := repo.GetUser(sess.UserID())
				if err != nil {
					return herror.InternalServerError(err)
				}
				if !user.IsActive() {
					return herror.Forbidden("this account is currently suspended")
				}
				return herror.BadRequest("You have already logged in. Please logout once.")
			}

			return next(c)
		}
	}
}
