package middlewares

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/router/consts"
	"github.com/recetario/recetario/service/rbac"
	"github.com/recetario/recetario/service/rbac/permission"
)

// AccessControlMiddlewareGenerator アクセスコントロールミドルウェアのジェネレーターを返します
//
// 権限検証は必ずサーバー側で行われます。UI側でボタンが隠れていることは
// 検証の根拠にしません。
func AccessControlMiddlewareGenerator(r rbac.RBAC) func(p ...permission.Permission) echo.MiddlewareFunc {
	return func(p ...permission.Permission) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				user := c.Get(consts.KeyUser).(*model.User)
				for _, v := range p {
					if !r.IsGranted(user.Role, v) {
						return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("you are not permitted to request to '%s'", c.Request().URL.Path))
					}
				}
				return next(c)
			}
		}
	}
}
