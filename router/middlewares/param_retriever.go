package middlewares

import (
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/consts"
	"github.com/recetario/recetario/router/extension/herror"
)

// ParamRetriever リクエストパスパラメータで指定された各種エンティティをrepositoryから取得するミドルウェア
type ParamRetriever struct {
	repo repository.Repository
}

// NewParamRetriever ParamRetrieverを生成
func NewParamRetriever(repo repository.Repository) *ParamRetriever {
	return &ParamRetriever{repo: repo}
}

func (pr *ParamRetriever) byUUID(param string, key string, f func(v uuid.UUID) (interface{}, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := uuid.FromString(c.Param(param))
			if err != nil || u == uuid.Nil {
				return herror.NotFound()
			}

			r, err := f(u)
			if err != nil {
				return pr.error(err)
			}

			c.Set(key, r)
			return next(c)
		}
	}
}

func (pr *ParamRetriever) error(err error) error {
	switch err {
	case repository.ErrNotFound:
		return herror.NotFound()
	default:
		return herror.InternalServerError(err)
	}
}

// RecipeID :recipeIDパラメータからレシピを取得します
func (pr *ParamRetriever) RecipeID() echo.MiddlewareFunc {
	return pr.byUUID(consts.ParamRecipeID, consts.KeyParamRecipe, func(v uuid.UUID) (interface{}, error) {
		return pr.repo.GetRecipe(v)
	})
}

// ReportID :reportIDパラメータから通報を取得します
func (pr *ParamRetriever) ReportID() echo.MiddlewareFunc {
	return pr.byUUID(consts.ParamReportID, consts.KeyParamReport, func(v uuid.UUID) (interface{}, error) {
		return pr.repo.GetReport(v)
	})
}

// NotificationID :notificationIDパラメータから通知を取得します
func (pr *ParamRetriever) NotificationID() echo.MiddlewareFunc {
	return pr.byUUID(consts.ParamNotificationID, consts.KeyParamNotification, func(v uuid.UUID) (interface{}, error) {
		return pr.repo.GetNotification(v)
	})
}
