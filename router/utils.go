package router

import (
	"strconv"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/recetario/recetario/model"
	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/consts"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/service/gateway"
	"github.com/recetario/recetario/service/interaction"
	"github.com/recetario/recetario/service/moderation"
)

// bindAndValidate 構造体iにFormDataまたはJsonをデシリアライズします
func bindAndValidate(c echo.Context, i interface{}) error {
	if err := c.Bind(i); err != nil {
		return err
	}
	if err := vd.Validate(i); err != nil {
		if e, ok := err.(vd.InternalError); ok {
			return herror.InternalServerError(e.InternalError())
		}
		return herror.BadRequest(err)
	}
	return nil
}

// isTrue 文字列sが"1", "t", "T", "true", "TRUE", "True"の場合にtrueを返す
func isTrue(s string) (b bool) {
	b, _ = strconv.ParseBool(s)
	return
}

// getRequestUser リクエストしてきたユーザーの情報を取得
func getRequestUser(c echo.Context) *model.User {
	return c.Get(consts.KeyUser).(*model.User)
}

// getRequestUserID リクエストしてきたユーザーUUIDを取得
func getRequestUserID(c echo.Context) uuid.UUID {
	return c.Get(consts.KeyUserID).(uuid.UUID)
}

// getParamRecipe URLの:recipeIDに対応するレシピ構造体を取得
func getParamRecipe(c echo.Context) *model.Recipe {
	return c.Get(consts.KeyParamRecipe).(*model.Recipe)
}

// getParamReport URLの:reportIDに対応する通報構造体を取得
func getParamReport(c echo.Context) *model.RecipeReport {
	return c.Get(consts.KeyParamReport).(*model.RecipeReport)
}

// getParamNotification URLの:notificationIDに対応する通知構造体を取得
func getParamNotification(c echo.Context) *model.Notification {
	return c.Get(consts.KeyParamNotification).(*model.Notification)
}

// serviceError サービス層のエラーをHTTPエラーへ変換する
func serviceError(err error) error {
	switch err {
	case nil:
		return nil
	case repository.ErrNotFound:
		return herror.NotFound()
	case repository.ErrAlreadyExists:
		return herror.Conflict()
	case repository.ErrAlreadyResolved:
		return herror.Conflict("this report has already been resolved")
	case gateway.ErrForbidden:
		return herror.Forbidden()
	case gateway.ErrUnauthenticated, interaction.ErrUnauthenticated:
		return herror.Unauthorized()
	case moderation.ErrConfirmationRequired:
		return herror.BadRequest("confirmation is required for this action")
	case moderation.ErrUnknownAction:
		return herror.BadRequest("unknown moderation action")
	}
	if repository.IsArgError(err) {
		return herror.BadRequest(err)
	}
	return herror.InternalServerError(err)
}
