package router

import (
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/utils/validator"
)

// PostLoginRequest POST /login リクエストボディ
type PostLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r PostLoginRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, validator.UserNameRuleRequired...),
		vd.Field(&r.Password, vd.Required),
	)
}

// Login POST /login
func (h *Handlers) Login(c echo.Context) error {
	var req PostLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Repo.GetUserByName(req.Name)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			h.L(c).Info("an api login attempt failed: unknown user", zap.String("username", req.Name))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid name or password")
		default:
			return herror.InternalServerError(err)
		}
	}

	// ユーザーのアカウント状態の確認
	if !user.IsActive() {
		h.L(c).Info("an api login attempt failed: suspended user", zap.String("username", req.Name))
		return herror.Forbidden("this account is currently suspended")
	}

	// パスワード検証
	if err := user.Authenticate(req.Password); err != nil {
		h.L(c).Info("an api login attempt failed: wrong password", zap.String("username", req.Name))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid name or password")
	}
	h.L(c).Info("an api login attempt succeeded", zap.String("username", req.Name))

	if _, err := h.SessStore.RenewSession(c, user.ID); err != nil {
		return herror.InternalServerError(err)
	}

	if redirect := c.QueryParam("redirect"); len(redirect) > 0 {
		return c.Redirect(http.StatusFound, redirect)
	}
	return c.NoContent(http.StatusNoContent)
}

// Logout POST /logout
func (h *Handlers) Logout(c echo.Context) error {
	sess, err := h.SessStore.GetSession(c)
	if err != nil {
		return herror.InternalServerError(err)
	}
	if sess != nil {
		if isTrue(c.QueryParam("all")) && sess.UserID() != uuid.Nil {
			if err := h.SessStore.RevokeSessionsByUserID(sess.UserID()); err != nil {
				return herror.InternalServerError(err)
			}
		}
		if err := h.SessStore.RevokeSession(c); err != nil {
			return herror.InternalServerError(err)
		}
		// 通知センターはセッションと共に手放す
		h.Services.NotificationManager.Release(sess.UserID())
	}

	if redirect := c.QueryParam("redirect"); len(redirect) > 0 {
		return c.Redirect(http.StatusFound, redirect)
	}
	return c.NoContent(http.StatusNoContent)
}
