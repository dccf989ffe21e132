package router

import (
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/extension/herror"
	"github.com/recetario/recetario/service/rbac/permission"
	"github.com/recetario/recetario/service/rbac/role"
	"github.com/recetario/recetario/utils/validator"
)

// PostUserRequest POST /users リクエストボディ
type PostUserRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

func (r PostUserRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, validator.UserNameRuleRequired...),
		vd.Field(&r.DisplayName, vd.RuneLength(0, 64)),
		vd.Field(&r.Password, validator.PasswordRuleRequired...),
	)
}

// CreateUser POST /users
func (h *Handlers) CreateUser(c echo.Context) error {
	if !h.AllowSignUp {
		return herror.Forbidden("sign up is disabled")
	}

	var req PostUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Repo.CreateUser(repository.CreateUserArgs{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Role:        role.Member,
	})
	if err != nil {
		switch {
		case err == repository.ErrAlreadyExists:
			return herror.Conflict("name conflicts")
		case repository.IsArgError(err):
			return herror.BadRequest(err)
		default:
			return herror.InternalServerError(err)
		}
	}
	h.L(c).Info("user created", zap.String("name", user.Name), zap.Stringer("userId", user.ID))

	return c.JSON(http.StatusCreated, user)
}

// MeResponse GET /users/me レスポンス
type MeResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	DisplayName string                  `json:"displayName"`
	Role        string                  `json:"role"`
	Permissions []permission.Permission `json:"permissions"`
}

// GetMe GET /users/me
func (h *Handlers) GetMe(c echo.Context) error {
	me := getRequestUser(c)
	return c.JSON(http.StatusOK, &MeResponse{
		ID:          me.ID,
		Name:        me.Name,
		DisplayName: me.GetResponseDisplayName(),
		Role:        me.Role,
		Permissions: h.Services.RBAC.GetGrantedPermissions(me.Role),
	})
}
