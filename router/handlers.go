package router

import (
	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/middlewares"
	"github.com/recetario/recetario/router/session"
	"github.com/recetario/recetario/service"
	"github.com/recetario/recetario/service/rbac/permission"
)

// Handlers APIハンドラ
type Handlers struct {
	Repo      repository.Repository
	Hub       *hub.Hub
	SessStore session.Store
	Logger    *zap.Logger
	Services  *service.Services

	Version  string
	Revision string
	// AllowSignUp ユーザーの自己登録を許可するかどうか
	AllowSignUp bool
}

// Setup APIルーティングを行います
func (h *Handlers) Setup(e *echo.Group) {
	requires := middlewares.AccessControlMiddlewareGenerator(h.Services.RBAC)
	retrieve := middlewares.NewParamRetriever(h.Repo)
	noLogin := middlewares.NoLogin(h.SessStore, h.Repo)

	api := e.Group("/v1")
	{
		api.POST("/login", h.Login, noLogin)
		api.POST("/logout", h.Logout)
		api.POST("/users", h.CreateUser, noLogin)
	}

	authed := api.Group("", middlewares.UserAuthenticate(h.Repo, h.SessStore))
	{
		apiUsersMe := authed.Group("/users/me")
		{
			apiUsersMe.GET("", h.GetMe)
			apiNotifications := apiUsersMe.Group("/notifications")
			{
				apiNotifications.GET("", h.GetMyNotifications, requires(permission.GetMyNotifications))
				apiNotifications.POST("/read-all", h.ReadAllMyNotifications, requires(permission.EditMyNotifications))
				apiNotifications.POST("/ack", h.AckMyNotifications, requires(permission.GetMyNotifications))
				apiNotifications.GET("/stream", h.NotificationStream, requires(permission.GetMyNotifications))
			}
		}

		authed.POST("/notifications/:notificationID/read", h.ReadNotification,
			requires(permission.EditMyNotifications), retrieve.NotificationID())

		apiRecipes := authed.Group("/recipes")
		{
			apiRecipes.POST("", h.CreateRecipe, requires(permission.CreateRecipe))
			apiRecipesRID := apiRecipes.Group("/:recipeID", retrieve.RecipeID())
			{
				apiRecipesRID.GET("", h.GetRecipe, requires(permission.GetRecipe))
				apiRecipesRID.GET("/interaction", h.GetRecipeInteraction, requires(permission.GetRecipe))
				apiRecipesRID.PUT("/interaction", h.ToggleRecipeInteraction, requires(permission.InteractRecipe))
				apiRecipesRID.POST("/reports", h.CreateReport, requires(permission.CreateReport))
			}
		}

		apiReports := authed.Group("/reports")
		{
			apiReports.GET("", h.GetReports, requires(permission.GetReports))
			apiReports.GET("/actions", h.GetReportActions, requires(permission.GetReports))
			apiReportsRID := apiReports.Group("/:reportID", retrieve.ReportID())
			{
				apiReportsRID.GET("", h.GetReport, requires(permission.GetReports))
				apiReportsRID.POST("/action", h.PostReportAction, requires(permission.GetReports))
			}
		}
	}
}

// L ロガーを返します
func (h *Handlers) L(c echo.Context) *zap.Logger {
	return h.Logger.With(zap.String("requestId", c.Response().Header().Get(echo.HeaderXRequestID)))
}
