package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router/consts"
	"github.com/recetario/recetario/router/extension"
	"github.com/recetario/recetario/router/middlewares"
	"github.com/recetario/recetario/router/session"
	"github.com/recetario/recetario/service"
)

// Setup APIサーバーをセットアップします
func Setup(hub *hub.Hub, db *gorm.DB, repo repository.Repository, ss *service.Services, sessStore session.Store, logger *zap.Logger, config *Config) *echo.Echo {
	e := newEcho(logger.Named("router"), config)

	api := e.Group("/api")
	api.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	api.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, http.StatusText(http.StatusOK)) })

	h := &Handlers{
		Repo:        repo,
		Hub:         hub,
		SessStore:   sessStore,
		Logger:      logger.Named("router"),
		Services:    ss,
		Version:     config.Version,
		Revision:    config.Revision,
		AllowSignUp: config.AllowSignUp,
	}
	h.Setup(api)

	return e
}

func newEcho(logger *zap.Logger, config *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = extension.ErrorHandler(logger)

	// ミドルウェア設定
	e.Use(middlewares.ServerVersion(config.Version))
	e.Use(middlewares.RequestID())
	if config.AccessLogging {
		e.Use(middlewares.AccessLogging(logger.Named("access_log"), config.Development))
	}
	e.Use(middlewares.Recovery(logger))
	if config.Gzipped {
		e.Use(middleware.Gzip())
	}
	e.Use(extension.Wrap())
	e.Use(middlewares.RequestCounter())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		ExposeHeaders: []string{consts.HeaderVersion, echo.HeaderXRequestID},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:        3600,
	}))

	return e
}
