package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recetario/recetario/repository"
	"github.com/recetario/recetario/router"
	"github.com/recetario/recetario/router/session"
	"github.com/recetario/recetario/service"
	"github.com/recetario/recetario/utils/gormzap"
)

// serveCommand サーバー起動コマンド
func serveCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "serve",
		Short: "Serve recetario moderation API",
		Run: func(cmd *cobra.Command, args []string) {
			// Logger
			logger := getLogger()
			defer logger.Sync()

			logger.Info(fmt.Sprintf("recetario %s (revision %s)", Version, Revision))

			// Message Hub
			hub := hub.New()

			// Database
			logger.Info("connecting database...")
			engine, err := c.getDatabase(getGormLogger(logger))
			if err != nil {
				logger.Fatal("failed to connect database", zap.Error(err))
			}
			db, err := engine.DB()
			if err != nil {
				logger.Fatal("failed to get *sql.DB", zap.Error(err))
			}
			defer db.Close()
			logger.Info("database connection was established")

			// Repository
			logger.Info("setting up repository...")
			repo, err := repository.NewGormRepository(engine, hub, logger)
			if err != nil {
				logger.Fatal("failed to initialize repository", zap.Error(err))
			}
			if init, err := repo.Sync(); err != nil {
				logger.Fatal("failed to sync repository", zap.Error(err))
			} else if init {
				logger.Info("data initialization finished")
			}
			logger.Info("repository was set up")

			// サーバー作成
			server, err := newServer(hub, engine, repo, logger)
			if err != nil {
				logger.Fatal("failed to create server", zap.Error(err))
			}

			go func() {
				if err := server.Start(fmt.Sprintf(":%d", c.Port)); err != nil {
					logger.Info("shutting down the server")
				}
			}()

			logger.Info("recetario started")
			waitSIGINT()
			logger.Info("recetario shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("abnormal shutdown", zap.Error(err))
			}
			logger.Info("recetario shutdown")
		},
	}
	return &cmd
}

// Server APIサーバー
type Server struct {
	L      *zap.Logger
	SS     *service.Services
	Router *echo.Echo
	Hub    *hub.Hub
	Repo   repository.Repository
}

func newServer(h *hub.Hub, engine *gorm.DB, repo repository.Repository, logger *zap.Logger) (*Server, error) {
	ss, err := service.NewServices(repo, engine, h, logger)
	if err != nil {
		return nil, err
	}

	sessStore := session.NewMemorySessionStore()
	e := router.Setup(h, engine, repo, ss, sessStore, logger, c.getRouterConfig())

	return &Server{
		L:      logger,
		SS:     ss,
		Router: e,
		Hub:    h,
		Repo:   repo,
	}, nil
}

// Start APIサーバーを起動します
func (s *Server) Start(address string) error {
	return s.Router.Start(address)
}

// Shutdown APIサーバーを停止します
func (s *Server) Shutdown(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := s.Router.Shutdown(ctx)
		s.L.Info("router shutdown")
		return err
	})
	eg.Go(func() error {
		s.SS.Shutdown()
		s.L.Info("services shutdown")
		return nil
	})
	err := eg.Wait()
	s.Hub.Close()
	return err
}

func getGormLogger(zl *zap.Logger) logger.Interface {
	l := gormzap.New(zl.Named("gorm"))
	if c.DevMode {
		return l.LogMode(logger.Info)
	}
	return l.LogMode(logger.Error)
}

func waitSIGINT() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}
