package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"identity/cmd/fx/config_fx"
	"identity/cmd/fx/controllers_fx"
	"identity/cmd/fx/db_fx"
	"identity/cmd/fx/identity_fx"
	"identity/cmd/fx/logger_fx"
	"identity/cmd/fx/memcache_fx"
	"identity/cmd/fx/tracing_fx"
	"identity/internal/api"
	"identity/internal/api/controllers"
	"identity/internal/config"
	"identity/internal/services"
	"identity/pkg/metrics"
	"identity/pkg/middleware"
	"identity/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		tracing_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		identity_fx.Module,
		controllers_fx.Module,

		fx.Invoke(RegisterMetrics),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func RegisterMetrics() error {
	return metrics.Register(prometheus.DefaultRegisterer)
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *zap.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting HTTP server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg config.Config,
	logger *zap.Logger,
	codec *utils.TokenCodec,
	authorizer services.RoleAuthorizer,
	authController *controllers.AuthController,
	userController *controllers.UserController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(api.RouterDeps{
		Logger:         logger.Named("http"),
		Verifier:       codec,
		Roles:          authorizer,
		LoginLimiter:   middleware.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst),
		StaticDir:      cfg.PublicDir,
		AuthController: authController,
		UserController: userController,
	})
}
