package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"identity/internal/api/controllers"
	"identity/internal/models/db_models"
	"identity/pkg/middleware"
)

type RouterDeps struct {
	Logger         *zap.Logger
	Verifier       middleware.TokenVerifier
	Roles          middleware.RoleChecker
	LoginLimiter   *middleware.RateLimiter
	StaticDir      string
	AuthController *controllers.AuthController
	UserController *controllers.UserController
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(deps.Logger))

	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}

	requireToken := middleware.JWTAuthMiddleware(deps.Verifier)
	superadminOnly := middleware.RoleMiddleware(deps.Roles, db_models.RoleSuperAdmin)

	authGroup := r.Group("/api/auth")
	authGroup.GET("/health", deps.AuthController.HealthCheck)
	authGroup.POST("/authorize", deps.AuthController.Authorize)
	authGroup.POST("/admin/register", requireToken, superadminOnly, deps.AuthController.RegisterAdmin)
	if deps.LoginLimiter != nil {
		authGroup.POST("/admin/login", deps.LoginLimiter.Middleware(), deps.AuthController.LoginAdmin)
	} else {
		authGroup.POST("/admin/login", deps.AuthController.LoginAdmin)
	}
	authGroup.GET("/me", requireToken, deps.AuthController.Me)

	usersGroup := r.Group("/api/users", requireToken, superadminOnly)
	usersGroup.GET("", deps.UserController.ListUsers)
	usersGroup.GET("/:id", deps.UserController.GetUser)
	usersGroup.DELETE("/:id", deps.UserController.DeleteUser)
}
