// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"campus/internal/delivery/http/middleware"
	"campus/internal/delivery/http/router/handler"
	"campus/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The authentication gate runs on every route; it resolves a principal when
// it can and otherwise lets the request through anonymously. The guards on
// each group decide what anonymous requests may reach.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authenticate)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.RequirePrincipal)
	}

	// Administrative account management
	accountGroup := e.Group("/accounts")
	accountGroup.Use(r.authMiddleware.RequireAdministrative)
	{
		accountGroup.POST("", r.accountHandler.Register)
		accountGroup.POST("/:id/activate", r.accountHandler.Activate)
		accountGroup.POST("/:id/unblock", r.accountHandler.Unblock)
		accountGroup.POST("/:id/entity", r.accountHandler.LinkEntity)
		accountGroup.PUT("/:id/password", r.accountHandler.ChangePassword)

		// Permanent blocks stay admin-only even among administrative roles.
		accountGroup.POST("/:id/block", r.accountHandler.Block, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}
}
