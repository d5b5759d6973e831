// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"invoicer/internal/delivery/http/middleware"
	"invoicer/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	InvoiceHandler *handler.InvoiceHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	invoiceHandler *handler.InvoiceHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		invoiceHandler: params.InvoiceHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public identity endpoints
	e.POST("/signup", r.userHandler.Signup)
	e.POST("/login", r.userHandler.Login)

	// Invoice routes require a valid bearer token
	invoiceGroup := e.Group("/invoices")
	invoiceGroup.Use(r.authMiddleware.Authenticate)
	{
		invoiceGroup.POST("", r.invoiceHandler.Create)
		invoiceGroup.GET("", r.invoiceHandler.List)
		invoiceGroup.GET("/:id", r.invoiceHandler.Get)
		invoiceGroup.PUT("/:id", r.invoiceHandler.Update)
		invoiceGroup.DELETE("/:id", r.invoiceHandler.Delete)
		invoiceGroup.GET("/:id/pdf", r.invoiceHandler.Document)
	}
}
