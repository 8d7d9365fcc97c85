// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"restock/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ItemHandler *handler.ItemHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	itemHandler *handler.ItemHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		itemHandler: params.ItemHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	items := e.Group("/items")
	{
		items.POST("", r.itemHandler.CaptureItems)
		items.POST("/single", r.itemHandler.AddItem)
		items.GET("", r.itemHandler.ListItems)
		items.GET("/:id", r.itemHandler.GetItem)
		items.GET("/:id/events", r.itemHandler.GetItemEvents)
		items.POST("/:id/complete", r.itemHandler.CompleteItem)
		items.POST("/:id/cancel", r.itemHandler.CancelItem)
		items.PATCH("/:id", r.itemHandler.UpdateItem)
	}
}
