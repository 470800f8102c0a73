// Package router wires HTTP routes to handlers, grouped by audience:
// public storefront, authenticated customers, and admins.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/viaggiapp/travel-booking/internal/config"
	"github.com/viaggiapp/travel-booking/internal/handler"
	"github.com/viaggiapp/travel-booking/internal/middleware"
)

// Handlers collects the handler groups the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Booking      *handler.BookingHandler
	AdminBooking *handler.AdminBookingHandler
	AdminPackage *handler.AdminPackageHandler
}

// Register mounts every route on the Echo instance. The Redis client
// may be nil, in which case caching and rate limiting become
// pass-throughs.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Public storefront. Catalog reads are cached; capacity shown here
	// is advisory, the binding check happens inside Reserve.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/packages", h.Catalog.ListPackages, cache)
	e.GET("/v1/packages/:id", h.Catalog.GetPackage, cache)

	// Auth endpoints.
	ag := e.Group("/v1/auth")
	ag.POST("/register", h.Auth.Register)
	ag.POST("/login", h.Auth.Login)

	// Authenticated routes: any valid role.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	auth := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("CUSTOMER", "ADMIN"), limiter)
	auth.GET("/me", h.Auth.Me)
	auth.POST("/packages/:id/bookings", h.Booking.Reserve)
	auth.GET("/my-bookings", h.Booking.ListMine)
	auth.GET("/bookings/:id", h.Booking.Get)
	auth.POST("/bookings/:id/cancel", h.Booking.Cancel)

	// Admin-only overrides and catalog workflow.
	admin := e.Group("/v1/admin", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireAdmin(), limiter)
	admin.GET("/bookings", h.AdminBooking.List)
	admin.GET("/packages/:id/bookings", h.AdminBooking.ListByPackage)
	admin.PATCH("/bookings/:id/status", h.AdminBooking.UpdateStatus)
	admin.PUT("/bookings/:id/note", h.AdminBooking.SetNote)
	admin.POST("/packages", h.AdminPackage.Create)
	admin.PUT("/packages/:id", h.AdminPackage.Update)
	admin.GET("/packages/:id", h.AdminPackage.Get)
}
