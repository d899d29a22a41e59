// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-management/internal/config"
	"github.com/iliyamo/hotel-management/internal/handler"
	"github.com/iliyamo/hotel-management/internal/middleware"
	"github.com/iliyamo/hotel-management/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Rooms    *handler.RoomHandler
	Guests   *handler.GuestHandler
	Bookings *handler.BookingHandler
	Settings *handler.SettingsHandler
	Stats    *handler.StatsHandler
}

// Register mounts all routes under /v1.
//
// Reads are public so the dashboard can render without a session; every
// mutating route requires a valid staff token.  Destructive inventory
// operations and settings writes are ADMIN only.  The rate limiter sits
// in front of everything; the response cache only wraps GET list views.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limited := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cached := middleware.Cache(config.LoadCacheConfig(), rdb)
	authed := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleStaff)
	admin := middleware.RequireRole(model.RoleAdmin)

	v1 := e.Group("/v1", limited)

	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout, authed)
	// admin-gated variant of register: the role claim set by JWTAuth is
	// what lets the handler accept role=ADMIN
	auth.POST("/users", h.Auth.Register, authed, admin)
	v1.GET("/me", h.Auth.Me, authed)

	rooms := v1.Group("/rooms")
	rooms.GET("", h.Rooms.List, cached)
	rooms.GET("/:id", h.Rooms.Get)
	rooms.POST("", h.Rooms.Create, authed, staff)
	rooms.PUT("/:id", h.Rooms.Update, authed, staff)
	rooms.PATCH("/:id/status", h.Rooms.UpdateStatus, authed, staff)
	rooms.DELETE("/:id", h.Rooms.Delete, authed, admin)

	guests := v1.Group("/guests")
	guests.GET("", h.Guests.List, cached)
	guests.GET("/search", h.Guests.Search)
	guests.GET("/:id", h.Guests.Get)
	guests.POST("", h.Guests.Create, authed, staff)
	guests.PUT("/:id", h.Guests.Update, authed, staff)
	guests.DELETE("/:id", h.Guests.Delete, authed, admin)

	bookings := v1.Group("/bookings")
	bookings.GET("", h.Bookings.List, cached)
	bookings.GET("/date-range", h.Bookings.ListByDateRange)
	bookings.GET("/:id", h.Bookings.Get)
	bookings.POST("", h.Bookings.Create, authed, staff)
	bookings.PUT("/:id", h.Bookings.Update, authed, staff)
	bookings.DELETE("/:id", h.Bookings.Cancel, authed, staff)
	bookings.POST("/:id/check-in", h.Bookings.CheckIn, authed, staff)
	bookings.POST("/:id/check-out", h.Bookings.CheckOut, authed, staff)

	settings := v1.Group("/settings")
	settings.GET("", h.Settings.Get)
	settings.GET("/notifications", h.Settings.GetNotifications)
	settings.POST("", h.Settings.Upsert, authed, admin)
	settings.POST("/notifications", h.Settings.UpsertNotifications, authed, admin)

	v1.GET("/stats", h.Stats.Overview, cached)
}
