package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-ticketing/internal/config"
	"github.com/iliyamo/venue-ticketing/internal/handler"
	"github.com/iliyamo/venue-ticketing/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAgent registers the conversational-agent endpoints.  The webhook
// must never be cached or rate limited: the agent retries aggressively and a
// 429 would surface as a broken conversation.
func RegisterAgent(e *echo.Echo, w *handler.WebhookHandler) {
	e.POST("/webhook", w.Handle)
	e.POST("/reserve_tickets/", w.ReserveByTime)
}

// RegisterBooking registers the seat-picker endpoints.  The availability
// read goes through the cache middleware; the two mutating endpoints do not.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/ticket_booking", b.TicketsLeft, cache)
	e.POST("/ticket_booking/update", b.TicketUpdate)
	e.POST("/ticket_booking/payment", b.PaymentConfirm)
}

// RegisterAnalytics registers the read-only dashboard endpoints behind the
// response cache and the rate limiter.
func RegisterAnalytics(e *echo.Echo, a *handler.AnalyticsHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e.GET("/", a.Home, limit)
	e.GET("/earning", a.Earnings, limit, cache)
	e.GET("/tickets-analytics", a.TicketStats, limit, cache)
	e.GET("/profit", a.Profit, limit, cache)
	e.GET("/shows", a.Shows, limit, cache)
}

// RegisterAuth registers the staff authentication routes.  Unauthenticated
// operations live under /v1/auth, protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "STAFF"))
	auth.GET("/me", a.Me)
}

// RegisterShowAdmin registers the JWT-protected show management routes.
func RegisterShowAdmin(e *echo.Echo, s *handler.ShowAdminHandler, jwtSecret string) {
	g := e.Group("/v1/shows")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "STAFF"))
	g.POST("", s.Create)
	g.PUT("/:id", s.Update)
}

// CORS returns the CORS middleware applied globally.  The dashboard frontend
// and the agent console run on different origins.
func CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	})
}
