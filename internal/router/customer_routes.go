package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/movietix/backend/internal/config"
	"github.com/movietix/backend/internal/handler"
	"github.com/movietix/backend/internal/middleware"
)

// RegisterCustomer registers the booking endpoints.  All of them
// require a customer token, and the booking route additionally sits
// behind the token-bucket rate limiter so one client cannot hammer the
// seat-sale transaction.
func RegisterCustomer(e *echo.Echo, jwtSecret string, b *handler.BookingHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("customer"))

	g.POST("/book", b.Book, middleware.NewTokenBucket(rlCfg, rdb))
	g.POST("/payment", b.Pay)
	g.GET("/my/bookings", b.MyBookings)
}
