// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/movietix/backend/internal/config"
	"github.com/movietix/backend/internal/handler"
	"github.com/movietix/backend/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// and are not part of the catalogue: the health check and the static
// asset tree (posters, banners, generated tickets).
func RegisterRoutes(e *echo.Echo, publicDir string) {
	e.GET("/healthz", handler.Health)
	e.Static("/public", publicDir)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login and admin login are open; /v1/me requires a customer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	e.POST("/v1/admin/login", a.AdminLogin)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole("customer"))
	me.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// catalogue listings sit behind the Redis response cache; the show
// detail endpoint does not, because it embeds the live seat map.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, l *handler.LiveHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := e.Group("/v1")
	cached.Use(middleware.NewRedisCache(cacheCfg, rdb))
	cached.GET("/movies", b.ListMovies)
	cached.GET("/movies/:id", b.GetMovie)
	cached.GET("/cinemas", b.ListCinemas)
	cached.GET("/screens", b.ListScreens)
	cached.GET("/banners", b.ListBanners)
	cached.GET("/shows", b.ListShows)

	// Seat data must always be fresh.
	e.GET("/v1/shows/:id", b.GetShow)
	e.GET("/v1/shows/:id/seats", b.GetShowSeats)
	e.GET("/v1/shows/:id/live", l.Live)
}
