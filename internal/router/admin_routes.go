package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movietix/backend/internal/handler"
	"github.com/movietix/backend/internal/middleware"
)

// RegisterAdmin registers the admin-only management endpoints.  Every
// route requires a valid JWT carrying the admin role.
func RegisterAdmin(e *echo.Echo, jwtSecret string, cinemas *handler.CinemaHandler, movies *handler.MovieHandler, shows *handler.ShowAdminHandler) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("admin"))

	g.POST("/cinemas", cinemas.CreateCinema)
	g.DELETE("/cinemas/:id", cinemas.DeleteCinema)
	g.POST("/screens", cinemas.CreateScreen)
	g.DELETE("/screens/:id", cinemas.DeleteScreen)

	g.POST("/movies", movies.CreateMovie)
	g.DELETE("/movies/:id", movies.DeleteMovie)
	g.POST("/banners", movies.CreateBanner)
	g.DELETE("/banners/:id", movies.DeleteBanner)

	g.POST("/shows", shows.CreateShow)
}
