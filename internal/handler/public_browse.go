package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movietix/backend/internal/booking"
	"github.com/movietix/backend/internal/layout"
	"github.com/movietix/backend/internal/repository"
)

// BrowseHandler serves the unauthenticated catalogue endpoints.
type BrowseHandler struct {
	Movies  *repository.MovieRepo
	Cinemas *repository.CinemaRepo
	Screens *repository.ScreenRepo
	Shows   *repository.ShowRepo
	Booking *booking.Service
}

func NewBrowseHandler(movies *repository.MovieRepo, cinemas *repository.CinemaRepo, screens *repository.ScreenRepo, shows *repository.ShowRepo, svc *booking.Service) *BrowseHandler {
	return &BrowseHandler{Movies: movies, Cinemas: cinemas, Screens: screens, Shows: shows, Booking: svc}
}

// ListMovies returns the full catalogue.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie returns a single movie.
func (h *BrowseHandler) GetMovie(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// ListCinemas returns all cinemas.
func (h *BrowseHandler) ListCinemas(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cinemas, err := h.Cinemas.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cinemas failed"})
	}
	return c.JSON(http.StatusOK, cinemas)
}

// ListScreens returns every screen with its cinema name and city.
func (h *BrowseHandler) ListScreens(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	screens, err := h.Screens.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list screens failed"})
	}
	return c.JSON(http.StatusOK, screens)
}

// ListBanners returns the promotional banners, newest first.
func (h *BrowseHandler) ListBanners(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	banners, err := h.Movies.ListBanners(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list banners failed"})
	}
	return c.JSON(http.StatusOK, banners)
}

// ListShows returns scheduled shows, optionally filtered by
// ?movie_id=.
func (h *BrowseHandler) ListShows(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	shows, err := h.Shows.ListAll(ctx, c.QueryParam("movie_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shows failed"})
	}
	return c.JSON(http.StatusOK, shows)
}

// GetShow returns a show with its screen geometry, parsed layout rules
// and the current seat map in grid order.  This is the payload a seat
// picker renders from.
func (h *BrowseHandler) GetShow(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Shows.GetDetail(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load show failed"})
	}
	seats, err := h.Booking.ShowSeats(ctx, detail.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"show":   detail,
		"layout": layout.ParseRules(detail.LayoutJSON),
		"seats":  seats,
	})
}

// GetShowSeats returns just the seat map of a show, in grid order.
// Lighter than GetShow for clients polling between live updates.
func (h *BrowseHandler) GetShowSeats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	seats, err := h.Booking.ShowSeats(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	return c.JSON(http.StatusOK, seats)
}
