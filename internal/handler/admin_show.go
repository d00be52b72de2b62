package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/backend/internal/booking"
	"github.com/movietix/backend/internal/model"
	"github.com/movietix/backend/internal/repository"
)

// ShowAdminHandler serves the admin show scheduling endpoint.
type ShowAdminHandler struct {
	Movies  *repository.MovieRepo
	Booking *booking.Service
}

func NewShowAdminHandler(movies *repository.MovieRepo, svc *booking.Service) *ShowAdminHandler {
	return &ShowAdminHandler{Movies: movies, Booking: svc}
}

type createShowReq struct {
	MovieID  string `json:"movie_id"`
	ScreenID string `json:"screen_id"`
	ShowDate string `json:"show_date"` // YYYY-MM-DD
	ShowTime string `json:"show_time"` // HH:MM, 24h
	Price    int    `json:"price"`
}

// CreateShow schedules a show and seeds its seat inventory from the
// screen layout.  The response includes how many seats were created.
func (h *ShowAdminHandler) CreateShow(c echo.Context) error {
	var req createShowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == "" || req.ScreenID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id/screen_id required"})
	}
	if _, err := time.Parse("2006-01-02", req.ShowDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_date must be YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", req.ShowTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_time must be HH:MM"})
	}
	if req.Price < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}

	show := &model.Show{
		MovieID:  req.MovieID,
		ScreenID: req.ScreenID,
		ShowDate: req.ShowDate,
		ShowTime: req.ShowTime,
		Price:    req.Price,
	}
	if err := h.Booking.CreateShow(ctx, show); err != nil {
		switch {
		case errors.Is(err, repository.ErrScreenNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		case errors.Is(err, repository.ErrShowSeeded):
			return c.JSON(http.StatusConflict, echo.Map{"error": "show already seeded"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
		}
	}
	return c.JSON(http.StatusCreated, show)
}
