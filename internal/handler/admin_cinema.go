package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/movietix/backend/internal/model"
	"github.com/movietix/backend/internal/repository"
)

// CinemaHandler serves the admin cinema and screen endpoints.
type CinemaHandler struct {
	Cinemas *repository.CinemaRepo
	Screens *repository.ScreenRepo
}

func NewCinemaHandler(cinemas *repository.CinemaRepo, screens *repository.ScreenRepo) *CinemaHandler {
	return &CinemaHandler{Cinemas: cinemas, Screens: screens}
}

type cinemaReq struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// CreateCinema registers a new cinema.
func (h *CinemaHandler) CreateCinema(c echo.Context) error {
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	if req.Name == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/city required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cin := &model.Cinema{ID: uuid.NewString(), Name: req.Name, City: req.City, Address: req.Address}
	if err := h.Cinemas.Create(ctx, cin); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create cinema failed"})
	}
	return c.JSON(http.StatusCreated, cin)
}

// DeleteCinema removes a cinema along with its screens, shows, seat
// inventory and bookings.
func (h *CinemaHandler) DeleteCinema(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Cinemas.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete cinema failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

type screenReq struct {
	CinemaID   string `json:"cinema_id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	LayoutJSON string `json:"layout"`
}

// CreateScreen adds a screen to a cinema.  Rows and cols define the
// seat grid; layout carries the optional aisle/premium/recliner/
// disabled rules as a JSON document.
func (h *CinemaHandler) CreateScreen(c echo.Context) error {
	var req screenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.CinemaID == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema_id/name required"})
	}
	if req.Rows < 1 || req.Rows > 26 || req.Cols < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows must be 1-26 and cols positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Cinemas.GetByID(ctx, req.CinemaID); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cinema failed"})
	}

	s := &model.Screen{
		ID:         uuid.NewString(),
		CinemaID:   req.CinemaID,
		Name:       req.Name,
		Rows:       req.Rows,
		Cols:       req.Cols,
		LayoutJSON: req.LayoutJSON,
	}
	if err := h.Screens.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create screen failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// DeleteScreen removes a screen and everything scheduled on it.
func (h *CinemaHandler) DeleteScreen(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Screens.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete screen failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
