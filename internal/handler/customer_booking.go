package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietix/backend/internal/booking"
	"github.com/movietix/backend/internal/model"
	"github.com/movietix/backend/internal/queue"
	"github.com/movietix/backend/internal/repository"
	"github.com/movietix/backend/internal/ticket"
)

// BookingHandler serves the customer booking and payment endpoints.
type BookingHandler struct {
	Booking  *booking.Service
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Tickets  *ticket.Generator
}

func NewBookingHandler(svc *booking.Service, bookings *repository.BookingRepo, users *repository.UserRepo, tickets *ticket.Generator) *BookingHandler {
	return &BookingHandler{Booking: svc, Bookings: bookings, Users: users, Tickets: tickets}
}

type bookReq struct {
	ShowID string   `json:"show_id"`
	Seats  []string `json:"seats"`
}

// Book sells the requested seats to the caller.  A 409 response lists
// the seats that were already taken; in that case nothing was sold.
func (h *BookingHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ShowID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Booking.Book(ctx, callerID(c), req.ShowID, req.Seats)
	if err != nil {
		var conflict *booking.SeatConflictError
		switch {
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "seats_unavailable",
				"seats": conflict.Seats,
			})
		case errors.Is(err, booking.ErrNoSeatsRequested), errors.Is(err, booking.ErrDuplicateSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrShowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}
	return c.JSON(http.StatusCreated, b)
}

type payReq struct {
	BookingID string `json:"booking_id"`
}

// Pay completes the mock payment for a pending booking, renders the
// PDF ticket and publishes the paid event.  Paying twice is idempotent
// and returns the existing ticket.
func (h *BookingHandler) Pay(c echo.Context) error {
	var req payReq
	if err := c.Bind(&req); err != nil || req.BookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Bookings.GetDetail(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if d.UserID != callerID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}
	if d.Status == model.BookingPaid {
		return c.JSON(http.StatusOK, echo.Map{"status": d.Status, "pdf_path": d.PDFPath})
	}

	userName := ""
	if u, err := h.Users.GetByID(ctx, d.UserID); err == nil {
		userName = u.Name
	}

	pdfPath, err := h.Tickets.Generate(ticket.Data{
		BookingID:  d.ID,
		MovieTitle: d.MovieTitle,
		CinemaName: d.CinemaName,
		CinemaCity: d.CinemaCity,
		ScreenName: d.ScreenName,
		ShowDate:   d.ShowDate,
		ShowTime:   d.ShowTime,
		Seats:      d.Seats,
		Amount:     d.Amount,
		UserName:   userName,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket generation failed"})
	}

	if err := h.Bookings.MarkPaid(ctx, d.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	if err := h.Bookings.SetPDFPath(ctx, d.ID, pdfPath); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save ticket failed"})
	}

	ev := queue.BookingPaidEvent{
		BookingID:  d.ID,
		UserID:     d.UserID,
		ShowID:     d.ShowID,
		MovieTitle: d.MovieTitle,
		CinemaName: d.CinemaName,
		ScreenName: d.ScreenName,
		ShowDate:   d.ShowDate,
		ShowTime:   d.ShowTime,
		Seats:      strings.Split(d.Seats, ","),
		Amount:     d.Amount,
		PaidAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue.PublishBookingPaid(ctx, ev); err != nil {
			log.Printf("booking %s: publish paid event: %v", ev.BookingID, err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{"status": model.BookingPaid, "pdf_path": pdfPath})
}

// MyBookings lists the caller's bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, callerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, list)
}
