package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"github.com/movietix/backend/internal/booking"
	"github.com/movietix/backend/internal/broadcast"
	"github.com/movietix/backend/internal/repository"
)

// LiveHandler serves the per-show seat map WebSocket.  Each connection
// watches one show; every time a seat changes hands the client
// receives the full seat map again.
type LiveHandler struct {
	Hub     *broadcast.Hub
	Booking *booking.Service
}

func NewLiveHandler(hub *broadcast.Hub, svc *booking.Service) *LiveHandler {
	return &LiveHandler{Hub: hub, Booking: svc}
}

type seatFrame struct {
	ShowID string      `json:"show_id"`
	Seats  interface{} `json:"seats"`
}

// Live upgrades the request and streams seat snapshots for the show in
// the path.  The first frame is the current seat map; subsequent
// frames arrive whenever a booking or scheduling change touches the
// show.
func (h *LiveHandler) Live(c echo.Context) error {
	showID := c.Param("id")

	ctx, cancel := reqCtx(c)
	_, err := h.Booking.ShowSeats(ctx, showID)
	cancel()
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}

	websocket.Handler(func(ws *websocket.Conn) {
		defer ws.Close()

		connID := uuid.NewString()
		updates := h.Hub.Subscribe(connID, showID)
		defer h.Hub.Unsubscribe(connID)

		// Snapshot only after subscribing: a sale landing in between
		// shows up either in this frame or as a buffered update, never
		// in a gap between the two.
		sctx, scancel := reqCtx(c)
		seats, err := h.Booking.ShowSeats(sctx, showID)
		scancel()
		if err != nil {
			return
		}
		if err := websocket.JSON.Send(ws, seatFrame{ShowID: showID, Seats: seats}); err != nil {
			return
		}

		// Reader drains client frames and unblocks the writer loop by
		// unsubscribing when the peer goes away.
		go func() {
			var discard string
			for {
				if err := websocket.Message.Receive(ws, &discard); err != nil {
					h.Hub.Unsubscribe(connID)
					return
				}
			}
		}()

		for u := range updates {
			if err := websocket.JSON.Send(ws, seatFrame{ShowID: u.ShowID, Seats: u.Snapshot}); err != nil {
				return
			}
		}
	}).ServeHTTP(c.Response(), c.Request())
	return nil
}
