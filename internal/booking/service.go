// Package booking holds the show-scheduling and seat-sale logic that
// sits between the HTTP handlers and the database.  The stores it
// depends on are small interfaces so the logic can be exercised
// without a live MySQL instance.
package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/movietix/backend/internal/layout"
	"github.com/movietix/backend/internal/model"
)

// ScreenStore supplies the screen geometry a show is scheduled on.
type ScreenStore interface {
	GetByID(ctx context.Context, id string) (*model.Screen, error)
}

// ShowStore persists shows together with their seeded seat inventory.
type ShowStore interface {
	CreateWithSeats(ctx context.Context, s *model.Show, seats []model.ShowSeat) error
	GetByID(ctx context.Context, id string) (*model.Show, error)
}

// SeatStore reads seat inventory snapshots.
type SeatStore interface {
	ListByShow(ctx context.Context, showID string) ([]model.ShowSeat, error)
}

// BookingStore persists bookings.  CreateWithSeats must be atomic: it
// either sells every requested seat and inserts the booking, or sells
// nothing and returns the seats that blocked the sale.
type BookingStore interface {
	CreateWithSeats(ctx context.Context, b *model.Booking, seatCodes []string) (unavailable []string, err error)
}

// Broadcaster pushes fresh seat snapshots to live viewers of a show.
type Broadcaster interface {
	Publish(ctx context.Context, showID string) error
}

// Service implements show scheduling and seat booking.
type Service struct {
	screens   ScreenStore
	shows     ShowStore
	seats     SeatStore
	bookings  BookingStore
	broadcast Broadcaster
}

// NewService wires a Service from its stores and the live broadcaster.
func NewService(screens ScreenStore, shows ShowStore, seats SeatStore, bookings BookingStore, b Broadcaster) *Service {
	return &Service{screens: screens, shows: shows, seats: seats, bookings: bookings, broadcast: b}
}

// CreateShow schedules a show on a screen and seeds its seat
// inventory from the screen's layout, all in one transaction.  Every
// seat starts available except seats the layout marks disabled, which
// are seeded sold so they can never be bought.  A single seat
// broadcast follows the commit.  Propagates the screen store's
// not-found error when the screen does not exist.
func (s *Service) CreateShow(ctx context.Context, show *model.Show) error {
	screen, err := s.screens.GetByID(ctx, show.ScreenID)
	if err != nil {
		return err
	}
	if show.ID == "" {
		show.ID = uuid.NewString()
	}

	rules := layout.ParseRules(screen.LayoutJSON)
	grid := layout.Expand(screen.Rows, screen.Cols, rules)
	seats := make([]model.ShowSeat, 0, len(grid))
	for _, seat := range grid {
		status := model.SeatAvailable
		if seat.Disabled {
			status = model.SeatSold
		}
		seats = append(seats, model.ShowSeat{ShowID: show.ID, SeatCode: seat.Code, Status: status})
	}

	if err := s.shows.CreateWithSeats(ctx, show, seats); err != nil {
		return err
	}
	// Viewers of a brand-new show are rare but possible when an id is
	// supplied by the caller; the broadcast is best-effort either way.
	_ = s.broadcast.Publish(ctx, show.ID)
	return nil
}

// Book sells the requested seats of a show to a user.  On success the
// returned booking is pending payment, its amount is the show price
// times the seat count, and a seat broadcast has gone out.  When any
// requested seat is missing or already taken, no seat is sold and the
// error is a *SeatConflictError listing the blocking seats.
func (s *Service) Book(ctx context.Context, userID, showID string, seatCodes []string) (*model.Booking, error) {
	if len(seatCodes) == 0 {
		return nil, ErrNoSeatsRequested
	}
	seen := make(map[string]bool, len(seatCodes))
	for _, c := range seatCodes {
		if seen[c] {
			return nil, ErrDuplicateSeats
		}
		seen[c] = true
	}

	show, err := s.shows.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		MovieID:   show.MovieID,
		ShowID:    show.ID,
		Seats:     strings.Join(seatCodes, ","),
		Amount:    show.Price * len(seatCodes),
		Status:    model.BookingPending,
		CreatedAt: time.Now().UTC(),
	}
	unavailable, err := s.bookings.CreateWithSeats(ctx, b, seatCodes)
	if err != nil {
		return nil, err
	}
	if len(unavailable) > 0 {
		return nil, &SeatConflictError{Seats: unavailable}
	}

	_ = s.broadcast.Publish(ctx, showID)
	return b, nil
}

// ShowSeats returns the seat inventory of a show in grid order.
// Propagates the show store's not-found error for unknown shows.
func (s *Service) ShowSeats(ctx context.Context, showID string) ([]model.ShowSeat, error) {
	if _, err := s.shows.GetByID(ctx, showID); err != nil {
		return nil, err
	}
	return s.seats.ListByShow(ctx, showID)
}
