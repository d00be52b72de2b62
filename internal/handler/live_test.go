package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"github.com/movietix/backend/internal/booking"
	"github.com/movietix/backend/internal/broadcast"
	"github.com/movietix/backend/internal/model"
	"github.com/movietix/backend/internal/repository"
)

// liveFixture backs the live-feed tests with a single show and its
// seat inventory, guarded by one lock like the SQL layer's
// transaction would be.
type liveFixture struct {
	mu    sync.Mutex
	show  *model.Show
	seats map[string]string
}

type fixtureShows struct{ *liveFixture }

func (f fixtureShows) CreateWithSeats(ctx context.Context, s *model.Show, seats []model.ShowSeat) error {
	return nil
}

func (f fixtureShows) GetByID(ctx context.Context, id string) (*model.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.show == nil || f.show.ID != id {
		return nil, repository.ErrShowNotFound
	}
	return f.show, nil
}

type fixtureSeats struct{ *liveFixture }

func (f fixtureSeats) ListByShow(ctx context.Context, showID string) ([]model.ShowSeat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ShowSeat, 0, len(f.seats))
	for code, status := range f.seats {
		out = append(out, model.ShowSeat{ShowID: showID, SeatCode: code, Status: status})
	}
	return out, nil
}

type fixtureBookings struct{ *liveFixture }

func (f fixtureBookings) CreateWithSeats(ctx context.Context, b *model.Booking, seatCodes []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var unavailable []string
	for _, c := range seatCodes {
		if st, ok := f.seats[c]; !ok || st != model.SeatAvailable {
			unavailable = append(unavailable, c)
		}
	}
	if len(unavailable) > 0 {
		return unavailable, nil
	}
	for _, c := range seatCodes {
		f.seats[c] = model.SeatSold
	}
	return nil, nil
}

type liveTestFrame struct {
	ShowID string           `json:"show_id"`
	Seats  []model.ShowSeat `json:"seats"`
}

func seatStatuses(frame liveTestFrame) map[string]string {
	m := make(map[string]string, len(frame.Seats))
	for _, s := range frame.Seats {
		m[s.SeatCode] = s.Status
	}
	return m
}

func TestLiveStreamsSnapshotsOverWebSocket(t *testing.T) {
	fx := &liveFixture{
		show:  &model.Show{ID: "show-1", MovieID: "mov-1", ScreenID: "scr-1", Price: 250},
		seats: map[string]string{"A1": model.SeatAvailable, "A2": model.SeatAvailable, "B1": model.SeatAvailable},
	}
	seats := fixtureSeats{fx}
	hub := broadcast.NewHub(func(ctx context.Context, showID string) (interface{}, error) {
		return seats.ListByShow(ctx, showID)
	})
	svc := booking.NewService(nil, fixtureShows{fx}, seats, fixtureBookings{fx}, hub)

	e := echo.New()
	e.GET("/v1/shows/:id/live", NewLiveHandler(hub, svc).Live)
	srv := httptest.NewServer(e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/shows/show-1/live"
	ws, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	_ = ws.SetDeadline(time.Now().Add(5 * time.Second))

	// The first frame is sent after the subscription is registered, so
	// everything sold from here on must reach this client.
	var first liveTestFrame
	if err := websocket.JSON.Receive(ws, &first); err != nil {
		t.Fatalf("receive initial frame: %v", err)
	}
	got := seatStatuses(first)
	if len(got) != 3 {
		t.Fatalf("initial frame has %d seats, want 3", len(got))
	}
	for code, st := range got {
		if st != model.SeatAvailable {
			t.Fatalf("initial frame shows %s = %q, want available", code, st)
		}
	}

	if _, err := svc.Book(context.Background(), "user-1", "show-1", []string{"A1"}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	var second liveTestFrame
	if err := websocket.JSON.Receive(ws, &second); err != nil {
		t.Fatalf("receive update frame: %v", err)
	}
	got = seatStatuses(second)
	if got["A1"] != model.SeatSold {
		t.Fatalf("update frame shows A1 = %q, want sold", got["A1"])
	}
	if got["A2"] != model.SeatAvailable || got["B1"] != model.SeatAvailable {
		t.Fatalf("update frame sold more than A1: %v", got)
	}
}

func TestLiveUnknownShowRejectsUpgrade(t *testing.T) {
	fx := &liveFixture{seats: map[string]string{}}
	seats := fixtureSeats{fx}
	hub := broadcast.NewHub(func(ctx context.Context, showID string) (interface{}, error) {
		return seats.ListByShow(ctx, showID)
	})
	svc := booking.NewService(nil, fixtureShows{fx}, seats, fixtureBookings{fx}, hub)

	e := echo.New()
	e.GET("/v1/shows/:id/live", NewLiveHandler(hub, svc).Live)
	srv := httptest.NewServer(e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/shows/nope/live"
	if _, err := websocket.Dial(wsURL, "", srv.URL); err == nil {
		t.Fatal("dial succeeded for a show that does not exist")
	}
}
