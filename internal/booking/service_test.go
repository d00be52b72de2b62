package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/movietix/backend/internal/broadcast"
	"github.com/movietix/backend/internal/model"
	"github.com/movietix/backend/internal/repository"
)

// memStore is an in-memory stand-in for the SQL repositories.  Its
// CreateWithSeats mirrors the transactional contract: under one lock
// it checks every requested seat and either sells all of them or none.
type memStore struct {
	mu       sync.Mutex
	screens  map[string]*model.Screen
	shows    map[string]*model.Show
	seats    map[string]map[string]string // show id -> seat code -> status
	bookings map[string]*model.Booking
}

func newMemStore() *memStore {
	return &memStore{
		screens:  make(map[string]*model.Screen),
		shows:    make(map[string]*model.Show),
		seats:    make(map[string]map[string]string),
		bookings: make(map[string]*model.Booking),
	}
}

func (m *memStore) GetByID(ctx context.Context, id string) (*model.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.screens[id]
	if !ok {
		return nil, repository.ErrScreenNotFound
	}
	return s, nil
}

type showStore struct{ *memStore }

func (m showStore) CreateWithSeats(ctx context.Context, s *model.Show, seats []model.ShowSeat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows[s.ID] = s
	inv := make(map[string]string, len(seats))
	for _, seat := range seats {
		inv[seat.SeatCode] = seat.Status
	}
	m.seats[s.ID] = inv
	return nil
}

func (m showStore) GetByID(ctx context.Context, id string) (*model.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shows[id]
	if !ok {
		return nil, repository.ErrShowNotFound
	}
	return s, nil
}

type seatStore struct{ *memStore }

func (m seatStore) ListByShow(ctx context.Context, showID string) ([]model.ShowSeat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ShowSeat, 0, len(m.seats[showID]))
	for code, status := range m.seats[showID] {
		out = append(out, model.ShowSeat{ShowID: showID, SeatCode: code, Status: status})
	}
	return out, nil
}

type bookingStore struct{ *memStore }

func (m bookingStore) CreateWithSeats(ctx context.Context, b *model.Booking, seatCodes []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv := m.seats[b.ShowID]
	var unavailable []string
	for _, c := range seatCodes {
		if st, ok := inv[c]; !ok || st != model.SeatAvailable {
			unavailable = append(unavailable, c)
		}
	}
	if len(unavailable) > 0 {
		return unavailable, nil
	}
	for _, c := range seatCodes {
		inv[c] = model.SeatSold
	}
	m.bookings[b.ID] = b
	return nil, nil
}

// recordingBroadcaster remembers every publish so tests can assert
// exactly when broadcasts happen.
type recordingBroadcaster struct {
	mu    sync.Mutex
	shows []string
}

func (r *recordingBroadcaster) Publish(ctx context.Context, showID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shows = append(r.shows, showID)
	return nil
}

func (r *recordingBroadcaster) published() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.shows...)
}

func newTestService() (*Service, *memStore, *recordingBroadcaster) {
	m := newMemStore()
	b := &recordingBroadcaster{}
	svc := NewService(m, showStore{m}, seatStore{m}, bookingStore{m}, b)
	return svc, m, b
}

func addScreen(m *memStore, id string, rows, cols int, layoutJSON string) {
	m.screens[id] = &model.Screen{ID: id, CinemaID: "cin-1", Name: "Audi 1", Rows: rows, Cols: cols, LayoutJSON: layoutJSON}
}

// gridCodes lists every seat code of a rows x cols grid in row-major
// order, matching how inventories are seeded.
func gridCodes(rows, cols int) []string {
	codes := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 1; c <= cols; c++ {
			codes = append(codes, fmt.Sprintf("%c%d", 'A'+r, c))
		}
	}
	return codes
}

func TestCreateShowSeedsInventory(t *testing.T) {
	svc, m, bc := newTestService()
	addScreen(m, "scr-1", 2, 3, "")

	show := &model.Show{MovieID: "mov-1", ScreenID: "scr-1", ShowDate: "2026-09-05", ShowTime: "19:30", Price: 250}
	if err := svc.CreateShow(context.Background(), show); err != nil {
		t.Fatalf("CreateShow: %v", err)
	}
	if show.ID == "" {
		t.Fatal("CreateShow did not assign a show id")
	}

	inv := m.seats[show.ID]
	if len(inv) != 6 {
		t.Fatalf("seeded %d seats, want 6", len(inv))
	}
	for _, code := range []string{"A1", "A2", "A3", "B1", "B2", "B3"} {
		if st := inv[code]; st != model.SeatAvailable {
			t.Fatalf("seat %s seeded %q, want available", code, st)
		}
	}
	if got := bc.published(); len(got) != 1 || got[0] != show.ID {
		t.Fatalf("published %v, want exactly one broadcast for %s", got, show.ID)
	}
}

func TestCreateShowDisabledSeatsSeededSold(t *testing.T) {
	svc, m, _ := newTestService()
	addScreen(m, "scr-1", 2, 3, `{"disabledSeats":["A2","B3"]}`)

	show := &model.Show{MovieID: "mov-1", ScreenID: "scr-1", ShowDate: "2026-09-05", ShowTime: "19:30", Price: 250}
	if err := svc.CreateShow(context.Background(), show); err != nil {
		t.Fatalf("CreateShow: %v", err)
	}

	inv := m.seats[show.ID]
	for code, want := range map[string]string{"A1": model.SeatAvailable, "A2": model.SeatSold, "B3": model.SeatSold} {
		if st := inv[code]; st != want {
			t.Fatalf("seat %s seeded %q, want %q", code, st, want)
		}
	}
}

func TestCreateShowUnknownScreen(t *testing.T) {
	svc, _, bc := newTestService()
	show := &model.Show{MovieID: "mov-1", ScreenID: "nope", ShowDate: "2026-09-05", ShowTime: "19:30", Price: 250}
	if err := svc.CreateShow(context.Background(), show); !errors.Is(err, repository.ErrScreenNotFound) {
		t.Fatalf("err = %v, want ErrScreenNotFound", err)
	}
	if got := bc.published(); len(got) != 0 {
		t.Fatalf("broadcasts went out for a failed create: %v", got)
	}
}

func seedShow(t *testing.T, svc *Service, m *memStore, price int) *model.Show {
	t.Helper()
	addScreen(m, "scr-1", 2, 3, "")
	show := &model.Show{MovieID: "mov-1", ScreenID: "scr-1", ShowDate: "2026-09-05", ShowTime: "19:30", Price: price}
	if err := svc.CreateShow(context.Background(), show); err != nil {
		t.Fatalf("CreateShow: %v", err)
	}
	return show
}

func TestBookHappyPath(t *testing.T) {
	svc, m, bc := newTestService()
	show := seedShow(t, svc, m, 250)

	b, err := svc.Book(context.Background(), "user-1", show.ID, []string{"A1", "B2"})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.Seats != "A1,B2" {
		t.Fatalf("booking seats = %q, want A1,B2", b.Seats)
	}
	if b.Status != model.BookingPending {
		t.Fatalf("booking status = %q, want pending", b.Status)
	}
	if b.Amount != 500 {
		t.Fatalf("amount = %d, want 500", b.Amount)
	}
	inv := m.seats[show.ID]
	if inv["A1"] != model.SeatSold || inv["B2"] != model.SeatSold {
		t.Fatal("booked seats not marked sold")
	}
	if inv["A2"] != model.SeatAvailable {
		t.Fatal("unrelated seat changed status")
	}
	// One broadcast for the create, one for the sale.
	if got := bc.published(); len(got) != 2 {
		t.Fatalf("published %v, want 2 broadcasts", got)
	}
}

func TestBookAmountScalesWithSeatCount(t *testing.T) {
	// 5x10 screen so a single booking can claim up to 50 seats.
	for _, n := range []int{1, 5, 40} {
		svc, m, _ := newTestService()
		addScreen(m, "scr-big", 5, 10, "")
		show := &model.Show{MovieID: "mov-1", ScreenID: "scr-big", ShowDate: "2026-09-05", ShowTime: "19:30", Price: 180}
		if err := svc.CreateShow(context.Background(), show); err != nil {
			t.Fatalf("CreateShow: %v", err)
		}

		b, err := svc.Book(context.Background(), "user-1", show.ID, gridCodes(5, 10)[:n])
		if err != nil {
			t.Fatalf("Book(%d seats): %v", n, err)
		}
		if b.Amount != 180*n {
			t.Fatalf("amount for %d seats = %d, want %d", n, b.Amount, 180*n)
		}
	}
}

func TestBookConflictSellsNothing(t *testing.T) {
	svc, m, bc := newTestService()
	show := seedShow(t, svc, m, 250)

	if _, err := svc.Book(context.Background(), "user-1", show.ID, []string{"B1"}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	before := len(bc.published())

	_, err := svc.Book(context.Background(), "user-2", show.ID, []string{"A1", "B1"})
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want *SeatConflictError", err)
	}
	if len(conflict.Seats) != 1 || conflict.Seats[0] != "B1" {
		t.Fatalf("conflict seats = %v, want [B1]", conflict.Seats)
	}
	// The available half of the request must not have been sold.
	if st := m.seats[show.ID]["A1"]; st != model.SeatAvailable {
		t.Fatalf("seat A1 = %q after failed booking, want available", st)
	}
	if got := bc.published(); len(got) != before {
		t.Fatal("broadcast went out for a failed booking")
	}
}

func TestBookUnknownSeatCode(t *testing.T) {
	svc, m, _ := newTestService()
	show := seedShow(t, svc, m, 250)

	_, err := svc.Book(context.Background(), "user-1", show.ID, []string{"Z9"})
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want *SeatConflictError for unknown seat", err)
	}
	if len(conflict.Seats) != 1 || conflict.Seats[0] != "Z9" {
		t.Fatalf("conflict seats = %v, want [Z9]", conflict.Seats)
	}
}

func TestBookValidation(t *testing.T) {
	svc, m, _ := newTestService()
	show := seedShow(t, svc, m, 250)

	if _, err := svc.Book(context.Background(), "user-1", show.ID, nil); !errors.Is(err, ErrNoSeatsRequested) {
		t.Fatalf("empty request err = %v, want ErrNoSeatsRequested", err)
	}
	if _, err := svc.Book(context.Background(), "user-1", show.ID, []string{"A1", "A1"}); !errors.Is(err, ErrDuplicateSeats) {
		t.Fatalf("duplicate request err = %v, want ErrDuplicateSeats", err)
	}
	if _, err := svc.Book(context.Background(), "user-1", "nope", []string{"A1"}); !errors.Is(err, repository.ErrShowNotFound) {
		t.Fatalf("unknown show err = %v, want ErrShowNotFound", err)
	}
}

func TestBookConcurrentSameSeat(t *testing.T) {
	svc, m, _ := newTestService()
	show := seedShow(t, svc, m, 250)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Book(context.Background(), "user", show.ID, []string{"B1"})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var conflict *SeatConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(conflict.Seats, ",") != "B1" {
				t.Fatalf("conflict seats = %v, want [B1]", conflict.Seats)
			}
		}
	}
	if wins != 1 {
		t.Fatalf("%d bookings won seat B1, want exactly 1", wins)
	}
	if len(m.bookings) != 1 {
		t.Fatalf("%d bookings persisted, want 1", len(m.bookings))
	}
}

// TestBookDeliversFreshSnapshotToSubscriber wires a real hub into the
// service so the whole chain runs: sale, publish, snapshot read,
// channel delivery.
func TestBookDeliversFreshSnapshotToSubscriber(t *testing.T) {
	m := newMemStore()
	seats := seatStore{m}
	hub := broadcast.NewHub(func(ctx context.Context, showID string) (interface{}, error) {
		return seats.ListByShow(ctx, showID)
	})
	svc := NewService(m, showStore{m}, seats, bookingStore{m}, hub)

	addScreen(m, "scr-1", 2, 3, "")
	show := &model.Show{MovieID: "mov-1", ScreenID: "scr-1", ShowDate: "2026-09-05", ShowTime: "19:30", Price: 250}
	if err := svc.CreateShow(context.Background(), show); err != nil {
		t.Fatalf("CreateShow: %v", err)
	}

	updates := hub.Subscribe("conn-1", show.ID)
	if _, err := svc.Book(context.Background(), "user-1", show.ID, []string{"A1", "A2"}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	select {
	case u := <-updates:
		snap, ok := u.Snapshot.([]model.ShowSeat)
		if !ok {
			t.Fatalf("snapshot type %T, want []model.ShowSeat", u.Snapshot)
		}
		status := make(map[string]string, len(snap))
		for _, s := range snap {
			status[s.SeatCode] = s.Status
		}
		for _, code := range []string{"A1", "A2"} {
			if status[code] != model.SeatSold {
				t.Fatalf("broadcast shows %s = %q, want sold", code, status[code])
			}
		}
		for _, code := range []string{"A3", "B1", "B2", "B3"} {
			if status[code] != model.SeatAvailable {
				t.Fatalf("broadcast shows %s = %q, want available", code, status[code])
			}
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered after booking")
	}
}

func TestShowSeats(t *testing.T) {
	svc, m, _ := newTestService()
	show := seedShow(t, svc, m, 250)

	seats, err := svc.ShowSeats(context.Background(), show.ID)
	if err != nil {
		t.Fatalf("ShowSeats: %v", err)
	}
	if len(seats) != 6 {
		t.Fatalf("got %d seats, want 6", len(seats))
	}
	if _, err := svc.ShowSeats(context.Background(), "nope"); !errors.Is(err, repository.ErrShowNotFound) {
		t.Fatalf("err = %v, want ErrShowNotFound", err)
	}
}
