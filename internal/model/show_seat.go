package model

// Seat inventory statuses.  "reserved" is a valid state kept for a
// future hold-before-pay flow; the current booking flow transitions
// seats directly from available to sold.
const (
	SeatAvailable = "available"
	SeatReserved  = "reserved"
	SeatSold      = "sold"
)

// ShowSeat is one entry of a show's seat inventory.  There is exactly
// one row per (show, seat code) pair, created when the show is
// scheduled and never added to or removed afterwards – only the
// status changes.
//
// Fields:
//  ShowID   – show this seat belongs to.
//  SeatCode – grid position, row letter plus 1-based column ("A1").
//  Status   – one of SeatAvailable, SeatReserved, SeatSold.
type ShowSeat struct {
	ShowID   string `json:"-"`         // show_seats.show_id
	SeatCode string `json:"seat_code"` // show_seats.seat_code
	Status   string `json:"status"`    // show_seats.status
}
