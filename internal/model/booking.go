package model

import "time"

// Booking statuses.
const (
	BookingPending = "pending"
	BookingPaid    = "paid"
	BookingFailed  = "failed"
)

// Booking records a user's claim on a set of seats for a show.  The
// seat list is historical – the authoritative seat state lives in the
// show's seat inventory.  Seats are stored as an ordered comma-joined
// string exactly as submitted.
//
// Fields:
//  ID        – primary key identifier (uuid string).
//  UserID    – user who made the booking.
//  MovieID   – movie of the booked show (denormalized for listings).
//  ShowID    – show being booked.
//  Seats     – ordered comma-joined seat codes ("A1,A2").
//  Amount    – show price multiplied by the number of seats.
//  Status    – one of BookingPending, BookingPaid, BookingFailed.
//  PDFPath   – public path of the generated ticket artifact.
//  CreatedAt – creation timestamp (UTC).
type Booking struct {
	ID        string    `json:"id"`         // bookings.id
	UserID    string    `json:"user_id"`    // bookings.user_id
	MovieID   string    `json:"movie_id"`   // bookings.movie_id
	ShowID    string    `json:"show_id"`    // bookings.show_id
	Seats     string    `json:"seats"`      // bookings.seats
	Amount    int       `json:"amount"`     // bookings.amount
	Status    string    `json:"status"`     // bookings.status
	PDFPath   string    `json:"pdf_path"`   // bookings.pdf_path
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
}
