// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingPaidEvent is published when a booking's payment completes.
// It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingPaidEvent struct {
	BookingID  string   `json:"booking_id"`
	UserID     string   `json:"user_id"`
	ShowID     string   `json:"show_id"`
	MovieTitle string   `json:"movie_title"`
	CinemaName string   `json:"cinema_name"`
	ScreenName string   `json:"screen_name"`
	ShowDate   string   `json:"show_date"`
	ShowTime   string   `json:"show_time"`
	Seats      []string `json:"seats"`
	Amount     int      `json:"amount"`
	PaidAt     string   `json:"paid_at"`
}
