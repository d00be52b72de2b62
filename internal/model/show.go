package model

// Show represents a scheduled screening of a movie on a particular
// screen.  A show is created once and is immutable afterwards; it owns
// exactly one seat inventory seeded at creation time.  Price is a
// whole-unit integer applied per seat.
//
// Fields:
//  ID       – primary key identifier (uuid string).
//  MovieID  – movie being screened.
//  ScreenID – screen where the show takes place.
//  ShowDate – calendar date of the show (YYYY-MM-DD).
//  ShowTime – start time of the show (HH:MM).
//  Price    – per-seat ticket price in whole currency units.
type Show struct {
	ID       string `json:"id"`        // shows.id
	MovieID  string `json:"movie_id"`  // shows.movie_id
	ScreenID string `json:"screen_id"` // shows.screen_id
	ShowDate string `json:"show_date"` // shows.show_date
	ShowTime string `json:"show_time"` // shows.show_time
	Price    int    `json:"price"`     // shows.price
}
