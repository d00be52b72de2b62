package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/movietix/backend/internal/model"
)

// BookingRepo provides persistence for bookings and owns the seat-sale
// transaction.  Selling seats is the one place where two requests can
// genuinely race, so the status check and the flip to sold happen
// inside a single transaction with the seat rows locked.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// CreateWithSeats atomically sells the requested seats and inserts the
// booking row.  It locks the matching show_seats rows, collects every
// requested code that is missing or not currently available, and if
// any exist rolls back and returns them (with a nil error) so the
// caller can report the conflict.  Otherwise all seats flip to sold
// via one conditional UPDATE and the booking is inserted in the same
// transaction.  Either everything is persisted or nothing is.
func (r *BookingRepo) CreateWithSeats(ctx context.Context, b *model.Booking, seatCodes []string) (unavailable []string, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(seatCodes)), ",")
	args := make([]interface{}, 0, len(seatCodes)+1)
	args = append(args, b.ShowID)
	for _, c := range seatCodes {
		args = append(args, c)
	}

	// Lock the requested rows and read their current status.
	rows, err := tx.QueryContext(ctx,
		`SELECT seat_code, status FROM show_seats WHERE show_id = ? AND seat_code IN (`+placeholders+`) FOR UPDATE`,
		args...)
	if err != nil {
		return nil, err
	}
	status := make(map[string]string, len(seatCodes))
	for rows.Next() {
		var code, st string
		if scanErr := rows.Scan(&code, &st); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		status[code] = st
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	for _, c := range seatCodes {
		if st, ok := status[c]; !ok || st != model.SeatAvailable {
			unavailable = append(unavailable, c)
		}
	}
	if len(unavailable) > 0 {
		return unavailable, nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE show_seats SET status = ? WHERE show_id = ? AND seat_code IN (`+placeholders+`) AND status = ?`,
		append(append([]interface{}{model.SeatSold, b.ShowID}, args[1:]...), model.SeatAvailable)...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n != int64(len(seatCodes)) {
		// Cannot happen while the rows are locked; abort rather than
		// persist a partial sale.
		return nil, errors.New("seat update affected unexpected row count")
	}

	const ins = `INSERT INTO bookings (id, user_id, movie_id, show_id, seats, amount, status, pdf_path, created_at)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err = tx.ExecContext(ctx, ins,
		b.ID, b.UserID, b.MovieID, b.ShowID, b.Seats, b.Amount, b.Status, b.PDFPath, b.CreatedAt.UTC()); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return nil, nil
}

// GetByID retrieves a booking by its ID.  Returns ErrBookingNotFound
// when no matching row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT id, user_id, movie_id, show_id, seats, amount, status, pdf_path, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.MovieID, &b.ShowID, &b.Seats, &b.Amount, &b.Status, &b.PDFPath, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// MarkPaid advances a booking to paid.  It is a no-op when the
// booking is already paid.  ErrBookingNotFound when absent.
func (r *BookingRepo) MarkPaid(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, model.BookingPaid, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return err
		}
	}
	return nil
}

// SetPDFPath stores the generated ticket location on a booking.
func (r *BookingRepo) SetPDFPath(ctx context.Context, id, path string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET pdf_path = ? WHERE id = ?`, path, id)
	return err
}

// BookingDetail is a booking joined with the movie and show metadata
// needed for ticket rendering and the bookings list.
type BookingDetail struct {
	model.Booking
	MovieTitle  string `json:"movie_title"`
	MoviePoster string `json:"movie_poster"`
	ShowDate    string `json:"show_date"`
	ShowTime    string `json:"show_time"`
	CinemaName  string `json:"cinema_name"`
	CinemaCity  string `json:"cinema_city"`
	ScreenName  string `json:"screen_name"`
}

const bookingDetailQuery = `SELECT b.id, b.user_id, b.movie_id, b.show_id, b.seats, b.amount, b.status, b.pdf_path, b.created_at,
       m.title, m.poster, s.show_date, s.show_time, c.name, c.city, sc.name
FROM bookings b
LEFT JOIN movies m ON m.id = b.movie_id
LEFT JOIN shows s ON s.id = b.show_id
LEFT JOIN screens sc ON sc.id = s.screen_id
LEFT JOIN cinemas c ON c.id = sc.cinema_id`

func scanBookingDetail(row interface{ Scan(...interface{}) error }, d *BookingDetail) error {
	var movieTitle, moviePoster, showDate, showTime, cinemaName, cinemaCity, screenName sql.NullString
	if err := row.Scan(&d.ID, &d.UserID, &d.MovieID, &d.ShowID, &d.Seats, &d.Amount, &d.Status, &d.PDFPath, &d.CreatedAt,
		&movieTitle, &moviePoster, &showDate, &showTime, &cinemaName, &cinemaCity, &screenName); err != nil {
		return err
	}
	d.MovieTitle = movieTitle.String
	d.MoviePoster = moviePoster.String
	d.ShowDate = showDate.String
	d.ShowTime = showTime.String
	d.CinemaName = cinemaName.String
	d.CinemaCity = cinemaCity.String
	d.ScreenName = screenName.String
	return nil
}

// GetDetail loads a booking with its movie/show/cinema context.
// ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) GetDetail(ctx context.Context, id string) (*BookingDetail, error) {
	var d BookingDetail
	err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id), &d)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns all bookings of a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
