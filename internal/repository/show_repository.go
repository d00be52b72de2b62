package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/backend/internal/model"
)

// ShowRepo manages persistence for shows.  A show and its seat
// inventory are created atomically: CreateWithSeats runs both inserts
// in one transaction so a show can never exist without its seats.
type ShowRepo struct {
	db    *sql.DB
	seats *ShowSeatRepo
}

// NewShowRepo constructs a ShowRepo.  The seat repo is used for
// seeding inside the creation transaction.
func NewShowRepo(db *sql.DB, seats *ShowSeatRepo) *ShowRepo {
	return &ShowRepo{db: db, seats: seats}
}

// CreateWithSeats inserts the show row and seeds its seat inventory in
// a single transaction.  On any failure nothing is persisted.
func (r *ShowRepo) CreateWithSeats(ctx context.Context, s *model.Show, seats []model.ShowSeat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const q = `INSERT INTO shows (id, movie_id, screen_id, show_date, show_time, price) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, s.ID, s.MovieID, s.ScreenID, s.ShowDate, s.ShowTime, s.Price); err != nil {
		return err
	}
	if err := r.seats.SeedTx(ctx, tx, s.ID, seats); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id string) (*model.Show, error) {
	const q = `SELECT id, movie_id, screen_id, show_date, show_time, price FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.ScreenID, &s.ShowDate, &s.ShowTime, &s.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ShowListing is a show joined with its movie, screen and cinema names
// for public listings.
type ShowListing struct {
	model.Show
	MovieTitle string `json:"movie_title"`
	CinemaName string `json:"cinema_name"`
	CinemaCity string `json:"cinema_city"`
	ScreenName string `json:"screen_name"`
}

// ListAll returns shows ordered by date then time, optionally filtered
// by movie.  Pass an empty movieID for no filter.
func (r *ShowRepo) ListAll(ctx context.Context, movieID string) ([]ShowListing, error) {
	const q = `SELECT s.id, s.movie_id, s.screen_id, s.show_date, s.show_time, s.price,
	                  m.title, c.name, c.city, sc.name
	           FROM shows s
	           LEFT JOIN movies m ON m.id = s.movie_id
	           LEFT JOIN screens sc ON sc.id = s.screen_id
	           LEFT JOIN cinemas c ON c.id = sc.cinema_id
	           WHERE (? = '' OR s.movie_id = ?)
	           ORDER BY s.show_date, s.show_time`
	rows, err := r.db.QueryContext(ctx, q, movieID, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]ShowListing, 0)
	for rows.Next() {
		var l ShowListing
		var movieTitle, cinemaName, cinemaCity, screenName sql.NullString
		if err := rows.Scan(&l.ID, &l.MovieID, &l.ScreenID, &l.ShowDate, &l.ShowTime, &l.Price,
			&movieTitle, &cinemaName, &cinemaCity, &screenName); err != nil {
			return nil, err
		}
		l.MovieTitle = movieTitle.String
		l.CinemaName = cinemaName.String
		l.CinemaCity = cinemaCity.String
		l.ScreenName = screenName.String
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ShowDetail is the full show page payload: the show, its movie and
// venue names, and the screen's grid dimensions and layout rules so
// the client can render the seat map.
type ShowDetail struct {
	model.Show
	MovieTitle string `json:"movie_title"`
	CinemaName string `json:"cinema_name"`
	ScreenName string `json:"screen_name"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	LayoutJSON string `json:"-"`
}

// GetDetail loads a show together with its movie, cinema and screen
// metadata.  ErrShowNotFound when the show does not exist.
func (r *ShowRepo) GetDetail(ctx context.Context, id string) (*ShowDetail, error) {
	const q = "SELECT s.id, s.movie_id, s.screen_id, s.show_date, s.show_time, s.price, " +
		"m.title, c.name, sc.name, sc.`rows`, sc.cols, sc.layout_json " +
		`FROM shows s
		 LEFT JOIN movies m ON m.id = s.movie_id
		 LEFT JOIN screens sc ON sc.id = s.screen_id
		 LEFT JOIN cinemas c ON c.id = sc.cinema_id
		 WHERE s.id = ?`
	var d ShowDetail
	var movieTitle, cinemaName, screenName, layout sql.NullString
	var gridRows, gridCols sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.MovieID, &d.ScreenID, &d.ShowDate, &d.ShowTime, &d.Price,
		&movieTitle, &cinemaName, &screenName, &gridRows, &gridCols, &layout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	d.MovieTitle = movieTitle.String
	d.CinemaName = cinemaName.String
	d.ScreenName = screenName.String
	d.Rows = int(gridRows.Int64)
	d.Cols = int(gridCols.Int64)
	d.LayoutJSON = layout.String
	return &d, nil
}
