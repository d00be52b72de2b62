package repository

import (
	"context"
	"database/sql"

	"github.com/movietix/backend/internal/model"
)

// ShowSeatRepo encapsulates persistence for a show's seat inventory.
// It is intentionally a dumb storage layer: eligibility rules for
// status transitions live in the booking service, not here.
type ShowSeatRepo struct {
	db *sql.DB
}

// NewShowSeatRepo constructs a ShowSeatRepo given a DB handle.
func NewShowSeatRepo(db *sql.DB) *ShowSeatRepo {
	return &ShowSeatRepo{db: db}
}

// seatOrder sorts seat codes in grid order: row letter first, then the
// numeric column, so A2 precedes A10.  Codes are a single letter plus
// digits (grids beyond 26 rows are not supported).
const seatOrder = `ORDER BY LEFT(seat_code, 1), CAST(SUBSTRING(seat_code, 2) AS UNSIGNED)`

// SeedTx inserts one inventory row per seat within the caller's
// transaction.  Seeding is one-time: if any entry already exists for
// the show, ErrShowSeeded is returned and nothing is inserted.
func (r *ShowSeatRepo) SeedTx(ctx context.Context, tx *sql.Tx, showID string, seats []model.ShowSeat) error {
	if len(seats) == 0 {
		return nil
	}
	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM show_seats WHERE show_id = ?`, showID).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrShowSeeded
	}
	// Build one INSERT with placeholders for every seat.
	query := `INSERT INTO show_seats (show_id, seat_code, status) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, showID, s.SeatCode, s.Status)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByShow returns the full seat snapshot for a show in grid order.
// The same payload serves UI rendering and the live broadcast.
func (r *ShowSeatRepo) ListByShow(ctx context.Context, showID string) ([]model.ShowSeat, error) {
	q := `SELECT show_id, seat_code, status FROM show_seats WHERE show_id = ? ` + seatOrder
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.ShowSeat, 0)
	for rows.Next() {
		var s model.ShowSeat
		if err := rows.Scan(&s.ShowID, &s.SeatCode, &s.Status); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByShow returns the number of inventory rows for a show.  Used
// to distinguish "show unknown" from "show with no seats".
func (r *ShowSeatRepo) CountByShow(ctx context.Context, showID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM show_seats WHERE show_id = ?`, showID).Scan(&n)
	return n, err
}
