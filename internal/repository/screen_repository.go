package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/backend/internal/model"
)

// ScreenRepo manages persistence for screens.  The `rows` column name
// collides with a reserved word in MySQL so it is backtick-quoted in
// every statement.
type ScreenRepo struct {
	db *sql.DB
}

// NewScreenRepo constructs a ScreenRepo with the given DB handle.
func NewScreenRepo(db *sql.DB) *ScreenRepo {
	return &ScreenRepo{db: db}
}

// Create inserts a new screen.  The caller supplies the ID and an
// already-validated layout JSON blob ("{}" when absent).
func (r *ScreenRepo) Create(ctx context.Context, s *model.Screen) error {
	const q = "INSERT INTO screens (id, cinema_id, name, `rows`, cols, layout_json) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, s.ID, s.CinemaID, s.Name, s.Rows, s.Cols, s.LayoutJSON)
	return err
}

// GetByID retrieves a screen by its ID.  It returns ErrScreenNotFound
// when no matching row exists.
func (r *ScreenRepo) GetByID(ctx context.Context, id string) (*model.Screen, error) {
	const q = "SELECT id, cinema_id, name, `rows`, cols, layout_json FROM screens WHERE id = ?"
	var s model.Screen
	var layout sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.CinemaID, &s.Name, &s.Rows, &s.Cols, &layout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}
	s.LayoutJSON = layout.String
	return &s, nil
}

// ScreenListing is a screen joined with its cinema's name and city for
// the public screens endpoint.
type ScreenListing struct {
	model.Screen
	CinemaName string `json:"cinema_name"`
	CinemaCity string `json:"cinema_city"`
}

// ListAll returns every screen with its cinema name/city attached,
// ordered by cinema then screen name.
func (r *ScreenRepo) ListAll(ctx context.Context) ([]ScreenListing, error) {
	const q = "SELECT s.id, s.cinema_id, s.name, s.`rows`, s.cols, s.layout_json, c.name, c.city " +
		`FROM screens s
		 JOIN cinemas c ON c.id = s.cinema_id
		 ORDER BY c.name, s.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]ScreenListing, 0)
	for rows.Next() {
		var l ScreenListing
		var layout sql.NullString
		if err := rows.Scan(&l.ID, &l.CinemaID, &l.Name, &l.Rows, &l.Cols, &layout, &l.CinemaName, &l.CinemaCity); err != nil {
			return nil, err
		}
		l.LayoutJSON = layout.String
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a screen together with its shows, their seat
// inventories and bookings, all in one transaction.  It returns
// ErrScreenNotFound when the screen does not exist.
func (r *ScreenRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmts := []string{
		`DELETE FROM show_seats WHERE show_id IN (SELECT id FROM shows WHERE screen_id = ?)`,
		`DELETE FROM bookings WHERE show_id IN (SELECT id FROM shows WHERE screen_id = ?)`,
		`DELETE FROM shows WHERE screen_id = ?`,
	}
	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM screens WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrScreenNotFound
	}
	return err
}
