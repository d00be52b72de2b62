package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/backend/internal/model"
)

// CinemaRepo manages persistence for cinemas.
type CinemaRepo struct {
	db *sql.DB
}

// NewCinemaRepo constructs a CinemaRepo with the given DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

// Create inserts a new cinema.  The caller supplies the ID.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	const q = `INSERT INTO cinemas (id, name, city, address) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.City, c.Address)
	return err
}

// GetByID retrieves a cinema by its ID.  It returns ErrCinemaNotFound
// when no matching row exists.
func (r *CinemaRepo) GetByID(ctx context.Context, id string) (*model.Cinema, error) {
	const q = `SELECT id, name, city, address FROM cinemas WHERE id = ?`
	var c model.Cinema
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.City, &c.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every cinema ordered by name.  When none exist it
// returns an empty slice and nil error.
func (r *CinemaRepo) ListAll(ctx context.Context) ([]model.Cinema, error) {
	const q = `SELECT id, name, city, address FROM cinemas ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Cinema, 0)
	for rows.Next() {
		var c model.Cinema
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Address); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a cinema and everything under it: screens cascade via
// the FK, but shows, seat inventories and bookings tied to those
// screens are removed explicitly so no orphan rows remain.  The whole
// cleanup runs in one transaction.  ErrCinemaNotFound is returned when
// the cinema does not exist.
func (r *CinemaRepo) Delete(ctx context.Context, id string) error {
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
		`DELETE FROM show_seats WHERE show_id IN
		   (SELECT id FROM shows WHERE screen_id IN (SELECT id FROM screens WHERE cinema_id = ?))`,
		`DELETE FROM bookings WHERE show_id IN
		   (SELECT id FROM shows WHERE screen_id IN (SELECT id FROM screens WHERE cinema_id = ?))`,
		`DELETE FROM shows WHERE screen_id IN (SELECT id FROM screens WHERE cinema_id = ?)`,
		`DELETE FROM screens WHERE cinema_id = ?`,
	}
	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM cinemas WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrCinemaNotFound
	}
	return err
}
