package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/movietix/backend/internal/model"
)

// MovieRepo manages persistence for movies and promotional banners.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie.  The caller supplies the ID.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (id, title, duration, description, poster, certificate, language)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.Title, m.Duration, m.Description, m.Poster, m.Certificate, m.Language)
	return err
}

// GetByID retrieves a movie by its ID.  Returns ErrMovieNotFound when
// no matching row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	const q = `SELECT id, title, duration, description, poster, certificate, language FROM movies WHERE id = ?`
	var m model.Movie
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Duration, &desc, &m.Poster, &m.Certificate, &m.Language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	m.Description = desc.String
	return &m, nil
}

// ListAll returns the full movie catalogue ordered by title.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, duration, description, poster, certificate, language FROM movies ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		var desc sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Duration, &desc, &m.Poster, &m.Certificate, &m.Language); err != nil {
			return nil, err
		}
		m.Description = desc.String
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a movie and all dependent records (banners, shows
// with their seat inventories, bookings) in one transaction.  It
// returns the poster path so the handler can unlink the file, and
// ErrMovieNotFound when the movie does not exist.
func (r *MovieRepo) Delete(ctx context.Context, id string) (poster string, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if err = tx.QueryRowContext(ctx, `SELECT poster FROM movies WHERE id = ?`, id).Scan(&poster); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return "", err
	}
	stmts := []string{
		`DELETE FROM show_seats WHERE show_id IN (SELECT id FROM shows WHERE movie_id = ?)`,
		`DELETE FROM bookings WHERE movie_id = ?`,
		`DELETE FROM shows WHERE movie_id = ?`,
		`DELETE FROM banners WHERE movie_id = ?`,
		`DELETE FROM movies WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return "", err
		}
	}
	return poster, nil
}

// CreateBanner inserts a promotional banner.  MovieID may be empty, in
// which case NULL is stored.
func (r *MovieRepo) CreateBanner(ctx context.Context, b *model.Banner) error {
	const q = `INSERT INTO banners (id, title, description, image, movie_id) VALUES (?, ?, ?, ?, ?)`
	var movieID interface{}
	if b.MovieID != "" {
		movieID = b.MovieID
	}
	_, err := r.db.ExecContext(ctx, q, b.ID, b.Title, b.Description, b.Image, movieID)
	return err
}

// BannerListing is a banner joined with its movie title, when linked.
type BannerListing struct {
	model.Banner
	MovieTitle string `json:"movie_title"`
}

// ListBanners returns all banners newest first, each with the linked
// movie title when one is set.
func (r *MovieRepo) ListBanners(ctx context.Context) ([]BannerListing, error) {
	const q = `SELECT b.id, b.title, b.description, b.image, b.movie_id, m.title
	           FROM banners b
	           LEFT JOIN movies m ON m.id = b.movie_id
	           ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]BannerListing, 0)
	for rows.Next() {
		var l BannerListing
		var desc, movieID, movieTitle sql.NullString
		if err := rows.Scan(&l.ID, &l.Title, &desc, &l.Image, &movieID, &movieTitle); err != nil {
			return nil, err
		}
		l.Description = desc.String
		l.MovieID = movieID.String
		l.MovieTitle = movieTitle.String
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBanner removes a banner and returns its image path so the
// handler can unlink the file.  ErrBannerNotFound when absent.
func (r *MovieRepo) DeleteBanner(ctx context.Context, id string) (image string, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT image FROM banners WHERE id = ?`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBannerNotFound
		}
		return "", err
	}
	if _, err = r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = ?`, id); err != nil {
		return "", err
	}
	return image, nil
}
