package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/movietix/backend/internal/model"
)

// UserRepo provides database access for customer accounts and the
// admin table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user.  Returns ErrEmailTaken when the email is
// already registered.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (id, email, password, name) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.Name)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") { // mysql duplicate entry
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByEmail looks a user up by email.  ErrUserNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, email, password, name FROM users WHERE email = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID looks a user up by ID.  ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, email, password, name FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetAdminByUsername looks an admin up by username.  ErrUserNotFound
// when absent.
func (r *UserRepo) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	const q = `SELECT id, username, password FROM admins WHERE username = ?`
	var a model.Admin
	err := r.db.QueryRowContext(ctx, q, username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &a, nil
}
