package database

// schema.go creates the application tables at startup when they do not
// exist yet and seeds a default admin account.  The statements are
// idempotent so repeated startups are safe.

import (
	"context"
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL,
		name VARCHAR(128) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id CHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		duration VARCHAR(32) NOT NULL DEFAULT '',
		description TEXT,
		poster VARCHAR(255) NOT NULL DEFAULT '',
		certificate VARCHAR(16) NOT NULL DEFAULT '',
		language VARCHAR(64) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS cinemas (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(128) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS screens (
		id CHAR(36) PRIMARY KEY,
		cinema_id CHAR(36) NOT NULL,
		name VARCHAR(128) NOT NULL,
		` + "`rows`" + ` INT NOT NULL DEFAULT 0,
		cols INT NOT NULL DEFAULT 0,
		layout_json TEXT,
		FOREIGN KEY (cinema_id) REFERENCES cinemas(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id CHAR(36) PRIMARY KEY,
		movie_id CHAR(36) NOT NULL,
		screen_id CHAR(36) NOT NULL,
		show_date VARCHAR(10) NOT NULL,
		show_time VARCHAR(5) NOT NULL,
		price INT NOT NULL,
		FOREIGN KEY (movie_id) REFERENCES movies(id),
		FOREIGN KEY (screen_id) REFERENCES screens(id)
	)`,
	`CREATE TABLE IF NOT EXISTS show_seats (
		show_id CHAR(36) NOT NULL,
		seat_code VARCHAR(4) NOT NULL,
		status VARCHAR(10) NOT NULL,
		PRIMARY KEY (show_id, seat_code),
		FOREIGN KEY (show_id) REFERENCES shows(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		movie_id CHAR(36) NOT NULL,
		show_id CHAR(36) NOT NULL,
		seats TEXT NOT NULL,
		amount INT NOT NULL,
		status VARCHAR(10) NOT NULL,
		pdf_path VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS banners (
		id CHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT,
		image VARCHAR(255) NOT NULL,
		movie_id CHAR(36) NULL,
		FOREIGN KEY (movie_id) REFERENCES movies(id)
	)`,
}

// EnsureSchema runs all CREATE TABLE statements and seeds the default
// admin account ("admin"/adminPass) when the admins table is empty.
func EnsureSchema(ctx context.Context, db *sql.DB, adminPass string, bcryptCost int) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcryptCost)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO admins (username, password) VALUES (?, ?)`, "admin", string(hash)); err != nil {
			return err
		}
		log.Printf("seeded default admin account")
	}
	return nil
}
