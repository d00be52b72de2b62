// Package database opens the MySQL pool and bootstraps the schema.
package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config carries the connection coordinates plus the pool knobs.  Zero
// values for the knobs fall back to defaults sized for a single-node
// deployment.
type Config struct {
	User        string
	Pass        string
	Host        string
	Port        string
	Name        string
	MaxConns    int           // open and idle pool size
	ConnTTL     time.Duration // max lifetime of a pooled connection
	PingTimeout time.Duration // bound on the startup connectivity check
}

// dsn builds the driver DSN.  parseTime makes DATETIME columns scan
// into time.Time; the driver's default location is UTC, which keeps
// show timestamps consistent across app instances.
func (c Config) dsn() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Pass
	mc.Net = "tcp"
	mc.Addr = c.Host + ":" + c.Port
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Open connects to MySQL, applies the pool settings and verifies the
// connection before returning.
func Open(cfg Config) (*sql.DB, error) {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 25
	}
	if cfg.ConnTTL <= 0 {
		cfg.ConnTTL = 30 * time.Minute
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 5 * time.Second
	}

	db, err := sql.Open("mysql", cfg.dsn())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)
	db.SetConnMaxLifetime(cfg.ConnTTL)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
