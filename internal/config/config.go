package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxConns     int    // connection pool size (open and idle)
	DBConnTTLMin   int    // max lifetime of a pooled connection, minutes
	DBPingSec      int    // startup connectivity check timeout, seconds
	JWTSecret      string // secret used to sign JWTs
	UserTokenTTLH  int    // user token time-to-live in hours
	AdminTokenTTLH int    // admin token time-to-live in hours
	BcryptCost     int    // bcrypt cost for password hashing
	AdminPassword  string // password seeded for the default admin account
	PublicDir      string // root of served static assets (posters, banners, tickets)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxConns:     atoi(getenv("DB_MAX_CONNS", "25")),
		DBConnTTLMin:   atoi(getenv("DB_CONN_TTL_MINUTES", "30")),
		DBPingSec:      atoi(getenv("DB_PING_TIMEOUT_SECONDS", "5")),
		JWTSecret:      must("JWT_SECRET"),
		UserTokenTTLH:  mustInt("USER_TOKEN_TTL_HOURS"),
		AdminTokenTTLH: mustInt("ADMIN_TOKEN_TTL_HOURS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		AdminPassword:  getenv("ADMIN_PASSWORD", "admin123"),
		PublicDir:      getenv("PUBLIC_DIR", "public"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
