package database

import (
	"strings"
	"testing"
)

func TestDSNCarriesConnectionOptions(t *testing.T) {
	dsn := Config{User: "movietix", Pass: "s3cret", Host: "db.local", Port: "3307", Name: "movietix"}.dsn()

	if !strings.HasPrefix(dsn, "movietix:s3cret@tcp(db.local:3307)/movietix") {
		t.Fatalf("dsn %q has unexpected address shape", dsn)
	}
	for _, want := range []string{"parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestDSNOmitsEmptyPassword(t *testing.T) {
	dsn := Config{User: "root", Host: "localhost", Port: "3306", Name: "app"}.dsn()

	if strings.Contains(dsn, ":@") {
		t.Fatalf("dsn %q carries an empty password separator", dsn)
	}
	if !strings.HasPrefix(dsn, "root@tcp(localhost:3306)/app") {
		t.Fatalf("dsn %q has unexpected shape", dsn)
	}
}
