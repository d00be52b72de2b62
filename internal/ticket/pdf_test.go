package ticket

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateWritesTicket(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	rel, err := g.Generate(Data{
		BookingID:  "bk-test-1",
		MovieTitle: "Interstellar",
		CinemaName: "Galaxy",
		CinemaCity: "Pune",
		ScreenName: "Audi 2",
		ShowDate:   "2026-09-05",
		ShowTime:   "19:30",
		Seats:      "A1,A2",
		Amount:     500,
		UserName:   "Asha",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if rel != "tickets/bk-test-1.pdf" {
		t.Fatalf("relative path = %q, want tickets/bk-test-1.pdf", rel)
	}
	info, err := os.Stat(filepath.Join(dir, "tickets", "bk-test-1.pdf"))
	if err != nil {
		t.Fatalf("stat ticket: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("ticket file is empty")
	}
}
