// Package ticket renders paid bookings into printable PDF tickets.
package ticket

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Data carries everything printed on a ticket.
type Data struct {
	BookingID  string
	MovieTitle string
	CinemaName string
	CinemaCity string
	ScreenName string
	ShowDate   string
	ShowTime   string
	Seats      string // comma separated seat codes
	Amount     int
	UserName   string
}

// Generator writes tickets under <baseDir>/tickets.
type Generator struct {
	baseDir string
}

// NewGenerator returns a Generator rooted at the public asset
// directory, typically "public".
func NewGenerator(baseDir string) *Generator {
	return &Generator{baseDir: baseDir}
}

// Generate renders the ticket and writes it to
// <baseDir>/tickets/<bookingID>.pdf.  It returns the path relative to
// the base dir, which is what gets stored on the booking and served to
// the client.
func (g *Generator) Generate(d Data) (string, error) {
	qrPNG, err := qrcode.Encode(d.BookingID, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("ticket qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header strip.
	pdf.SetFillColor(24, 24, 72)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetXY(10, 8)
	pdf.CellFormat(0, 12, "MovieTix  -  E-Ticket", "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(10, 38)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, d.MovieTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s, %s  |  %s", d.CinemaName, d.CinemaCity, d.ScreenName), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Guest", d.UserName},
		{"Date", d.ShowDate},
		{"Time", d.ShowTime},
		{"Seats", d.Seats},
		{"Amount", fmt.Sprintf("Rs. %d", d.Amount)},
	}
	for _, r := range rows {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(35, 8, r[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, r[1], "", 1, "L", false, 0, "")
	}

	// QR code on the right, above the fold.
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr_"+d.BookingID, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr_"+d.BookingID, 150, 38, 48, 48, false, opts, 0, "")

	pdf.SetY(130)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Booking ID: %s", d.BookingID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Show this ticket at the entrance. The QR code is scanned at check-in.", "", 1, "L", false, 0, "")

	dir := filepath.Join(g.baseDir, "tickets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ticket dir: %w", err)
	}
	full := filepath.Join(dir, d.BookingID+".pdf")
	if err := pdf.OutputFileAndClose(full); err != nil {
		return "", fmt.Errorf("ticket write: %w", err)
	}
	return filepath.ToSlash(filepath.Join("tickets", d.BookingID+".pdf")), nil
}
