// Package layout expands a screen's seating grid into concrete seats.
// It is pure data logic with no persistence: the repository layer
// seeds a show's inventory from the seats returned here.
package layout

import (
	"encoding/json"
	"strconv"
)

// Rules describes the screen-level layout configuration entered in the
// admin console.  Aisle columns are rendering hints only; premium and
// recliner rows affect seat classification; disabled seats are seeded
// straight into "sold" so they can never be booked (e.g. broken
// seats).  Entries that fall outside the grid are ignored rather than
// rejected, so a typo in the console never breaks show creation.
type Rules struct {
	AisleCols     []int    `json:"aisleCols"`
	PremiumRows   []string `json:"premiumRows"`
	ReclinerRows  []string `json:"reclinerRows"`
	DisabledSeats []string `json:"disabledSeats"`
}

// ParseRules decodes the layout_json blob stored on a screen.  An
// empty or malformed blob yields zero-value rules, matching the
// tolerant behaviour of the admin console.
func ParseRules(raw string) Rules {
	var r Rules
	if raw == "" {
		return r
	}
	_ = json.Unmarshal([]byte(raw), &r)
	return r
}

// Seat is one expanded position of the grid.
type Seat struct {
	Code         string // row letter + 1-based column, e.g. "B7"
	Row          int    // 0-based row index
	Col          int    // 1-based column index
	IsPremium    bool
	IsRecliner   bool
	IsAisleAfter bool // an aisle gap follows this column (rendering hint)
	Disabled     bool // seeded as sold, permanently unavailable
}

// RowLetter maps a 0-based row index to its letter.  The grid is only
// defined for up to 26 rows ('A'..'Z'); larger screens are a known
// limitation of the seat-code scheme.
func RowLetter(row int) string {
	return string(rune('A' + row))
}

// Expand produces the full seat grid for a rows×cols screen, exactly
// rows*cols seats in row-major order (A1..A<cols>, B1.., ...).  It has
// no error conditions: non-positive dimensions yield an empty grid and
// out-of-range rule entries simply never match a generated seat.
func Expand(rows, cols int, rules Rules) []Seat {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	premium := make(map[string]bool, len(rules.PremiumRows))
	for _, r := range rules.PremiumRows {
		premium[r] = true
	}
	recliner := make(map[string]bool, len(rules.ReclinerRows))
	for _, r := range rules.ReclinerRows {
		recliner[r] = true
	}
	disabled := make(map[string]bool, len(rules.DisabledSeats))
	for _, s := range rules.DisabledSeats {
		disabled[s] = true
	}
	aisle := make(map[int]bool, len(rules.AisleCols))
	for _, c := range rules.AisleCols {
		aisle[c] = true
	}

	seats := make([]Seat, 0, rows*cols)
	for r := 0; r < rows; r++ {
		letter := RowLetter(r)
		for c := 1; c <= cols; c++ {
			code := letter + strconv.Itoa(c)
			seats = append(seats, Seat{
				Code:         code,
				Row:          r,
				Col:          c,
				IsPremium:    premium[letter],
				IsRecliner:   recliner[letter],
				IsAisleAfter: aisle[c],
				Disabled:     disabled[code],
			})
		}
	}
	return seats
}
