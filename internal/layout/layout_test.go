package layout

import "testing"

func TestExpandGridCompleteness(t *testing.T) {
	cases := []struct {
		rows, cols int
		want       int
	}{
		{2, 3, 6},
		{1, 1, 1},
		{10, 12, 120},
		{26, 40, 1040},
		{0, 5, 0},
		{5, 0, 0},
		{-1, 3, 0},
	}
	for _, tc := range cases {
		seats := Expand(tc.rows, tc.cols, Rules{})
		if len(seats) != tc.want {
			t.Errorf("Expand(%d,%d): got %d seats, want %d", tc.rows, tc.cols, len(seats), tc.want)
		}
	}
}

func TestExpandSeatCodes(t *testing.T) {
	seats := Expand(2, 3, Rules{})
	want := []string{"A1", "A2", "A3", "B1", "B2", "B3"}
	if len(seats) != len(want) {
		t.Fatalf("got %d seats, want %d", len(seats), len(want))
	}
	for i, w := range want {
		if seats[i].Code != w {
			t.Errorf("seat %d: code %q, want %q", i, seats[i].Code, w)
		}
	}
	// columns are 1-based, rows 0-based
	if seats[4].Row != 1 || seats[4].Col != 2 {
		t.Errorf("B2: row/col = %d/%d, want 1/2", seats[4].Row, seats[4].Col)
	}
}

func TestExpandRules(t *testing.T) {
	rules := Rules{
		AisleCols:     []int{2},
		PremiumRows:   []string{"A"},
		ReclinerRows:  []string{"A", "B"},
		DisabledSeats: []string{"B1"},
	}
	seats := Expand(2, 3, rules)
	byCode := make(map[string]Seat, len(seats))
	for _, s := range seats {
		byCode[s.Code] = s
	}
	if !byCode["A1"].IsPremium || byCode["B1"].IsPremium {
		t.Errorf("premium flag wrong: A1=%v B1=%v", byCode["A1"].IsPremium, byCode["B1"].IsPremium)
	}
	// a row may be both premium and recliner
	if !byCode["A2"].IsRecliner || !byCode["B2"].IsRecliner {
		t.Error("recliner rows not applied")
	}
	if !byCode["B1"].Disabled || byCode["A1"].Disabled {
		t.Errorf("disabled flag wrong: B1=%v A1=%v", byCode["B1"].Disabled, byCode["A1"].Disabled)
	}
	if !byCode["A2"].IsAisleAfter || byCode["A3"].IsAisleAfter {
		t.Error("aisle hint wrong")
	}
}

func TestExpandIgnoresOutOfRangeRules(t *testing.T) {
	rules := Rules{
		PremiumRows:   []string{"Z"},
		DisabledSeats: []string{"Q99", "A0", "nonsense"},
		AisleCols:     []int{99},
	}
	seats := Expand(2, 2, rules)
	if len(seats) != 4 {
		t.Fatalf("got %d seats, want 4", len(seats))
	}
	for _, s := range seats {
		if s.IsPremium || s.Disabled || s.IsAisleAfter {
			t.Errorf("seat %s picked up an out-of-range rule", s.Code)
		}
	}
}

func TestParseRules(t *testing.T) {
	r := ParseRules(`{"premiumRows":["A"],"disabledSeats":["A1"],"aisleCols":[3]}`)
	if len(r.PremiumRows) != 1 || r.PremiumRows[0] != "A" {
		t.Errorf("premiumRows = %v", r.PremiumRows)
	}
	if len(r.DisabledSeats) != 1 || r.DisabledSeats[0] != "A1" {
		t.Errorf("disabledSeats = %v", r.DisabledSeats)
	}
	// malformed and empty blobs fall back to zero rules
	if got := ParseRules("not json"); len(got.PremiumRows) != 0 {
		t.Errorf("malformed blob parsed to %v", got)
	}
	if got := ParseRules(""); len(got.DisabledSeats) != 0 {
		t.Errorf("empty blob parsed to %v", got)
	}
}
