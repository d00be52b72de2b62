package model

// Screen represents an individual auditorium within a cinema.  Each
// screen defines its seating grid via Rows and Cols and may carry an
// optional JSON blob of layout rules (aisle columns, premium rows,
// recliner rows, permanently disabled seats).  The rules are parsed
// by the layout package when a show is scheduled.
//
// Fields:
//  ID         – primary key identifier (uuid string).
//  CinemaID   – cinema this screen belongs to.
//  Name       – screen name unique within the cinema (e.g. "Audi 1").
//  Rows       – number of seating rows.
//  Cols       – number of seats per row.
//  LayoutJSON – raw JSON layout rules; "{}" when none are configured.
type Screen struct {
	ID         string `json:"id"`        // screens.id
	CinemaID   string `json:"cinema_id"` // screens.cinema_id
	Name       string `json:"name"`      // screens.name
	Rows       int    `json:"rows"`      // screens.rows
	Cols       int    `json:"cols"`      // screens.cols
	LayoutJSON string `json:"layout"`    // screens.layout_json
}
