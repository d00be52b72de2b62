package model

// Cinema represents a movie theatre venue.  A cinema contains
// multiple screens.  This struct corresponds to a row in the
// `cinemas` table.
//
// Fields:
//  ID      – primary key identifier (uuid string).
//  Name    – display name of the cinema.
//  City    – city the cinema operates in.
//  Address – optional street address.
type Cinema struct {
	ID      string `json:"id"`      // cinemas.id
	Name    string `json:"name"`    // cinemas.name
	City    string `json:"city"`    // cinemas.city
	Address string `json:"address"` // cinemas.address
}
