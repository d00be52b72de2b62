package model

// Movie represents a film listed in the catalogue.  Poster holds the
// public path of the uploaded poster image, empty when none was
// provided.
//
// Fields:
//  ID          – primary key identifier (uuid string).
//  Title       – movie title.
//  Duration    – free-form runtime string (e.g. "2h 15m").
//  Description – synopsis shown on the movie page.
//  Poster      – public path of the poster image.
//  Certificate – rating certificate (e.g. "UA").
//  Language    – primary audio language.
type Movie struct {
	ID          string `json:"id"`          // movies.id
	Title       string `json:"title"`       // movies.title
	Duration    string `json:"duration"`    // movies.duration
	Description string `json:"description"` // movies.description
	Poster      string `json:"poster"`      // movies.poster
	Certificate string `json:"certificate"` // movies.certificate
	Language    string `json:"language"`    // movies.language
}

// Banner is a promotional banner shown on the landing page.  A banner
// may point at a movie so the client can link through to it.
type Banner struct {
	ID          string `json:"id"`          // banners.id
	Title       string `json:"title"`       // banners.title
	Description string `json:"description"` // banners.description
	Image       string `json:"image"`       // banners.image
	MovieID     string `json:"movie_id"`    // banners.movie_id (empty when not linked)
}
