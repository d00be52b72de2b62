// Package repository defines error values that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers and the booking service to distinguish between failure
// scenarios, e.g. translating ErrShowNotFound into an HTTP 404 while a
// generic database error becomes an opaque 500.
package repository

import "errors"

// ErrCinemaNotFound is returned when a cinema lookup yields no rows.
var ErrCinemaNotFound = errors.New("cinema not found")

// ErrScreenNotFound is returned when a screen lookup yields no rows.
var ErrScreenNotFound = errors.New("screen not found")

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowNotFound is returned when a show lookup yields no rows.
var ErrShowNotFound = errors.New("show not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBannerNotFound is returned when a banner lookup yields no rows.
var ErrBannerNotFound = errors.New("banner not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrShowSeeded is returned when a show's seat inventory already
// exists.  Seeding happens exactly once, at show creation.
var ErrShowSeeded = errors.New("show seats already seeded")

// ErrEmailTaken is returned when registering with an email that
// already has an account.
var ErrEmailTaken = errors.New("email already in use")
