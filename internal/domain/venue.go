package domain

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// Venue identifies a bookable physical space
type Venue string

const (
	VenueLoungeHall   Venue = "lounge hall"
	VenueFunctionHall Venue = "function hall"
	VenueAlFresco     Venue = "al fresco"
)

// KnownVenues the fixed set of venues that accept bookings
var KnownVenues = []Venue{
	VenueLoungeHall,
	VenueFunctionHall,
	VenueAlFresco,
}

// ErrUnknownVenue is returned when a venue is not in KnownVenues
var ErrUnknownVenue = errors.New("unknown venue")

var folder = cases.Fold()

// Key returns the case-folded form used for venue comparison
func (v Venue) Key() string {
	return folder.String(strings.TrimSpace(string(v)))
}

// SameAs reports whether two venue identifiers name the same venue (case-insensitive)
func (v Venue) SameAs(other Venue) bool {
	return v.Key() == other.Key()
}

func (v Venue) String() string {
	return string(v)
}

// ParseVenue resolves s to its canonical known venue
func ParseVenue(s string) (Venue, error) {
	candidate := Venue(s)
	for _, known := range KnownVenues {
		if known.SameAs(candidate) {
			return known, nil
		}
	}
	return "", ErrUnknownVenue
}
