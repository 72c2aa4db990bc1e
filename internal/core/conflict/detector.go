// Package conflict finds active bookings that collide with a candidate booking
// at the same venue. Detection is advisory: it is only as fresh as the snapshot
// of bookings passed in.
package conflict

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// Candidate a proposed or existing booking checked against others
type Candidate struct {
	Venue     domain.Venue
	Interval  domain.Interval
	ExcludeID *uuid.UUID // set when re-checking an existing booking
}

// CandidateOf builds a candidate from an existing booking, excluding itself
func CandidateOf(b *domain.Booking) Candidate {
	id := b.ID
	return Candidate{Venue: b.Venue, Interval: b.Interval, ExcludeID: &id}
}

// Overlaps is the half-open overlap test s1 < e2 && s2 < e1
func Overlaps(a, b domain.Interval) bool {
	return a.Overlaps(b)
}

// FindConflicts returns every active booking at the candidate's venue whose
// interval overlaps the candidate's, ordered by start time and then id.
// The result is never nil.
func FindConflicts(candidate Candidate, existing []*domain.Booking) []*domain.Booking {
	conflicts := make([]*domain.Booking, 0)

	for _, b := range existing {
		if b == nil || !b.IsActive() {
			continue
		}
		if candidate.ExcludeID != nil && b.ID == *candidate.ExcludeID {
			continue
		}
		if !b.Venue.SameAs(candidate.Venue) {
			continue
		}
		if !Overlaps(candidate.Interval, b.Interval) {
			continue
		}
		conflicts = append(conflicts, b)
	}

	slices.SortStableFunc(conflicts, compareByStartThenID)

	return conflicts
}

// HasConflict reports whether b collides with any other booking in all
func HasConflict(b *domain.Booking, all []*domain.Booking) bool {
	if !b.IsActive() {
		return false
	}
	return len(FindConflicts(CandidateOf(b), all)) > 0
}

// OfStatus keeps only conflicts in the given status
func OfStatus(conflicts []*domain.Booking, status domain.BookingStatus) []*domain.Booking {
	filtered := make([]*domain.Booking, 0, len(conflicts))
	for _, b := range conflicts {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// IDs returns the ids of bookings in order
func IDs(bookings []*domain.Booking) []uuid.UUID {
	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}

func compareByStartThenID(a, b *domain.Booking) int {
	if c := a.Interval.Start.Compare(b.Interval.Start); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
