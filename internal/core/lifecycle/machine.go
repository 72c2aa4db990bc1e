// Package lifecycle governs booking status transitions, logical deletion
// and the ordering used by administrative listings.
package lifecycle

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

var (
	ErrIllegalTransition = errors.New("lifecycle: illegal status transition")
	ErrAlreadyDeleted    = errors.New("lifecycle: booking already deleted")
)

// transitions every legal (from -> to) pair; anything absent is illegal
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:  {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved: {domain.StatusCancelled, domain.StatusCompleted},
}

// AllowedTargets returns the statuses reachable from status in one step
func AllowedTargets(status domain.BookingStatus) []domain.BookingStatus {
	return slices.Clone(transitions[status])
}

// IsTerminal returns true if no transition leaves status
func IsTerminal(status domain.BookingStatus) bool {
	return len(transitions[status]) == 0
}

// CanTransition reports whether from -> to is in the transition table
func CanTransition(from, to domain.BookingStatus) bool {
	return slices.Contains(transitions[from], to)
}

// Transition moves b to target. On failure the returned booking is b unchanged.
func Transition(b domain.Booking, target domain.BookingStatus) (domain.Booking, error) {
	if b.IsDeleted() {
		return b, fmt.Errorf("%w: id=%s", ErrAlreadyDeleted, b.ID)
	}
	if !CanTransition(b.Status, target) {
		return b, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.Status, target)
	}

	b.Status = target
	return b, nil
}

// SoftDelete stamps the deletion tombstone. Deleting twice is a no-op.
func SoftDelete(b domain.Booking, at time.Time) domain.Booking {
	if b.IsDeleted() {
		return b
	}
	b.DeletedAt = &at
	return b
}

// CanEditCatering returns false once the event took place or the booking was deleted
func CanEditCatering(b domain.Booking) bool {
	return !b.IsDeleted() && b.Status != domain.StatusCompleted
}

// priority admin listing order: work that needs attention first
var priority = map[domain.BookingStatus]int{
	domain.StatusPending:   0,
	domain.StatusApproved:  1,
	domain.StatusCompleted: 2,
	domain.StatusCancelled: 3,
	domain.StatusRejected:  4,
}

func rank(s domain.BookingStatus) int {
	if p, ok := priority[s]; ok {
		return p
	}
	return len(priority)
}

// Compare orders bookings by status priority, then interval start, then id
func Compare(a, b *domain.Booking) int {
	if c := rank(a.Status) - rank(b.Status); c != 0 {
		return c
	}
	if c := a.Interval.Start.Compare(b.Interval.Start); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

// Sort orders bookings in place with Compare
func Sort(bookings []*domain.Booking) {
	slices.SortFunc(bookings, Compare)
}
