package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the approval status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// AllStatuses lists every known status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if Start is strictly before End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals share any instant.
// Intervals that only touch (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// In returns the interval expressed in loc
func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

// Booking represents a reservation of a venue for an interval
type Booking struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID // account that submitted the booking
	Title           string
	Description     string
	Category        string
	Organizer       *string
	AdditionalNotes *string
	Venue           Venue
	Interval        Interval
	AdditionalHours int
	Status          BookingStatus

	// DeletedAt is the logical deletion tombstone; nil means not deleted
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted returns true if the booking carries a deletion tombstone
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}

// IsActive returns true if the booking occupies its venue:
// status PENDING or APPROVED and not logically deleted
func (b *Booking) IsActive() bool {
	if b.IsDeleted() {
		return false
	}
	return b.Status == StatusPending || b.Status == StatusApproved
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	OwnerID        *uuid.UUID     // nil - all owners
	Venue          *Venue         // nil - all venues
	Status         *BookingStatus // nil - all statuses
	From           *time.Time     // bookings ending after From
	To             *time.Time     // bookings starting before To
	IncludeDeleted bool
}
