package domain

import "github.com/google/uuid"

// Actor the authenticated account performing an operation
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns returns true if the actor submitted the booking
func (a Actor) Owns(b *Booking) bool {
	return b.OwnerID == a.ID
}

// CanView returns true if the actor may read the booking
func (a Actor) CanView(b *Booking) bool {
	return a.IsAdmin() || a.Owns(b)
}

// MayRequest returns true if the actor is permitted to ask for target on b.
// Administrators decide every transition; an owner may only cancel.
func (a Actor) MayRequest(b *Booking, target BookingStatus) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Owns(b) && target == StatusCancelled
}
