package domain

import (
	"time"
)

// Interval derivation defaults
const (
	DefaultBaseDuration       = 4 * time.Hour
	DefaultMaxAdditionalHours = 10
	DefaultMinLeadDays        = 7
)

// Catering defaults
const (
	DefaultMaxDishes = 3
)

// Field limits
const (
	MaxTitleLength       = 50
	MaxCategoryLength    = 50
	MaxDescriptionLength = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Account roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// ActiveStatuses statuses that occupy a venue
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
