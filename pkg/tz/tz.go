package tz

import (
	"fmt"
	"time"
)

// DefaultOffsetHours is the reference offset of the venues (UTC+8).
const DefaultOffsetHours = 8

// Fixed returns a fixed-offset location for the given whole-hour UTC offset.
// Booking intervals are stored and compared in exactly one such location.
func Fixed(offsetHours int) *time.Location {
	sign := "+"
	hours := offsetHours
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	return time.FixedZone(fmt.Sprintf("UTC%s%02d:00", sign, hours), offsetHours*60*60)
}
