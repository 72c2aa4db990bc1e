// Package interval turns user-entered date, start time and extra hours into a
// booking interval expressed in the service's single reference offset.
package interval

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
	"github.com/m04kA/SMC-VenueBooking/pkg/tz"
)

// ErrValidation is returned for input that does not describe a valid interval
var ErrValidation = errors.New("interval: invalid input")

// Deriver derives booking intervals; it holds only immutable configuration
type Deriver struct {
	loc                *time.Location
	baseDuration       time.Duration
	maxAdditionalHours int
}

// NewDeriver creates a deriver for the reference location loc
func NewDeriver(loc *time.Location, baseDuration time.Duration, maxAdditionalHours int) *Deriver {
	return &Deriver{
		loc:                loc,
		baseDuration:       baseDuration,
		maxAdditionalHours: maxAdditionalHours,
	}
}

// NewDefaultDeriver UTC+8, 4 hour base, at most 10 extra hours
func NewDefaultDeriver() *Deriver {
	return NewDeriver(tz.Fixed(tz.DefaultOffsetHours), domain.DefaultBaseDuration, domain.DefaultMaxAdditionalHours)
}

// Location returns the reference location
func (d *Deriver) Location() *time.Location {
	return d.loc
}

// MaxAdditionalHours returns the configured cap on extra hours
func (d *Deriver) MaxAdditionalHours() int {
	return d.maxAdditionalHours
}

// Derive parses date (YYYY-MM-DD) and startClock (HH:MM) and returns
// [start, start + base + additionalHours).
func (d *Deriver) Derive(date, startClock string, additionalHours int) (domain.Interval, error) {
	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), d.loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: date %q: %v", ErrValidation, date, err)
	}

	clock, err := types.NewTimeStringFromString(strings.TrimSpace(startClock))
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: start time %q: %v", ErrValidation, startClock, err)
	}

	return d.DeriveOn(day, clock, additionalHours)
}

// DeriveOn is Derive for already parsed input; only the calendar day of day is used
func (d *Deriver) DeriveOn(day time.Time, clock types.TimeString, additionalHours int) (domain.Interval, error) {
	if additionalHours < 0 || additionalHours > d.maxAdditionalHours {
		return domain.Interval{}, fmt.Errorf("%w: additional hours must be between 0 and %d, got %d",
			ErrValidation, d.maxAdditionalHours, additionalHours)
	}

	start, err := clock.On(day, d.loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: start time %q: %v", ErrValidation, clock, err)
	}

	end := start.Add(d.baseDuration + time.Duration(additionalHours)*time.Hour)

	iv := domain.Interval{Start: start, End: end}
	if !iv.IsValid() {
		return domain.Interval{}, fmt.Errorf("%w: end must be after start", ErrValidation)
	}

	return iv, nil
}

// FromStored re-expresses persisted instants in the reference location.
// Storage keeps absolute instants, so the shift applied here is the same one
// applied in Derive and the round trip is exact.
func (d *Deriver) FromStored(start, end time.Time) (domain.Interval, error) {
	iv := domain.Interval{Start: start, End: end}.In(d.loc)
	if !iv.IsValid() {
		return domain.Interval{}, fmt.Errorf("%w: stored interval %s - %s is not chronological",
			ErrValidation, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return iv, nil
}

// ClockOf returns the HH:MM of t in the reference location
func (d *Deriver) ClockOf(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(d.loc))
}

// DateOf returns the YYYY-MM-DD of t in the reference location
func (d *Deriver) DateOf(t time.Time) string {
	return t.In(d.loc).Format(domain.DateFormat)
}
