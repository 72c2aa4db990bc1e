package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	minutesInHour = 60
	minutesInDay  = 24 * minutesInHour
)

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM clock time
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-23:59 range
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString is a wall-clock time of day in HH:MM form
type TimeString string

// NewTimeString returns the clock time of t in t's location
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses and validates an HH:MM string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes builds a TimeString from minutes since midnight
func FromMinutes(total int) (TimeString, error) {
	if total < 0 || total >= minutesInDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/minutesInHour, total%minutesInHour)), nil
}

// Validate checks the HH:MM format and the hour/minute ranges
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// String implements fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Hour returns the hour part, or 0 for an invalid value
func (t TimeString) Hour() int {
	m, _ := t.parse()
	return m / minutesInHour
}

// Minute returns the minute part, or 0 for an invalid value
func (t TimeString) Minute() int {
	m, _ := t.parse()
	return m % minutesInHour
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() (int, error) {
	return t.parse()
}

// AddMinutes shifts the time; results past 23:59 are rejected
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.parse()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + minutes)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	return errA == nil && errB == nil && a < b
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	return errA == nil && errB == nil && a > b
}

// On combines the clock time with the calendar day of date in loc
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	m, err := t.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/minutesInHour, m%minutesInHour, 0, 0, loc), nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner; accepts HH:MM, HH:MM:SS and time.Time
func (t *TimeString) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func (t TimeString) parse() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeString
	}
	// strconv.Atoi accepts a sign, so "+9:00" would otherwise pass
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTimeString
		}
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidTimeString
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidTimeString
	}
	return h*minutesInHour + m, nil
}
