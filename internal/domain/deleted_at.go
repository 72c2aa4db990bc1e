package domain

import (
	"database/sql"
	"time"
)

// NormalizeDeletedAt maps a stored deletion timestamp to the canonical tombstone.
// NULL, the zero time and the legacy "0000-01-01" sentinel (any year before 1)
// all mean "not deleted" and become nil.
func NormalizeDeletedAt(stored sql.NullTime) *time.Time {
	if !stored.Valid || stored.Time.IsZero() || stored.Time.Year() < 1 {
		return nil
	}
	t := stored.Time
	return &t
}
